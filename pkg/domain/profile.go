package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// KeyMetadata carries per-key (or per-alias) generation policy.
// It lives next to the chain, never inside it.
type KeyMetadata struct {
	StabilizeExecutionOrder bool `json:"stabilizeExecutionOrder" yaml:"stabilizeExecutionOrder" mapstructure:"stabilizeExecutionOrder"`
}

// Build holds the key bindings of one environment.
type Build struct {
	Keys map[string][]string `json:"keys" yaml:"keys" mapstructure:"keys"`
}

// Alias is a named command chain stored in a profile.
type Alias struct {
	Description string   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Commands    []string `json:"commands" yaml:"commands" mapstructure:"commands"`
}

// Profile is the typed view of a persisted profile.
// The persistence layer owns its lifecycle; the engine only reads and writes it.
type Profile struct {
	ID                 string                                       `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Name               string                                       `json:"name" yaml:"name" mapstructure:"name"`
	Description        string                                       `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	CurrentEnvironment string                                       `json:"currentEnvironment,omitempty" yaml:"currentEnvironment,omitempty" mapstructure:"currentEnvironment"`
	Builds             map[string]Build                             `json:"builds" yaml:"builds" mapstructure:"builds"`
	Aliases            map[string]Alias                             `json:"aliases" yaml:"aliases" mapstructure:"aliases"`
	Bindsets           map[string]map[string]Build                  `json:"bindsets,omitempty" yaml:"bindsets,omitempty" mapstructure:"bindsets"`
	KeybindMetadata    map[string]map[string]KeyMetadata            `json:"keybindMetadata,omitempty" yaml:"keybindMetadata,omitempty" mapstructure:"keybindMetadata"`
	AliasMetadata      map[string]KeyMetadata                       `json:"aliasMetadata,omitempty" yaml:"aliasMetadata,omitempty" mapstructure:"aliasMetadata"`
	BindsetMetadata    map[string]map[string]map[string]KeyMetadata `json:"bindsetMetadata,omitempty" yaml:"bindsetMetadata,omitempty" mapstructure:"bindsetMetadata"`
	MigrationVersion   string                                       `json:"migrationVersion,omitempty" yaml:"migrationVersion,omitempty" mapstructure:"migrationVersion"`
	LastModified       string                                       `json:"lastModified,omitempty" yaml:"lastModified,omitempty" mapstructure:"lastModified"`
}

// NewProfile creates an empty profile with initialized maps.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:               name,
		CurrentEnvironment: EnvironmentSpace,
		Builds:             make(map[string]Build),
		Aliases:            make(map[string]Alias),
	}
}

// Keys returns the key map of an environment in the given bindset.
// An empty bindset or PrimaryBindset selects Builds.
func (p *Profile) Keys(env, bindset string) map[string][]string {
	if isPrimary(bindset) {
		return p.Builds[env].Keys
	}
	return p.Bindsets[bindset][env].Keys
}

// SetChain stores a chain for a key, creating intermediate maps as needed.
func (p *Profile) SetChain(env, bindset, key string, chain []string) {
	if isPrimary(bindset) {
		if p.Builds == nil {
			p.Builds = make(map[string]Build)
		}
		p.Builds[env] = withKey(p.Builds[env], key, chain)
		return
	}
	if p.Bindsets == nil {
		p.Bindsets = make(map[string]map[string]Build)
	}
	if p.Bindsets[bindset] == nil {
		p.Bindsets[bindset] = make(map[string]Build)
	}
	p.Bindsets[bindset][env] = withKey(p.Bindsets[bindset][env], key, chain)
}

func withKey(b Build, key string, chain []string) Build {
	if b.Keys == nil {
		b.Keys = make(map[string][]string)
	}
	b.Keys[key] = chain
	return b
}

// Stabilized reports whether a key's chain must be mirrored on generation.
func (p *Profile) Stabilized(env, bindset, key string) bool {
	if isPrimary(bindset) {
		return p.KeybindMetadata[env][key].StabilizeExecutionOrder
	}
	return p.BindsetMetadata[bindset][env][key].StabilizeExecutionOrder
}

// SetStabilized records the stabilization flag for a key.
func (p *Profile) SetStabilized(env, bindset, key string, on bool) {
	if isPrimary(bindset) {
		if p.KeybindMetadata == nil {
			p.KeybindMetadata = make(map[string]map[string]KeyMetadata)
		}
		if p.KeybindMetadata[env] == nil {
			p.KeybindMetadata[env] = make(map[string]KeyMetadata)
		}
		p.KeybindMetadata[env][key] = KeyMetadata{StabilizeExecutionOrder: on}
		return
	}
	if p.BindsetMetadata == nil {
		p.BindsetMetadata = make(map[string]map[string]map[string]KeyMetadata)
	}
	if p.BindsetMetadata[bindset] == nil {
		p.BindsetMetadata[bindset] = make(map[string]map[string]KeyMetadata)
	}
	if p.BindsetMetadata[bindset][env] == nil {
		p.BindsetMetadata[bindset][env] = make(map[string]KeyMetadata)
	}
	p.BindsetMetadata[bindset][env][key] = KeyMetadata{StabilizeExecutionOrder: on}
}

// AliasStabilized reports whether an alias chain must be mirrored on generation.
func (p *Profile) AliasStabilized(name string) bool {
	return p.AliasMetadata[name].StabilizeExecutionOrder
}

// SetAliasStabilized records the stabilization flag for an alias.
func (p *Profile) SetAliasStabilized(name string, on bool) {
	if p.AliasMetadata == nil {
		p.AliasMetadata = make(map[string]KeyMetadata)
	}
	p.AliasMetadata[name] = KeyMetadata{StabilizeExecutionOrder: on}
}

func isPrimary(bindset string) bool {
	return bindset == "" || bindset == PrimaryBindset
}

// DecodeProfile converts a persisted plain structure into a Profile.
// Chains stored as delimited strings are split; rich command objects are not
// understood here, so raw data should be migrated first.
func DecodeProfile(raw map[string]any) (*Profile, error) {
	var p Profile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       chainDecodeHook,
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &p, nil
}

// ToMap converts a Profile back into the plain structure used for persistence.
func (p *Profile) ToMap() (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return out, nil
}

var stringSliceType = reflect.TypeOf([]string(nil))

func chainDecodeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != stringSliceType {
		return data, nil
	}
	var chain []string
	for _, part := range ChainSplitPattern.Split(reflect.ValueOf(data).String(), -1) {
		if part = strings.TrimSpace(part); part != "" {
			chain = append(chain, part)
		}
	}
	if chain == nil {
		chain = []string{}
	}
	return chain, nil
}
