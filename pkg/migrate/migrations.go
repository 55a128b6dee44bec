package migrate

import (
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/command"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// transform mutates a raw profile in place. Every transform must be
// idempotent: the normalization pass re-runs on already migrated data.
type transform func(n *command.Normalizer, raw map[string]any)

var transforms = map[domain.MigrationID]transform{
	KeysToBuilds:          keysToBuilds,
	NormalizeCommands:     normalizeCommands,
	AliasCommandsToArrays: aliasCommandsToArrays,
	EnsureMetadataMaps:    ensureMetadataMaps,
	KeyOptionsToMetadata:  keyOptionsToMetadata,
	ShortenTrayCommands:   shortenTrayCommands,
}

// keysToBuilds moves the single-environment `keys` map of the oldest format
// into builds[mode].keys. Existing build entries win over legacy ones.
func keysToBuilds(_ *command.Normalizer, raw map[string]any) {
	legacy, ok := raw[domain.FieldKeys].(map[string]any)
	if !ok {
		return
	}
	env, _ := raw["mode"].(string)
	if env == "" {
		env, _ = raw["currentEnvironment"].(string)
	}
	if env == "" {
		env = domain.EnvironmentSpace
	}

	keys := ensureMap(ensureMap(ensureMap(raw, domain.FieldBuilds), env), domain.FieldKeys)
	for key, chain := range legacy {
		if _, exists := keys[key]; !exists {
			keys[key] = chain
		}
	}
	delete(raw, domain.FieldKeys)

	if _, ok := raw["currentEnvironment"]; !ok {
		raw["currentEnvironment"] = env
	}
	delete(raw, "mode")
}

// normalizeCommands rewrites every stored chain as a canonical token list.
func normalizeCommands(n *command.Normalizer, raw map[string]any) {
	forEachKeyMap(raw, func(keys map[string]any) {
		for key, chain := range keys {
			keys[key] = n.Normalize(chain)
		}
	})
	forEachAlias(raw, func(alias map[string]any) {
		if cmds, ok := alias[domain.FieldCommands]; ok {
			alias[domain.FieldCommands] = n.Normalize(cmds)
		}
	})
}

// aliasCommandsToArrays turns bare string aliases into objects and makes sure
// every alias carries a commands list.
func aliasCommandsToArrays(n *command.Normalizer, raw map[string]any) {
	aliases, ok := raw[domain.FieldAliases].(map[string]any)
	if !ok {
		return
	}
	for name, v := range aliases {
		switch alias := v.(type) {
		case string:
			aliases[name] = map[string]any{
				"description":        "",
				domain.FieldCommands: n.Normalize(alias),
			}
		case map[string]any:
			alias[domain.FieldCommands] = n.Normalize(alias[domain.FieldCommands])
		}
	}
}

func ensureMetadataMaps(_ *command.Normalizer, raw map[string]any) {
	ensureMap(raw, domain.FieldBuilds)
	ensureMap(raw, domain.FieldAliases)
	ensureMap(raw, domain.FieldKeybindMetadata)
	ensureMap(raw, domain.FieldAliasMetadata)
}

// keyOptionsToMetadata moves per-key and per-alias stabilization flags that
// older versions stored next to the chain into the metadata maps.
func keyOptionsToMetadata(_ *command.Normalizer, raw map[string]any) {
	if builds, ok := raw[domain.FieldBuilds].(map[string]any); ok {
		moveKeyOptions(builds, func(env string) map[string]any {
			return ensureMap(ensureMap(raw, domain.FieldKeybindMetadata), env)
		})
	}
	if bindsets, ok := raw[domain.FieldBindsets].(map[string]any); ok {
		for name, s := range bindsets {
			set, ok := s.(map[string]any)
			if !ok {
				continue
			}
			moveKeyOptions(set, func(env string) map[string]any {
				return ensureMap(ensureMap(ensureMap(raw, domain.FieldBindsetMetadata), name), env)
			})
		}
	}

	forEachAliasNamed(raw, func(name string, alias map[string]any) {
		flag, ok := alias[domain.FieldStabilize].(bool)
		if !ok {
			return
		}
		entry := ensureMap(ensureMap(raw, domain.FieldAliasMetadata), name)
		if _, set := entry[domain.FieldStabilize]; !set {
			entry[domain.FieldStabilize] = flag
		}
		delete(alias, domain.FieldStabilize)
	})
}

func shortenTrayCommands(_ *command.Normalizer, raw map[string]any) {
	shorten := func(v any) any {
		switch chain := v.(type) {
		case []string:
			out := make([]string, len(chain))
			for i, tok := range chain {
				out[i] = command.ShortenTrayCommand(tok)
			}
			return out
		case []any:
			out := make([]any, len(chain))
			for i, tok := range chain {
				if s, ok := tok.(string); ok {
					out[i] = command.ShortenTrayCommand(s)
				} else {
					out[i] = tok
				}
			}
			return out
		default:
			return v
		}
	}
	forEachKeyMap(raw, func(keys map[string]any) {
		for key, chain := range keys {
			keys[key] = shorten(chain)
		}
	})
	forEachAlias(raw, func(alias map[string]any) {
		if cmds, ok := alias[domain.FieldCommands]; ok {
			alias[domain.FieldCommands] = shorten(cmds)
		}
	})
}

// moveKeyOptions folds builds[env].keyOptions flags into the metadata map
// returned by metadata(env). Entries already present there win.
func moveKeyOptions(builds map[string]any, metadata func(env string) map[string]any) {
	for env, b := range builds {
		build, ok := b.(map[string]any)
		if !ok {
			continue
		}
		options, ok := build["keyOptions"].(map[string]any)
		if !ok {
			continue
		}
		for key, o := range options {
			flag, ok := stabilizeFlag(o)
			if !ok {
				continue
			}
			entry := ensureMap(metadata(env), key)
			if _, set := entry[domain.FieldStabilize]; !set {
				entry[domain.FieldStabilize] = flag
			}
		}
		delete(build, "keyOptions")
	}
}

func stabilizeFlag(v any) (bool, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return false, false
	}
	flag, ok := m[domain.FieldStabilize].(bool)
	return flag, ok
}

// ensureMap returns m[key] as a map, creating it when missing or of another type.
func ensureMap(m map[string]any, key string) map[string]any {
	if existing, ok := m[key].(map[string]any); ok {
		return existing
	}
	created := make(map[string]any)
	m[key] = created
	return created
}

// forEachKeyMap visits builds[env].keys and bindsets[set][env].keys.
func forEachKeyMap(raw map[string]any, fn func(keys map[string]any)) {
	visitBuilds := func(builds map[string]any) {
		for _, b := range builds {
			if build, ok := b.(map[string]any); ok {
				if keys, ok := build[domain.FieldKeys].(map[string]any); ok {
					fn(keys)
				}
			}
		}
	}
	if builds, ok := raw[domain.FieldBuilds].(map[string]any); ok {
		visitBuilds(builds)
	}
	if bindsets, ok := raw[domain.FieldBindsets].(map[string]any); ok {
		for _, set := range bindsets {
			if builds, ok := set.(map[string]any); ok {
				visitBuilds(builds)
			}
		}
	}
}

func forEachAlias(raw map[string]any, fn func(alias map[string]any)) {
	forEachAliasNamed(raw, func(_ string, alias map[string]any) { fn(alias) })
}

func forEachAliasNamed(raw map[string]any, fn func(name string, alias map[string]any)) {
	aliases, ok := raw[domain.FieldAliases].(map[string]any)
	if !ok {
		return
	}
	for name, v := range aliases {
		if alias, ok := v.(map[string]any); ok {
			fn(name, alias)
		}
	}
}
