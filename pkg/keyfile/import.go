package keyfile

import (
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/chain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// ImportOptions controls how a parsed document becomes a profile.
type ImportOptions struct {
	// Name of the resulting profile.
	Name string
	// Bindset receives the keys; empty means the primary bindset.
	Bindset string
	// Unmirror stores detected mirrored chains in their original form and
	// sets the stabilization flag instead.
	Unmirror bool
}

// ProfileOf builds a profile holding the keybinds of doc under env and its aliases.
func ProfileOf(doc *domain.ParsedDocument, env string, opts ImportOptions) *domain.Profile {
	p := domain.NewProfile(opts.Name)
	p.CurrentEnvironment = env

	for key, line := range doc.Keybinds {
		tokens, mirrored := unmirrorIf(opts.Unmirror, line.Chain)
		p.SetChain(env, opts.Bindset, key, tokens)
		if mirrored {
			p.SetStabilized(env, opts.Bindset, key, true)
		}
	}

	for name, alias := range doc.Aliases {
		tokens, mirrored := unmirrorIf(opts.Unmirror, alias.Chain)
		p.Aliases[name] = domain.Alias{Description: alias.Description, Commands: tokens}
		if mirrored {
			p.SetAliasStabilized(name, true)
		}
	}

	return p
}

func unmirrorIf(enabled bool, tokens []string) ([]string, bool) {
	if !enabled {
		return append([]string{}, tokens...), false
	}
	res := chain.Unmirror(tokens)
	return res.OriginalCommands, res.IsMirrored
}
