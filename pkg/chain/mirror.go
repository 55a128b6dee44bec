// Package chain mirrors command chains and serializes them into keybind lines.
package chain

import "slices"

// UnmirrorResult reports whether a chain was mirrored and what it mirrored.
type UnmirrorResult struct {
	IsMirrored       bool     `json:"isMirrored"`
	OriginalCommands []string `json:"originalCommands"`
}

// Mirror appends the reverse of chain without its last element, so that two
// consecutive executions run every command twice in palindrome order.
// Chains of length 0 or 1 are returned unchanged.
func Mirror(chain []string) []string {
	out := slices.Clone(chain)
	if len(chain) <= 1 {
		return out
	}
	for i := len(chain) - 2; i >= 0; i-- {
		out = append(out, chain[i])
	}
	return out
}

// Unmirror detects a mirrored chain and recovers its original commands.
// Only odd lengths of at least 3 can be mirrored; anything else is returned
// untouched with IsMirrored false.
func Unmirror(chain []string) UnmirrorResult {
	m := len(chain)
	if m < 3 || m%2 == 0 {
		return UnmirrorResult{OriginalCommands: slices.Clone(chain)}
	}
	half := (m + 1) / 2
	first, second := chain[:half], chain[half:]
	for i, c := range second {
		// second must equal first minus its last element, reversed.
		if c != first[half-2-i] {
			return UnmirrorResult{OriginalCommands: slices.Clone(chain)}
		}
	}
	return UnmirrorResult{IsMirrored: true, OriginalCommands: slices.Clone(first)}
}
