// Package graph renders alias call graphs as Mermaid flowcharts.
package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
)

// GenerateMermaid produces a Mermaid flowchart of which keys and aliases
// invoke which aliases. It applies semantic styling:
// - Key: [/Parallelogram/]
// - Alias: [[Subroutine]]
// Aliases that no key reaches, directly or through other aliases, get the
// "unused" class.
func GenerateMermaid(doc *domain.ParsedDocument) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	lookup := make(map[string]string, len(doc.Aliases))
	for name := range doc.Aliases {
		lookup[strings.ToLower(name)] = name
	}

	edges := make(map[string][]string)
	var roots []string

	for _, key := range keyfile.SortedKeys(doc.Keybinds) {
		targets := aliasRefs(doc.Keybinds[key].Chain, lookup)
		if len(targets) == 0 {
			continue
		}
		id := "key_" + sanitizeMermaidID(key)
		sb.WriteString(fmt.Sprintf("    %s[/\"%s\"/]\n", id, key))
		for _, target := range targets {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", id, aliasID(target)))
		}
		roots = append(roots, targets...)
	}

	for _, name := range doc.AliasNames() {
		sb.WriteString(fmt.Sprintf("    %s[[\"%s\"]]\n", aliasID(name), name))
		targets := aliasRefs(doc.Aliases[name].Chain, lookup)
		edges[name] = targets
		for _, target := range targets {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", aliasID(name), aliasID(target)))
		}
	}

	reached := reachable(roots, edges)
	var unused []string
	for _, name := range doc.AliasNames() {
		if !reached[name] {
			unused = append(unused, aliasID(name))
		}
	}
	if len(unused) > 0 {
		sb.WriteString("\n    classDef unused fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s unused;\n", strings.Join(unused, ",")))
	}

	return sb.String()
}

// aliasRefs returns the distinct aliases a chain invokes, in chain order.
// A "+" prefix invokes the press/release form of the same alias.
func aliasRefs(chain []string, lookup map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, token := range chain {
		name, ok := lookup[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "+"))]
		if ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

func reachable(roots []string, edges map[string][]string) map[string]bool {
	seen := make(map[string]bool)
	stack := append([]string(nil), roots...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		next := append([]string(nil), edges[n]...)
		sort.Strings(next)
		stack = append(stack, next...)
	}
	return seen
}

func aliasID(name string) string {
	return "alias_" + sanitizeMermaidID(name)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "+", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
