package tui

import (
	"fmt"
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
)

// DocumentMarkdown summarizes a parsed keybind file as markdown tables.
func DocumentMarkdown(title string, doc *domain.ParsedDocument) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d keybinds, %d aliases, %d comments, %d errors\n\n",
		len(doc.Keybinds), len(doc.Aliases), len(doc.Comments), len(doc.Errors))

	if len(doc.Keybinds) > 0 {
		sb.WriteString("## Keybinds\n\n| Key | Commands | Categories |\n|---|---|---|\n")
		for _, key := range keyfile.SortedKeys(doc.Keybinds) {
			line := doc.Keybinds[key]
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", key, codeList(line.Chain), categories(line.Commands))
		}
		sb.WriteString("\n")
	}

	if len(doc.Aliases) > 0 {
		sb.WriteString("## Aliases\n\n| Alias | Commands | Description |\n|---|---|---|\n")
		for _, name := range doc.AliasNames() {
			alias := doc.Aliases[name]
			fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", name, codeList(alias.Chain), escapeCell(alias.Description))
		}
		sb.WriteString("\n")
	}

	if len(doc.Errors) > 0 {
		sb.WriteString("## Errors\n\n")
		for _, e := range doc.Errors {
			fmt.Fprintf(&sb, "- line %d: %s `%s`\n", e.LineNumber, e.Reason, e.Raw)
		}
	}
	return sb.String()
}

// MigrationMarkdown summarizes migration results.
func MigrationMarkdown(reports map[string]migrate.Report) string {
	var sb strings.Builder
	sb.WriteString("# Migration\n\n| Profile | From | To | Applied |\n|---|---|---|---|\n")
	for _, id := range keyfile.SortedKeys(reports) {
		r := reports[id]
		applied := "none"
		if r.Changed() {
			ids := make([]string, len(r.Applied))
			for i, m := range r.Applied {
				ids[i] = string(m)
			}
			applied = strings.Join(ids, ", ")
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", escapeCell(id), r.FromVersion, r.ToVersion, applied)
	}
	return sb.String()
}

func codeList(tokens []string) string {
	if len(tokens) == 0 {
		return "_empty_"
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = "`" + escapeCell(t) + "`"
	}
	return strings.Join(parts, " ")
}

func categories(cmds []domain.Command) string {
	seen := make(map[domain.Category]bool)
	var out []string
	for _, c := range cmds {
		if !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, string(c.Category))
		}
	}
	return strings.Join(out, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
