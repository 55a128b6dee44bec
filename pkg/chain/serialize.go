package chain

import (
	"fmt"
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// Clean drops blank placeholder entries, trimming the rest.
func Clean(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Join renders tokens as one delimited chain, mirroring first when stabilize is set.
func Join(tokens []string, stabilize bool) string {
	cleaned := Clean(tokens)
	if stabilize {
		cleaned = Mirror(cleaned)
	}
	return strings.Join(cleaned, domain.ChainDelimiter)
}

// Quotable reports whether tokens can sit inside a quoted keybind body.
// The game format has no escape for '"', so any token carrying one cannot.
func Quotable(tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(t, `"`) {
			return false
		}
	}
	return true
}

// Line renders a keybind line `KEY "chain"`.
// It reports false when the chain is empty or not Quotable, in which case
// the key must be omitted.
func Line(key string, tokens []string, stabilize bool) (string, bool) {
	if len(Clean(tokens)) == 0 || !Quotable(tokens) {
		return "", false
	}
	return fmt.Sprintf("%s \"%s\"", key, Join(tokens, stabilize)), true
}

// AliasLine renders `alias NAME <& chain &>`.
// Empty chains are still emitted so that the alias name stays defined.
func AliasLine(name string, tokens []string, stabilize bool) string {
	body := Join(tokens, stabilize)
	if body == "" {
		return fmt.Sprintf("alias %s %s %s", name, domain.AliasOpen, domain.AliasClose)
	}
	return fmt.Sprintf("alias %s %s %s %s", name, domain.AliasOpen, body, domain.AliasClose)
}
