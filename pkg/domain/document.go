package domain

import (
	"fmt"
	"sort"
)

// Comment is a comment line preserved from a parsed file.
type Comment struct {
	LineNumber int    `json:"line" yaml:"line"`
	Text       string `json:"text" yaml:"text"`
}

// LineError records a line the parser could not classify.
type LineError struct {
	LineNumber int    `json:"line" yaml:"line"`
	Raw        string `json:"raw" yaml:"raw"`
	Reason     string `json:"reason" yaml:"reason"`
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.LineNumber, e.Reason, e.Raw)
}

// KeybindLine is one parsed key binding.
// Kind is LineKeybind for `KEY "cmds"` lines and LineBind for `/bind KEY cmds` lines.
type KeybindLine struct {
	Key        string    `json:"key" yaml:"key"`
	Chain      []string  `json:"chain" yaml:"chain"`
	Commands   []Command `json:"commands" yaml:"commands"`
	Optional   string    `json:"optional,omitempty" yaml:"optional,omitempty"`
	Kind       LineKind  `json:"kind" yaml:"kind"`
	Raw        string    `json:"raw" yaml:"raw"`
	LineNumber int       `json:"line" yaml:"line"`
}

// AliasDefinition is one parsed alias.
type AliasDefinition struct {
	Name        string    `json:"name" yaml:"name"`
	Chain       []string  `json:"chain" yaml:"chain"`
	Commands    []Command `json:"commands" yaml:"commands"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Raw         string    `json:"raw" yaml:"raw"`
	LineNumber  int       `json:"line" yaml:"line"`
}

// ParsedDocument is the structured result of parsing one keybind file.
// Each parse produces a fresh document; callers must not share it for mutation.
type ParsedDocument struct {
	Keybinds map[string]KeybindLine     `json:"keybinds" yaml:"keybinds"`
	Aliases  map[string]AliasDefinition `json:"aliases" yaml:"aliases"`
	Comments []Comment                  `json:"comments" yaml:"comments"`
	Errors   []LineError                `json:"errors" yaml:"errors"`
}

// NewParsedDocument returns an empty document with initialized maps.
func NewParsedDocument() *ParsedDocument {
	return &ParsedDocument{
		Keybinds: make(map[string]KeybindLine),
		Aliases:  make(map[string]AliasDefinition),
		Comments: []Comment{},
		Errors:   []LineError{},
	}
}

// ChainMap returns the key -> chain mapping of the document.
func (d *ParsedDocument) ChainMap() map[string][]string {
	out := make(map[string][]string, len(d.Keybinds))
	for key, line := range d.Keybinds {
		out[key] = append([]string(nil), line.Chain...)
	}
	return out
}

// AliasChainMap returns the alias name -> chain mapping of the document.
func (d *ParsedDocument) AliasChainMap() map[string][]string {
	out := make(map[string][]string, len(d.Aliases))
	for name, alias := range d.Aliases {
		out[name] = append([]string(nil), alias.Chain...)
	}
	return out
}

// AliasNames returns the alias names in lexical order.
func (d *ParsedDocument) AliasNames() []string {
	names := make([]string, 0, len(d.Aliases))
	for name := range d.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
