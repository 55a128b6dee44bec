package keyfile

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/command"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

var (
	aliasAnglePattern  = regexp.MustCompile(`(?i)^alias\s+(\S+)\s+<&\s*(.*?)\s*&>\s*$`)
	aliasQuotedPattern = regexp.MustCompile(`(?i)^alias\s+(\S+)\s+"([^"]*)"\s*$`)
	keybindPattern     = regexp.MustCompile(`^(\S+)\s+"([^"]*)"(?:\s+(.*?))?\s*$`)
	bindPattern        = regexp.MustCompile(`(?i)^/bind\s+(\S+)\s+(.+?)\s*$`)
)

// Parser converts keybind file text into a ParsedDocument.
// It keeps no state between calls and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
	hooks  domain.Hooks
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithParserLogger sets the logger used for unrecognized lines.
func WithParserLogger(logger *slog.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithParserHooks registers observability hooks.
func WithParserHooks(hooks domain.Hooks) ParserOption {
	return func(p *Parser) {
		p.hooks = hooks
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text with a default parser.
func Parse(text string) *domain.ParsedDocument {
	return NewParser().Parse(text)
}

// Parse classifies every line of text. It never fails: lines that match no
// known form are recorded in the document's Errors.
func (p *Parser) Parse(text string) *domain.ParsedDocument {
	doc := domain.NewParsedDocument()
	var pending *domain.Comment

	for i, raw := range strings.Split(text, "\n") {
		lineNumber := i + 1
		raw = strings.TrimRight(raw, "\r")
		line := strings.TrimSpace(raw)

		kind := p.parseLine(doc, line, raw, lineNumber, pending)
		p.hooks.LineParsed(kind, lineNumber)

		pending = nil
		if kind == domain.LineComment {
			last := doc.Comments[len(doc.Comments)-1]
			pending = &last
		}
	}

	return doc
}

func (p *Parser) parseLine(doc *domain.ParsedDocument, line, raw string, lineNumber int, pending *domain.Comment) domain.LineKind {
	if line == "" {
		return domain.LineBlank
	}

	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
		doc.Comments = append(doc.Comments, domain.Comment{
			LineNumber: lineNumber,
			Text:       strings.TrimSpace(strings.TrimLeft(line, "#;")),
		})
		return domain.LineComment
	}

	if m := matchAlias(line); m != nil {
		chain := command.SplitChain(m[2])
		alias := domain.AliasDefinition{
			Name:       m[1],
			Chain:      chain,
			Commands:   command.ClassifyAll(chain),
			Raw:        raw,
			LineNumber: lineNumber,
		}
		if pending != nil {
			alias.Description = pending.Text
		}
		doc.Aliases[alias.Name] = alias
		return domain.LineAlias
	}

	if m := keybindPattern.FindStringSubmatch(line); m != nil {
		p.addKeybind(doc, domain.LineKeybind, m[1], m[2], m[3], raw, lineNumber)
		return domain.LineKeybind
	}

	if m := bindPattern.FindStringSubmatch(line); m != nil {
		p.addKeybind(doc, domain.LineBind, m[1], unquote(m[2]), "", raw, lineNumber)
		return domain.LineBind
	}

	lineErr := domain.LineError{LineNumber: lineNumber, Raw: raw, Reason: "unrecognized line"}
	doc.Errors = append(doc.Errors, lineErr)
	p.logger.Debug("skipping unrecognized line", "line", lineNumber, "raw", raw)
	p.hooks.ParseError(lineErr)
	return domain.LineInvalid
}

func (p *Parser) addKeybind(doc *domain.ParsedDocument, kind domain.LineKind, rawKey, body, optional, raw string, lineNumber int) {
	key := DecodeKey(rawKey)
	chain := command.SplitChain(body)
	doc.Keybinds[key] = domain.KeybindLine{
		Key:        key,
		Chain:      chain,
		Commands:   command.ClassifyAll(chain),
		Optional:   strings.TrimSpace(optional),
		Kind:       kind,
		Raw:        raw,
		LineNumber: lineNumber,
	}
}

func matchAlias(line string) []string {
	if m := aliasAnglePattern.FindStringSubmatch(line); m != nil {
		return m
	}
	return aliasQuotedPattern.FindStringSubmatch(line)
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
