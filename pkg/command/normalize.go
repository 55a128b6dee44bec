package command

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// RichCommand is the object form used by older profiles and by the editor UI.
// Only Command is significant for serialization.
type RichCommand struct {
	Command string `json:"command" yaml:"command" mapstructure:"command"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty" mapstructure:"text"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty" mapstructure:"icon"`
	ID      string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
}

// Normalizer converts command representations into canonical tokens.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	logger *slog.Logger
	hooks  domain.Hooks
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger used for shape warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(n *Normalizer) {
		n.hooks = hooks
	}
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = NewNormalizer()

// Normalize converts input with a silent default Normalizer.
func Normalize(input any) []string {
	return defaultNormalizer.Normalize(input)
}

// Normalize converts input into an ordered list of canonical tokens.
// It never fails: unrecognized shapes yield a warning and an empty list.
func (n *Normalizer) Normalize(input any) []string {
	return n.collect(input, []string{})
}

func (n *Normalizer) collect(input any, acc []string) []string {
	switch v := input.(type) {
	case nil:
		return acc
	case string:
		return appendTokens(acc, v)
	case RichCommand:
		return n.fromRich(v, input, acc)
	case *RichCommand:
		if v == nil {
			return acc
		}
		return n.fromRich(*v, input, acc)
	case map[string]any:
		var rich RichCommand
		if err := mapstructure.Decode(v, &rich); err != nil {
			n.warn(fmt.Sprintf("cannot decode command object: %v", err), input)
			return acc
		}
		return n.fromRich(rich, input, acc)
	case []string:
		for _, s := range v {
			acc = appendTokens(acc, s)
		}
		return acc
	case []RichCommand:
		for _, rich := range v {
			acc = n.fromRich(rich, rich, acc)
		}
		return acc
	case []any:
		for _, elem := range v {
			acc = n.collect(elem, acc)
		}
		return acc
	default:
		n.warn("unrecognized command shape", input)
		return acc
	}
}

func (n *Normalizer) fromRich(rich RichCommand, input any, acc []string) []string {
	if strings.TrimSpace(rich.Command) == "" {
		n.warn("command object has no command field", input)
		return acc
	}
	return appendTokens(acc, rich.Command)
}

func (n *Normalizer) warn(reason string, input any) {
	n.logger.Warn("ignoring command input", "reason", reason, "type", fmt.Sprintf("%T", input))
	n.hooks.NormalizeWarned(domain.NormalizeWarning{Reason: reason, Input: input})
}

func appendTokens(acc []string, text string) []string {
	for _, token := range SplitChain(text) {
		acc = append(acc, ShortenTrayCommand(token))
	}
	return acc
}

// SplitChain splits a delimited chain into trimmed, non-empty tokens.
// Unlike Normalize it never rewrites tokens.
func SplitChain(text string) []string {
	tokens := []string{}
	for _, part := range domain.ChainSplitPattern.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			tokens = append(tokens, part)
		}
	}
	return tokens
}

var (
	verboseTray   = regexp.MustCompile(`(?i)^(STOTrayExecByTray|TrayExecByTray)\s+1\s+(\d+)\s+(\d+)$`)
	verboseBackup = regexp.MustCompile(`(?i)^(TrayExecByTrayWithBackup)\s+1\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)$`)
)

// ShortenTrayCommand rewrites an active=1 tray command into its "+" shorthand.
// Other tokens are returned unchanged.
func ShortenTrayCommand(token string) string {
	if m := verboseTray.FindStringSubmatch(token); m != nil {
		return fmt.Sprintf("+%s %s %s", m[1], m[2], m[3])
	}
	if m := verboseBackup.FindStringSubmatch(token); m != nil {
		return fmt.Sprintf("+%s %s %s %s %s", m[1], m[2], m[3], m[4], m[5])
	}
	return token
}
