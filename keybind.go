package keybind

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/chain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/command"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/tray"
)

// Engine is the high-level entry point of the library.
// It wires the normalizer, parser, and migration engine with one logger,
// one set of hooks, and one clock. It is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
	hooks  domain.Hooks
	now    func() time.Time

	normalizer *command.Normalizer
	parser     *keyfile.Parser
	migrator   *migrate.Engine
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for file headers and lastModified.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	e.normalizer = command.NewNormalizer(command.WithLogger(e.logger), command.WithHooks(e.hooks))
	e.parser = keyfile.NewParser(keyfile.WithParserLogger(e.logger), keyfile.WithParserHooks(e.hooks))
	e.migrator = migrate.New(migrate.WithLogger(e.logger), migrate.WithHooks(e.hooks), migrate.WithClock(e.now))
	return e
}

// Normalize converts any supported command representation into canonical tokens.
func (e *Engine) Normalize(input any) []string {
	return e.normalizer.Normalize(input)
}

// Permutations expands a tray execution request into its command tokens.
func (e *Engine) Permutations(kind tray.Kind, params tray.Params) []string {
	return tray.Build(kind, params)
}

// PermutationsFromMap is Permutations for loosely typed parameters, as
// received from JSON or command-line flags.
func (e *Engine) PermutationsFromMap(kind tray.Kind, params map[string]any) ([]string, error) {
	return tray.BuildFromMap(kind, params)
}

// Mirror returns the stabilized form of a chain.
func (e *Engine) Mirror(tokens []string) []string {
	return chain.Mirror(tokens)
}

// Unmirror detects a mirrored chain and recovers its original form.
func (e *Engine) Unmirror(tokens []string) chain.UnmirrorResult {
	return chain.Unmirror(tokens)
}

// Parse classifies every line of a keybind or alias file.
func (e *Engine) Parse(text string) *domain.ParsedDocument {
	return e.parser.Parse(text)
}

// Import parses text and converts it into a profile.
func (e *Engine) Import(text, env string, opts keyfile.ImportOptions) (*domain.Profile, *domain.ParsedDocument) {
	doc := e.parser.Parse(text)
	p := keyfile.ProfileOf(doc, env, opts)
	p.MigrationVersion = migrate.CurrentVersion
	p.LastModified = e.now().UTC().Format(time.RFC3339)
	return p, doc
}

// GenerateKeybinds renders the keybind file of one environment of a profile.
func (e *Engine) GenerateKeybinds(p *domain.Profile, opts keyfile.Options) string {
	if opts.Now == nil {
		opts.Now = e.now
	}
	for _, key := range keyfile.Unquotable(p, opts) {
		e.logger.Warn("skipping keybind with quoted command", "profile", p.Name, "key", key)
	}
	return keyfile.Generate(p, opts)
}

// GenerateAliases renders the alias file of a profile.
func (e *Engine) GenerateAliases(p *domain.Profile, opts keyfile.Options) string {
	if opts.Now == nil {
		opts.Now = e.now
	}
	return keyfile.GenerateAliases(p, opts)
}

// Migrate upgrades a raw profile in place.
func (e *Engine) Migrate(raw map[string]any) migrate.Report {
	return e.migrator.Migrate(raw)
}

// Migrator exposes the configured migration engine, e.g. for a profiles.Manager.
func (e *Engine) Migrator() *migrate.Engine {
	return e.migrator
}

// DecodeProfile migrates a copy of raw and decodes it into a Profile.
// raw itself is not modified.
func (e *Engine) DecodeProfile(raw map[string]any) (*domain.Profile, migrate.Report, error) {
	upgraded := domain.CloneRaw(raw)
	if upgraded == nil {
		upgraded = map[string]any{}
	}
	report := e.migrator.Migrate(upgraded)

	p, err := domain.DecodeProfile(upgraded)
	if err != nil {
		return nil, report, fmt.Errorf("failed to decode migrated profile: %w", err)
	}
	return p, report, nil
}
