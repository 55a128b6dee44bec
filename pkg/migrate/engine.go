// Package migrate upgrades persisted profiles to the current schema version.
//
// Profiles are migrated in their raw decoded form (map[string]any) so that
// legacy shapes which no longer fit the typed model can still be read. The
// engine walks a static step table from the stored version to CurrentVersion,
// then always runs a normalization pass over every stored chain.
package migrate

import (
	"log/slog"
	"strings"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/command"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"golang.org/x/mod/semver"
)

// Report summarizes one Migrate call.
type Report struct {
	FromVersion string
	ToVersion   string
	Applied     []domain.MigrationID
}

// Changed reports whether any versioned migration ran.
func (r Report) Changed() bool {
	return len(r.Applied) > 0
}

// Engine applies migrations. It is stateless between calls and safe for
// concurrent use on distinct profiles.
type Engine struct {
	logger     *slog.Logger
	hooks      domain.Hooks
	now        func() time.Time
	normalizer *command.Normalizer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. They are also passed to the
// normalizer used by the command migrations.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithClock overrides the time source used for lastModified.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.normalizer = command.NewNormalizer(
		command.WithLogger(e.logger),
		command.WithHooks(e.hooks),
	)
	return e
}

// StoredVersion returns the schema version recorded in raw, or OldestVersion
// when none is recorded.
func StoredVersion(raw map[string]any) string {
	if v, ok := raw[domain.FieldMigrationVersion].(string); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return OldestVersion
}

// Migrate upgrades raw in place and stamps the resulting version and
// modification time.
//
// Versions absent from the step table stop the walk; the profile keeps its
// version and only the normalization pass runs.
func (e *Engine) Migrate(raw map[string]any) Report {
	from := StoredVersion(raw)
	version := from
	report := Report{FromVersion: from}

	if newerThanCurrent(version) {
		e.logger.Warn("profile schema is newer than supported",
			"version", version, "supported", CurrentVersion)
	}

	// Bounded by the table size so a malformed table cannot loop.
	for range steps {
		if version == CurrentVersion {
			break
		}
		step, ok := stepFrom(version)
		if !ok {
			e.logger.Debug("no migration path", "version", version)
			break
		}
		for _, id := range step.Migrations {
			transforms[id](e.normalizer, raw)
			report.Applied = append(report.Applied, id)
			e.hooks.MigrationApplied(domain.MigrationEvent{From: step.From, To: step.To, Migration: id})
			e.logger.Debug("migration applied", "migration", id, "from", step.From, "to", step.To)
		}
		version = step.To
	}

	normalizeCommands(e.normalizer, raw)

	raw[domain.FieldMigrationVersion] = version
	raw[domain.FieldLastModified] = e.now().UTC().Format(time.RFC3339)
	report.ToVersion = version

	if report.Changed() {
		e.logger.Info("profile migrated", "from", from, "to", version, "applied", len(report.Applied))
	}
	return report
}

// NeedsMigration reports whether raw is older than CurrentVersion.
func NeedsMigration(raw map[string]any) bool {
	v := StoredVersion(raw)
	if !semver.IsValid("v" + v) {
		return false
	}
	return semver.Compare("v"+v, "v"+CurrentVersion) < 0
}

func newerThanCurrent(version string) bool {
	return semver.IsValid("v"+version) && semver.Compare("v"+version, "v"+CurrentVersion) > 0
}
