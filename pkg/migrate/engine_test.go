package migrate

import (
	"testing"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/semver"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...)
}

func legacyProfile() map[string]any {
	return map[string]any{
		"name": "Legacy",
		"mode": "ground",
		"keys": map[string]any{
			"F1": []any{
				map[string]any{"command": "FireAll", "type": "combat"},
				map[string]any{"command": "STOTrayExecByTray 1 0 3"},
			},
			"Space": "Target_Enemy_Near $$ FirePhasers",
		},
		"aliases": map[string]any{
			"Attack": "FireAll $$ FireTorps",
		},
	}
}

func TestStepTableIsContiguous(t *testing.T) {
	all := Steps()
	require.NotEmpty(t, all)
	assert.Equal(t, OldestVersion, all[0].From)
	assert.Equal(t, CurrentVersion, all[len(all)-1].To)

	for i, s := range all {
		assert.Equal(t, 1, semver.Compare("v"+s.To, "v"+s.From), "step %d must increase the version", i)
		if i > 0 {
			assert.Equal(t, all[i-1].To, s.From, "step %d must start where the previous ended", i)
		}
		for _, id := range s.Migrations {
			assert.Contains(t, transforms, id)
		}
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	all := Steps()
	all[0].Migrations[0] = "tampered"
	assert.Equal(t, KeysToBuilds, Steps()[0].Migrations[0])
}

func TestMigrate_FullWalk(t *testing.T) {
	var events []domain.MigrationEvent
	e := newTestEngine(WithHooks(domain.Hooks{
		OnMigrationApplied: func(ev domain.MigrationEvent) { events = append(events, ev) },
	}))

	raw := legacyProfile()
	report := e.Migrate(raw)

	assert.Equal(t, OldestVersion, report.FromVersion)
	assert.Equal(t, CurrentVersion, report.ToVersion)
	assert.Equal(t, []domain.MigrationID{
		KeysToBuilds, NormalizeCommands,
		AliasCommandsToArrays, EnsureMetadataMaps,
		KeyOptionsToMetadata, ShortenTrayCommands,
	}, report.Applied)
	assert.Len(t, events, 6)
	assert.Equal(t, domain.MigrationEvent{From: "2.1.0", To: "2.2.0", Migration: ShortenTrayCommands}, events[5])

	assert.Equal(t, CurrentVersion, raw[domain.FieldMigrationVersion])
	assert.Equal(t, "2024-05-01T12:00:00Z", raw[domain.FieldLastModified])
	assert.NotContains(t, raw, "keys")
	assert.NotContains(t, raw, "mode")
	assert.Equal(t, "ground", raw["currentEnvironment"])

	keys := raw["builds"].(map[string]any)["ground"].(map[string]any)["keys"].(map[string]any)
	assert.Equal(t, []string{"FireAll", "+STOTrayExecByTray 0 3"}, keys["F1"])
	assert.Equal(t, []string{"Target_Enemy_Near", "FirePhasers"}, keys["Space"])

	alias := raw["aliases"].(map[string]any)["Attack"].(map[string]any)
	assert.Equal(t, []string{"FireAll", "FireTorps"}, alias["commands"])
	assert.Equal(t, "", alias["description"])

	assert.IsType(t, map[string]any{}, raw[domain.FieldKeybindMetadata])
	assert.IsType(t, map[string]any{}, raw[domain.FieldAliasMetadata])
}

func TestMigrate_DecodesIntoProfile(t *testing.T) {
	raw := legacyProfile()
	newTestEngine().Migrate(raw)

	p, err := domain.DecodeProfile(raw)
	require.NoError(t, err)
	assert.Equal(t, "Legacy", p.Name)
	assert.Equal(t, []string{"FireAll", "+STOTrayExecByTray 0 3"}, p.Keys("ground", "")["F1"])
	assert.Equal(t, []string{"FireAll", "FireTorps"}, p.Aliases["Attack"].Commands)
}

func TestMigrate_Idempotent(t *testing.T) {
	e := newTestEngine()
	raw := legacyProfile()
	e.Migrate(raw)

	snapshot := deepCopy(raw)
	report := e.Migrate(raw)

	assert.Equal(t, CurrentVersion, report.FromVersion)
	assert.Empty(t, report.Applied)
	assert.False(t, report.Changed())
	assert.Equal(t, snapshot, raw)
}

func TestMigrate_PartialWalk(t *testing.T) {
	raw := map[string]any{
		"migrationVersion": "2.1.0",
		"builds": map[string]any{
			"space": map[string]any{
				"keys": map[string]any{"F2": []any{"FireAll"}},
				"keyOptions": map[string]any{
					"F2": map[string]any{"stabilizeExecutionOrder": true},
				},
			},
		},
		"aliases": map[string]any{
			"Cycle": map[string]any{
				"commands":                "a $$ b",
				"stabilizeExecutionOrder": true,
			},
		},
	}

	report := newTestEngine().Migrate(raw)

	assert.Equal(t, []domain.MigrationID{KeyOptionsToMetadata, ShortenTrayCommands}, report.Applied)
	build := raw["builds"].(map[string]any)["space"].(map[string]any)
	assert.NotContains(t, build, "keyOptions")

	kbm := raw["keybindMetadata"].(map[string]any)
	assert.Equal(t, true, kbm["space"].(map[string]any)["F2"].(map[string]any)["stabilizeExecutionOrder"])

	alias := raw["aliases"].(map[string]any)["Cycle"].(map[string]any)
	assert.NotContains(t, alias, "stabilizeExecutionOrder")
	assert.Equal(t, []string{"a", "b"}, alias["commands"])
	abm := raw["aliasMetadata"].(map[string]any)
	assert.Equal(t, true, abm["Cycle"].(map[string]any)["stabilizeExecutionOrder"])
}

func TestMigrate_ExistingMetadataWins(t *testing.T) {
	raw := map[string]any{
		"migrationVersion": "2.1.0",
		"builds": map[string]any{
			"space": map[string]any{
				"keys":       map[string]any{},
				"keyOptions": map[string]any{"F2": map[string]any{"stabilizeExecutionOrder": true}},
			},
		},
		"keybindMetadata": map[string]any{
			"space": map[string]any{"F2": map[string]any{"stabilizeExecutionOrder": false}},
		},
	}
	newTestEngine().Migrate(raw)

	kbm := raw["keybindMetadata"].(map[string]any)
	assert.Equal(t, false, kbm["space"].(map[string]any)["F2"].(map[string]any)["stabilizeExecutionOrder"])
}

func TestMigrate_BindsetKeyOptions(t *testing.T) {
	raw := map[string]any{
		"migrationVersion": "2.1.0",
		"bindsets": map[string]any{
			"Away Team": map[string]any{
				"ground": map[string]any{
					"keys":       map[string]any{"G": []any{"a", "b"}, "H": []any{"c"}},
					"keyOptions": map[string]any{"G": map[string]any{"stabilizeExecutionOrder": true}},
				},
			},
		},
	}
	newTestEngine().Migrate(raw)

	build := raw["bindsets"].(map[string]any)["Away Team"].(map[string]any)["ground"].(map[string]any)
	assert.NotContains(t, build, "keyOptions")

	p, err := domain.DecodeProfile(raw)
	require.NoError(t, err)
	assert.True(t, p.Stabilized("ground", "Away Team", "G"))
	assert.False(t, p.Stabilized("ground", "Away Team", "H"))
	assert.False(t, p.Stabilized("ground", "", "G"))
}

func TestMigrate_UnknownVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "newer", version: "9.0.0"},
		{name: "unknown intermediate", version: "1.5.0"},
		{name: "not semver", version: "banana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]any{
				"migrationVersion": tt.version,
				"builds": map[string]any{
					"space": map[string]any{"keys": map[string]any{"F1": "a $$ b"}},
				},
			}
			report := newTestEngine().Migrate(raw)

			assert.Empty(t, report.Applied)
			assert.Equal(t, tt.version, report.ToVersion)
			assert.Equal(t, tt.version, raw["migrationVersion"])

			keys := raw["builds"].(map[string]any)["space"].(map[string]any)["keys"].(map[string]any)
			assert.Equal(t, []string{"a", "b"}, keys["F1"], "normalization always runs")
		})
	}
}

func TestMigrate_BindsetsNormalized(t *testing.T) {
	raw := map[string]any{
		"migrationVersion": CurrentVersion,
		"bindsets": map[string]any{
			"Away Team": map[string]any{
				"ground": map[string]any{"keys": map[string]any{"G": "+crouch $$ TrayExecByTray 1 2 3"}},
			},
		},
	}
	newTestEngine().Migrate(raw)

	keys := raw["bindsets"].(map[string]any)["Away Team"].(map[string]any)["ground"].(map[string]any)["keys"].(map[string]any)
	assert.Equal(t, []string{"+crouch", "+TrayExecByTray 2 3"}, keys["G"])
}

func TestStoredVersionAndNeedsMigration(t *testing.T) {
	assert.Equal(t, OldestVersion, StoredVersion(map[string]any{}))
	assert.Equal(t, OldestVersion, StoredVersion(map[string]any{"migrationVersion": "  "}))
	assert.Equal(t, OldestVersion, StoredVersion(map[string]any{"migrationVersion": 2}))
	assert.Equal(t, "2.0.0", StoredVersion(map[string]any{"migrationVersion": "2.0.0"}))

	assert.True(t, NeedsMigration(map[string]any{}))
	assert.True(t, NeedsMigration(map[string]any{"migrationVersion": "2.1.0"}))
	assert.False(t, NeedsMigration(map[string]any{"migrationVersion": CurrentVersion}))
	assert.False(t, NeedsMigration(map[string]any{"migrationVersion": "9.9.9"}))
	assert.False(t, NeedsMigration(map[string]any{"migrationVersion": "banana"}))
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
