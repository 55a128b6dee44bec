package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_CrossTrayRange(t *testing.T) {
	got := Build(KindRange, Params{Start: Position{0, 8}, End: Position{1, 1}})
	assert.Equal(t, []string{
		"+STOTrayExecByTray 0 8",
		"+STOTrayExecByTray 0 9",
		"+STOTrayExecByTray 1 0",
		"+STOTrayExecByTray 1 1",
	}, got)
}

func TestBuild_RangeAcrossIntermediateTrays(t *testing.T) {
	got := Build(KindRange, Params{Start: Position{2, 9}, End: Position{4, 0}, Variant: VariantTray})
	require.Len(t, got, 12)
	assert.Equal(t, "+TrayExecByTray 2 9", got[0])
	assert.Equal(t, "+TrayExecByTray 3 0", got[1])
	assert.Equal(t, "+TrayExecByTray 3 9", got[10])
	assert.Equal(t, "+TrayExecByTray 4 0", got[11])
}

func TestBuild_SameTrayRange(t *testing.T) {
	got := Build(KindRange, Params{Start: Position{5, 2}, End: Position{5, 4}})
	assert.Equal(t, []string{"+STOTrayExecByTray 5 2", "+STOTrayExecByTray 5 3", "+STOTrayExecByTray 5 4"}, got)
}

func TestBuild_InvertedRangeIsEmpty(t *testing.T) {
	assert.Empty(t, Build(KindRange, Params{Start: Position{3, 7}, End: Position{3, 2}}))
	assert.Empty(t, Build(KindRange, Params{Start: Position{4, 0}, End: Position{3, 2}}))
}

func TestBuild_WholeTray(t *testing.T) {
	got := Build(KindWholeTray, Params{Tray: 2})
	require.Len(t, got, SlotsPerTray)
	for slot, tok := range got {
		assert.Equal(t, Exec(VariantSTO, nil, Position{2, slot}), tok)
	}
}

func TestBuild_ActiveState(t *testing.T) {
	tests := []struct {
		name   string
		active *int
		want   string
	}{
		{"unset defaults to shorthand", nil, "+STOTrayExecByTray 1 2"},
		{"explicit one is shorthand", Active(1), "+STOTrayExecByTray 1 2"},
		{"explicit zero keeps long form", Active(0), "STOTrayExecByTray 0 1 2"},
		{"other values keep long form", Active(2), "STOTrayExecByTray 2 1 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(KindSingle, Params{Tray: 1, Slot: 2, Active: tt.active})
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestBuild_WithBackup(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		got := Build(KindSingleWithBackup, Params{Tray: 0, Slot: 1, BackupTray: 5, BackupSlot: 6, Active: Active(0)})
		assert.Equal(t, []string{"TrayExecByTrayWithBackup 0 0 1 5 6"}, got)
	})

	t.Run("equal ranges pair positionally", func(t *testing.T) {
		got := Build(KindRangeWithBackup, Params{
			Start: Position{0, 0}, End: Position{0, 1},
			BackupStart: Position{1, 0}, BackupEnd: Position{1, 1},
		})
		assert.Equal(t, []string{
			"+TrayExecByTrayWithBackup 0 0 1 0",
			"+TrayExecByTrayWithBackup 0 1 1 1",
		}, got)
	})

	t.Run("shorter backup reuses last element", func(t *testing.T) {
		got := Build(KindRangeWithBackup, Params{
			Start: Position{0, 0}, End: Position{0, 2},
			BackupStart: Position{3, 4}, BackupEnd: Position{3, 4},
		})
		assert.Equal(t, []string{
			"+TrayExecByTrayWithBackup 0 0 3 4",
			"+TrayExecByTrayWithBackup 0 1 3 4",
			"+TrayExecByTrayWithBackup 0 2 3 4",
		}, got)
	})

	t.Run("whole tray", func(t *testing.T) {
		got := Build(KindWholeTrayWithBackup, Params{Tray: 1, BackupTray: 7})
		require.Len(t, got, SlotsPerTray)
		assert.Equal(t, "+TrayExecByTrayWithBackup 1 9 7 9", got[9])
	})
}

func TestBuild_UnknownKind(t *testing.T) {
	assert.Empty(t, Build(Kind("diagonal"), Params{}))
}

func TestBuildFromMap(t *testing.T) {
	t.Run("cross tray", func(t *testing.T) {
		got, err := BuildFromMap(KindRange, map[string]any{"start_tray": 0, "start_slot": 8, "end_tray": 1, "end_slot": 1})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("explicit zero survives decoding", func(t *testing.T) {
		for _, zero := range []any{0, false, "0", 0.0} {
			got, err := BuildFromMap(KindSingle, map[string]any{"tray": 3, "slot": 4, "active": zero})
			require.NoError(t, err)
			assert.Equal(t, []string{"STOTrayExecByTray 0 3 4"}, got, "active=%#v", zero)
		}
	})

	t.Run("nil active defaults", func(t *testing.T) {
		got, err := BuildFromMap(KindSingle, map[string]any{"tray": 3, "slot": 4, "active": nil, "command": "+TrayExecByTray"})
		require.NoError(t, err)
		assert.Equal(t, []string{"+TrayExecByTray 3 4"}, got)
	})

	t.Run("undecodable params", func(t *testing.T) {
		got, err := BuildFromMap(KindSingle, map[string]any{"tray": []int{1}})
		assert.Error(t, err)
		assert.Empty(t, got)
	})
}
