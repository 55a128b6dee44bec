package ports

import (
	"context"
	"testing"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProfileStoreContract runs a suite of tests to verify that a ProfileStore
// implementation adheres to the defined interface contract.
func RunProfileStoreContract(t *testing.T, store ProfileStore) {
	ctx := context.Background()
	profileID := "contract-profile-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		raw := map[string]any{
			"name":             "Contract",
			"migrationVersion": "2.2.0",
			"builds": map[string]any{
				"space": map[string]any{
					"keys": map[string]any{"F1": []any{"FireAll", "FirePhasers"}},
				},
			},
		}

		err := store.Save(ctx, profileID, raw)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, profileID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Contract", loaded["name"])
		assert.Equal(t, "2.2.0", loaded["migrationVersion"])

		// Serializing stores turn []string into []any; decode to compare chains.
		p, err := domain.DecodeProfile(loaded)
		require.NoError(t, err)
		assert.Equal(t, []string{"FireAll", "FirePhasers"}, p.Keys("space", "")["F1"])
	})

	t.Run("Load isolates callers", func(t *testing.T) {
		loaded, err := store.Load(ctx, profileID)
		require.NoError(t, err)
		loaded["name"] = "mutated"

		again, err := store.Load(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, "Contract", again["name"])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+profileID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, profileID, map[string]any{"name": "Doomed"})
		require.NoError(t, err)

		err = store.Delete(ctx, profileID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, profileID)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound, "Load after Delete should return ErrProfileNotFound")

		assert.NoError(t, store.Delete(ctx, profileID), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := profileID + "-1"
		id2 := profileID + "-2"
		_ = store.Save(ctx, id1, map[string]any{"name": "one"})
		_ = store.Save(ctx, id2, map[string]any{"name": "two"})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		profiles, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, profiles, id1)
		assert.Contains(t, profiles, id2)
	})
}
