package memory_test

import (
	"context"
	"testing"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/memory"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunProfileStoreContract(t, store)
}

func TestMemoryStore_SaveIsolatesNestedValues(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	keys := map[string]any{"F1": []string{"FireAll"}}
	raw := map[string]any{"builds": map[string]any{"space": map[string]any{"keys": keys}}}
	require.NoError(t, store.Save(ctx, "p", raw))

	keys["F1"] = []string{"changed"}

	loaded, err := store.Load(ctx, "p")
	require.NoError(t, err)
	p, err := domain.DecodeProfile(loaded)
	require.NoError(t, err)
	assert.Equal(t, []string{"FireAll"}, p.Keys("space", "")["F1"])
}

func TestMemoryStore_EmptyID(t *testing.T) {
	err := memory.NewStore().Save(context.Background(), "", map[string]any{})
	assert.ErrorIs(t, err, domain.ErrEmptyProfileID)
}
