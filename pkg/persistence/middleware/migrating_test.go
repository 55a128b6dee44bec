package middleware_test

import (
	"context"
	"testing"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/memory"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/persistence/middleware"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigratingMiddleware_Contract(t *testing.T) {
	store := middleware.Chain(memory.NewStore(), middleware.NewMigratingMiddleware(nil))
	ports.RunProfileStoreContract(t, store)
}

func TestMigratingMiddleware_UpgradesOnLoad(t *testing.T) {
	ctx := context.Background()
	mock := NewMockStore()
	mock.data["old"] = map[string]any{
		"name": "Old",
		"keys": map[string]any{"F1": "FireAll"},
	}

	store := middleware.NewMigratingMiddleware(migrate.New())(mock)
	raw, err := store.Load(ctx, "old")
	require.NoError(t, err)

	assert.Equal(t, migrate.CurrentVersion, raw[domain.FieldMigrationVersion])
	assert.NotContains(t, raw, "keys")
	assert.Contains(t, mock.data["old"], "keys", "stored document is untouched")
}

func TestMigratingMiddleware_StampsVersionOnSave(t *testing.T) {
	ctx := context.Background()
	mock := NewMockStore()
	store := middleware.NewMigratingMiddleware(nil)(mock)

	input := map[string]any{"name": "Fresh"}
	require.NoError(t, store.Save(ctx, "fresh", input))

	assert.Equal(t, migrate.CurrentVersion, mock.data["fresh"][domain.FieldMigrationVersion])
	assert.NotContains(t, input, domain.FieldMigrationVersion, "caller map is not mutated")

	require.NoError(t, store.Save(ctx, "pinned", map[string]any{domain.FieldMigrationVersion: "2.0.0"}))
	assert.Equal(t, "2.0.0", mock.data["pinned"][domain.FieldMigrationVersion])
}

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ProfileStore) ports.ProfileStore {
			return &tagStore{ProfileStore: next, name: name, order: &order}
		}
	}

	store := middleware.Chain(NewMockStore(), tag("outer"), tag("inner"))
	_, _ = store.List(context.Background())

	assert.Equal(t, []string{"outer", "inner"}, order)
}

type tagStore struct {
	ports.ProfileStore
	name  string
	order *[]string
}

func (s *tagStore) List(ctx context.Context) ([]string, error) {
	*s.order = append(*s.order, s.name)
	return s.ProfileStore.List(ctx)
}
