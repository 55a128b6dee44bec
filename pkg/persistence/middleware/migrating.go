package middleware

import (
	"context"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
)

type migratingMiddleware struct {
	next   ports.ProfileStore
	engine *migrate.Engine
}

// NewMigratingMiddleware creates a middleware that upgrades profiles as they
// are read. Stored documents only change when the caller saves them back.
func NewMigratingMiddleware(engine *migrate.Engine) Middleware {
	if engine == nil {
		engine = migrate.New()
	}
	return func(next ports.ProfileStore) ports.ProfileStore {
		return &migratingMiddleware{next: next, engine: engine}
	}
}

func (m *migratingMiddleware) Save(ctx context.Context, profileID string, raw map[string]any) error {
	// Never persist a profile without a version; it would be migrated from scratch on next read.
	if _, ok := raw[domain.FieldMigrationVersion]; !ok {
		raw = domain.CloneRaw(raw)
		raw[domain.FieldMigrationVersion] = migrate.CurrentVersion
	}
	return m.next.Save(ctx, profileID, raw)
}

func (m *migratingMiddleware) Load(ctx context.Context, profileID string) (map[string]any, error) {
	raw, err := m.next.Load(ctx, profileID)
	if err != nil {
		return nil, err
	}
	m.engine.Migrate(raw)
	return raw, nil
}

func (m *migratingMiddleware) Delete(ctx context.Context, profileID string) error {
	return m.next.Delete(ctx, profileID)
}

func (m *migratingMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
