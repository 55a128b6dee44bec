package profiles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/migrate"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates profile access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store    ports.ProfileStore
	migrator *migrate.Engine

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker      ports.DistributedLocker
	lockTTL     time.Duration
	concurrency int
	logger      *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithMigrator replaces the default migration engine.
func WithMigrator(engine *migrate.Engine) Option {
	return func(m *Manager) {
		m.migrator = engine
	}
}

// WithConcurrency limits how many profiles MigrateAll processes at once.
func WithConcurrency(n int) Option {
	return func(m *Manager) {
		m.concurrency = n
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.ProfileStore, opts ...Option) *Manager {
	m := &Manager{
		store:       store,
		locks:       make(map[string]*lockEntry),
		lockTTL:     DefaultLockTTL,
		concurrency: 4,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.migrator == nil {
		m.migrator = migrate.New(migrate.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(profileID) after unlocking.
func (m *Manager) acquire(profileID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[profileID]
	if !exists {
		entry = &lockEntry{}
		m.locks[profileID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(profileID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[profileID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, profileID)
	}
}

// Load reads a profile and migrates a copy of it in memory. The stored
// document is left untouched; use Migrate to persist the upgrade.
func (m *Manager) Load(ctx context.Context, profileID string) (*domain.Profile, error) {
	var raw map[string]any
	err := m.WithLock(ctx, profileID, func(ctx context.Context) error {
		var err error
		raw, err = m.store.Load(ctx, profileID)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.migrator.Migrate(raw)
	p, err := domain.DecodeProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profileID, err)
	}
	if p.ID == "" {
		p.ID = profileID
	}
	return p, nil
}

// Save persists the profile under p.ID.
func (m *Manager) Save(ctx context.Context, p *domain.Profile) error {
	if p == nil || p.ID == "" {
		return domain.ErrEmptyProfileID
	}
	raw, err := p.ToMap()
	if err != nil {
		return fmt.Errorf("failed to encode profile %s: %w", p.ID, err)
	}
	return m.WithLock(ctx, p.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, p.ID, raw)
	})
}

// Migrate upgrades the stored profile and writes it back when any
// versioned migration ran.
func (m *Manager) Migrate(ctx context.Context, profileID string) (migrate.Report, error) {
	var report migrate.Report
	err := m.WithLock(ctx, profileID, func(ctx context.Context) error {
		raw, err := m.store.Load(ctx, profileID)
		if err != nil {
			return err
		}

		report = m.migrator.Migrate(raw)
		if !report.Changed() {
			return nil
		}
		if err := m.store.Save(ctx, profileID, raw); err != nil {
			return fmt.Errorf("failed to save migrated profile %s: %w", profileID, err)
		}
		return nil
	})
	return report, err
}

// Result pairs a profile ID with the outcome of migrating it.
type Result struct {
	ProfileID string
	Report    migrate.Report
	Err       error
}

// MigrateAll migrates every stored profile. Individual failures are
// recorded in the results; only listing errors and cancellation abort.
func (m *Manager) MigrateAll(ctx context.Context) ([]Result, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	results := make([]Result, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	if m.concurrency > 0 {
		g.SetLimit(m.concurrency)
	}

	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := m.Migrate(gctx, id)
			results[i] = Result{ProfileID: id, Report: report, Err: err}
			if err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Warn("profile migration failed", "profile_id", id, "err", err)
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Delete removes the profile from the store.
func (m *Manager) Delete(ctx context.Context, profileID string) error {
	return m.WithLock(ctx, profileID, func(ctx context.Context) error {
		return m.store.Delete(ctx, profileID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying profile store.
func (m *Manager) Store() ports.ProfileStore {
	return m.store
}

// WithLock executes a function while holding the lock for the profile.
func (m *Manager) WithLock(ctx context.Context, profileID string, fn func(context.Context) error) error {
	entry := m.acquire(profileID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(profileID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, profileID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"profile_id", profileID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
