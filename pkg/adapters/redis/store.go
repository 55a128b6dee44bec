package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// DefaultPrefix namespaces profile keys.
const DefaultPrefix = "stokeys:profile:"

// farFuture is the index score of profiles that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ProfileStore using Redis.
// Profiles are stored as JSON strings; a sorted set indexes their IDs.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the expiration for profiles. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for profiles.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(profileID string) string {
	return s.prefix + profileID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the profile and records it in the index.
func (s *Store) Save(ctx context.Context, profileID string, raw map[string]any) error {
	if profileID == "" {
		return domain.ErrEmptyProfileID
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(profileID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: profileID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the profile from Redis.
func (s *Store) Load(ctx context.Context, profileID string) (map[string]any, error) {
	val, err := s.client.Get(ctx, s.key(profileID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	raw := map[string]any{}
	if err := json.Unmarshal([]byte(val), &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return raw, nil
}

// Delete removes the profile and its index entry.
func (s *Store) Delete(ctx context.Context, profileID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(profileID))
	pipe.ZRem(ctx, s.indexKey(), profileID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns indexed profiles, pruning entries whose TTL has passed.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired profiles: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
