package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format selects the on-disk encoding of profiles.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Store implements ports.ProfileStore using the local filesystem.
// It stores one profile per file in a configured directory.
type Store struct {
	BasePath string
	format   Format
}

// Option configures a Store.
type Option func(*Store)

// WithFormat selects JSON (default) or YAML files.
func WithFormat(format Format) Option {
	return func(s *Store) {
		s.format = format
	}
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".stokeys/profiles".
func New(basePath string, opts ...Option) *Store {
	if basePath == "" {
		basePath = filepath.Join(".stokeys", "profiles")
	}
	s := &Store{BasePath: basePath, format: FormatJSON}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) path(profileID string) string {
	return filepath.Join(s.BasePath, profileID+s.format.ext())
}

// Save persists the profile atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, profileID string, raw map[string]any) error {
	if profileID == "" {
		return domain.ErrEmptyProfileID
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure profile directory: %w", err)
	}
	return WriteProfile(s.path(profileID), raw)
}

// Load reads the profile file.
func (s *Store) Load(ctx context.Context, profileID string) (map[string]any, error) {
	if profileID == "" {
		return nil, domain.ErrEmptyProfileID
	}
	raw, err := ReadProfile(s.path(profileID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrProfileNotFound
	}
	return raw, err
}

// Delete removes the profile file.
func (s *Store) Delete(ctx context.Context, profileID string) error {
	if profileID == "" {
		return domain.ErrEmptyProfileID
	}
	err := os.Remove(s.path(profileID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete profile file: %w", err)
	}
	return nil
}

// List returns the IDs of all profile files in the store's format.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	ext := s.format.ext()
	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ext || strings.HasPrefix(name, "tmp-") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	sort.Strings(ids)
	return ids, nil
}

// ReadProfile decodes a single profile file. The encoding is chosen by
// extension: .yaml and .yml are YAML, anything else is JSON.
func ReadProfile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]any{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", filepath.Base(path), err)
	}
	return raw, nil
}

// WriteProfile encodes raw by extension and replaces path atomically.
func WriteProfile(path string, raw map[string]any) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(raw)
	} else {
		data, err = json.MarshalIndent(raw, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	return writeAtomic(path, data)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func writeAtomic(destPath string, data []byte) error {
	dir := filepath.Dir(destPath)

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(destPath)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Cannot rename an open file on Windows.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing profile file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to profile: %w", err)
	}
	return nil
}
