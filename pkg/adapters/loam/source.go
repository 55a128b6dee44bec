// Package loam reads and writes profiles kept as documents in a Loam vault.
//
// Each profile is one document: its front matter holds the raw profile and
// its body holds the free-text description.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
)

// Header is the subset of profile front matter needed for listing.
type Header struct {
	Name             string `json:"name" mapstructure:"name"`
	MigrationVersion string `json:"migrationVersion" mapstructure:"migrationVersion"`
}

// Source adapts a Loam repository to ports.ProfileSource.
type Source struct {
	repo  core.Repository
	typed *loam.TypedRepository[Header]
}

// New creates a Source over an initialized Loam repository.
func New(repo core.Repository) *Source {
	return &Source{
		repo:  repo,
		typed: loam.NewTypedRepository[Header](repo),
	}
}

// Open initializes a Loam repository at path and wraps it.
func Open(path string, opts ...loam.Option) (*Source, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}
	repo, err := loam.Init(absPath, append([]loam.Option{loam.WithVersioning(false)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault %s: %w", path, err)
	}
	return New(repo), nil
}

// Load returns the raw front matter of the profile document. When the
// front matter has no description, the document body is used.
func (s *Source) Load(ctx context.Context, profileID string) (map[string]any, error) {
	if profileID == "" {
		return nil, domain.ErrEmptyProfileID
	}
	doc, err := s.repo.Get(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: loam get failed for %s: %w", domain.ErrProfileNotFound, profileID, err)
	}

	raw := domain.CloneRaw(doc.Metadata)
	if raw == nil {
		raw = map[string]any{}
	}
	if _, ok := raw["description"]; !ok {
		if body := strings.TrimSpace(doc.Content); body != "" {
			raw["description"] = body
		}
	}
	return raw, nil
}

// List returns profile IDs with their file extensions removed.
func (s *Source) List(ctx context.Context) ([]string, error) {
	docs, err := s.typed.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := trimExtension(doc.ID)
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: profile '%s' is defined in both '%s' and '%s'", id, existing, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Save writes raw as the front matter of the profile document. The
// description moves to the document body.
func (s *Source) Save(ctx context.Context, profileID string, raw map[string]any) error {
	if profileID == "" {
		return domain.ErrEmptyProfileID
	}
	meta := domain.CloneRaw(raw)
	body, _ := meta["description"].(string)
	delete(meta, "description")

	err := s.repo.Save(ctx, core.Document{
		ID:       profileID,
		Content:  body,
		Metadata: core.Metadata(meta),
	})
	if err != nil {
		return fmt.Errorf("loam save failed for %s: %w", profileID, err)
	}
	return nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
