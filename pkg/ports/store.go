package ports

import "context"

// ProfileSource reads persisted profiles in their raw decoded form.
// Raw maps are used so that legacy shapes survive until they are migrated.
type ProfileSource interface {
	// Load retrieves the raw profile for the given ID.
	// Returns domain.ErrProfileNotFound if the profile does not exist.
	Load(ctx context.Context, profileID string) (map[string]any, error)

	// List returns the IDs of all stored profiles.
	List(ctx context.Context) ([]string, error)
}

// ProfileStore persists raw profiles.
type ProfileStore interface {
	ProfileSource

	// Save persists the raw profile under the given ID, replacing any previous one.
	Save(ctx context.Context, profileID string, raw map[string]any) error

	// Delete removes the profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, profileID string) error
}
