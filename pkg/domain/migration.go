package domain

// MigrationID is the stable identifier of one data-shape transform.
type MigrationID string

// MigrationStep moves a profile from one schema version to the next.
// Steps are static tables and are never mutated at runtime.
type MigrationStep struct {
	From       string
	To         string
	Migrations []MigrationID
}
