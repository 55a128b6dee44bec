package migrate

import "github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"

const (
	// OldestVersion is assumed for profiles saved before versioning existed.
	OldestVersion = "1.0.0"
	// CurrentVersion is the schema version written by this engine.
	CurrentVersion = "2.2.0"
)

// Migration identifiers. They are persisted in logs and reports; never rename them.
const (
	KeysToBuilds          domain.MigrationID = "keys-to-builds"
	NormalizeCommands     domain.MigrationID = "normalize-commands"
	AliasCommandsToArrays domain.MigrationID = "alias-commands-to-arrays"
	EnsureMetadataMaps    domain.MigrationID = "ensure-metadata-maps"
	KeyOptionsToMetadata  domain.MigrationID = "key-options-to-metadata"
	ShortenTrayCommands   domain.MigrationID = "shorten-tray-commands"
)

// steps is the ordered migration chain. Each step's From must equal the
// previous step's To.
var steps = []domain.MigrationStep{
	{From: "1.0.0", To: "2.0.0", Migrations: []domain.MigrationID{KeysToBuilds, NormalizeCommands}},
	{From: "2.0.0", To: "2.1.0", Migrations: []domain.MigrationID{AliasCommandsToArrays, EnsureMetadataMaps}},
	{From: "2.1.0", To: "2.2.0", Migrations: []domain.MigrationID{KeyOptionsToMetadata, ShortenTrayCommands}},
}

// Steps returns a copy of the migration chain.
func Steps() []domain.MigrationStep {
	out := make([]domain.MigrationStep, len(steps))
	for i, s := range steps {
		out[i] = domain.MigrationStep{
			From:       s.From,
			To:         s.To,
			Migrations: append([]domain.MigrationID(nil), s.Migrations...),
		}
	}
	return out
}

func stepFrom(version string) (domain.MigrationStep, bool) {
	for _, s := range steps {
		if s.From == version {
			return s, true
		}
	}
	return domain.MigrationStep{}, false
}
