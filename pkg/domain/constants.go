package domain

// Chain syntax shared by the parser and the generator.
const (
	// ChainDelimiter is the canonical separator between commands on a line.
	ChainDelimiter = " $$ "

	// AliasOpen and AliasClose wrap the command chain of a generated alias.
	AliasOpen  = "<&"
	AliasClose = "&>"
)

// Environments known to the game. Profiles may define others; these are the defaults.
const (
	EnvironmentSpace  = "space"
	EnvironmentGround = "ground"
	EnvironmentAlias  = "alias"
)

// PrimaryBindset names the bindset backed by Profile.Builds rather than Profile.Bindsets.
const PrimaryBindset = "Primary Bindset"

// Persisted field names read and written by the migration engine.
const (
	FieldMigrationVersion = "migrationVersion"
	FieldLastModified     = "lastModified"
	FieldBuilds           = "builds"
	FieldKeys             = "keys"
	FieldAliases          = "aliases"
	FieldCommands         = "commands"
	FieldKeybindMetadata  = "keybindMetadata"
	FieldAliasMetadata    = "aliasMetadata"
	FieldBindsets         = "bindsets"
	FieldBindsetMetadata  = "bindsetMetadata"
	FieldStabilize        = "stabilizeExecutionOrder"
)
