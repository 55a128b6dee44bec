/*
Package domain contains the core data model of the keybind engine.

It defines the structures shared by the parser, the generator, the permutation
builder and the migration engine. The package is kept pure: no I/O, no
persistence, no logging.

# Key Entities

  - CommandToken: a single canonical command string (never contains the chain delimiter).
  - KeybindLine / AliasDefinition: structured views of the lines of a keybind file.
  - ParsedDocument: the immutable result of parsing one file.
  - Profile: the typed view of a persisted profile (builds, aliases, metadata).
  - Hooks: optional callbacks used for observability.
*/
package domain
