/*
Package keybind reads, writes, and upgrades Star Trek Online keybind files and
the profiles they are generated from.

The game loads plain-text files in which each line binds a key to a command
chain, or defines an alias that later lines can invoke by name:

	; comment
	alias Volley <& FireAll $$ FireTorps &>
	F1 "Volley $$ +STOTrayExecByTray 0 0"

A profile is the structured form of those files: key chains per environment
(space, ground), optional bindsets, aliases, and per-key flags such as
execution-order stabilization, which mirrors a chain so the game fires it
identically on key press and release.

# Components

  - Engine: the entry point. It normalizes command inputs, parses and
    generates keybind files, and migrates stored profiles.
  - pkg/command: command token normalization and classification.
  - pkg/tray: tray execution permutations (single slot, range, whole tray, backups).
  - pkg/chain: mirroring and chain serialization.
  - pkg/keyfile: the keybind file parser and generator.
  - pkg/migrate: the versioned profile migration engine.
  - pkg/profiles: store-backed profile access with per-profile locking.

# Usage

	eng := keybind.New(keybind.WithLogger(logger))

	profile, doc := eng.Import(text, "space", keyfile.ImportOptions{Name: "Tactical", Unmirror: true})
	for _, lineErr := range doc.Errors {
		logger.Warn("skipped line", "line", lineErr.LineNumber)
	}

	out := eng.GenerateKeybinds(profile, keyfile.Options{Environment: "space"})

Parsing never fails; unrecognized lines are collected in the document's
Errors so a partially broken file still imports.
*/
package keybind
