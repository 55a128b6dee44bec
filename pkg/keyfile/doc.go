/*
Package keyfile reads and writes the game's keybind and alias file format.

# Syntax

	KEY "cmd1 $$ cmd2"           keybind, with an optional trailing argument
	/bind KEY cmd1 $$ cmd2       slash bind
	alias NAME <& cmd1 $$ cmd2 &> alias (also alias NAME "cmd1 $$ cmd2")
	; comment                    comments start with ';' or '#'

Parse is total: every line is classified as blank, comment, alias, keybind,
bind or error, in that priority order, and an unrecognized line never stops
the rest of the file from being read.

Generate and GenerateAliases render a profile back into this syntax. For any
profile p, Parse(Generate(p)) yields the same key to chain mapping, except
that stabilized chains come back mirrored (see package chain).
*/
package keyfile
