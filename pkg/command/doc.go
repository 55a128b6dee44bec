// Package command turns the accepted command representations into canonical
// CommandTokens.
//
// Profiles written by different versions of the tooling store commands as
// plain strings, as legacy delimited strings ("a $$ b"), as rich objects
// carrying a "command" field, or as lists of any of those. Normalize accepts
// all of them through a closed type switch and always returns a flat token
// list; shapes it does not understand produce a warning and no tokens.
//
// The package also classifies tokens into cosmetic display categories.
package command
