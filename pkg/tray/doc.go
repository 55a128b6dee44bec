// Package tray builds the command lists that execute ranges of tray slots.
//
// Trays and slots form a bounded 2-D address space (tray 0-9, slot 0-9).
// Builders never validate bounds: inverted or out-of-range input produces an
// empty or partial list, and checking is the caller's job.
//
// The active-state argument distinguishes an unset value (nil, meaning 1)
// from an explicit 0, which must survive into the long command form.
package tray
