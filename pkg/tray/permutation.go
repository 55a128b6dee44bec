package tray

import (
	"fmt"
)

// SlotsPerTray is the number of slots on one tray in the game UI.
const SlotsPerTray = 10

// MaxTray is the highest tray index.
const MaxTray = 9

// Command variants for primary tray execution.
const (
	VariantSTO    = "STOTrayExecByTray"
	VariantTray   = "TrayExecByTray"
	BackupCommand = "TrayExecByTrayWithBackup"
)

// Kind selects a permutation shape.
type Kind string

const (
	KindSingle              Kind = "single"
	KindRange               Kind = "range"
	KindWholeTray           Kind = "whole_tray"
	KindSingleWithBackup    Kind = "single_with_backup"
	KindRangeWithBackup     Kind = "range_with_backup"
	KindWholeTrayWithBackup Kind = "whole_tray_with_backup"
)

// Position addresses one slot.
type Position struct {
	Tray int
	Slot int
}

// Params carries the inputs of every permutation kind; each kind reads only
// the fields it needs.
type Params struct {
	Tray int
	Slot int

	Start Position
	End   Position

	BackupTray  int
	BackupSlot  int
	BackupStart Position
	BackupEnd   Position

	// Active is nil when unset. Only nil defaults to 1.
	Active *int

	// Variant is VariantSTO (default) or VariantTray.
	Variant string
}

// Active returns a pointer to v, for building Params literals.
func Active(v int) *int {
	return &v
}

// Build returns the ordered tokens for kind. Unknown kinds yield an empty list.
func Build(kind Kind, p Params) []string {
	switch kind {
	case KindSingle:
		return []string{Exec(p.Variant, p.Active, Position{p.Tray, p.Slot})}
	case KindRange:
		return execAll(p.Variant, p.Active, Range(p.Start, p.End))
	case KindWholeTray:
		return execAll(p.Variant, p.Active, WholeTray(p.Tray))
	case KindSingleWithBackup:
		return []string{ExecWithBackup(p.Active, Position{p.Tray, p.Slot}, Position{p.BackupTray, p.BackupSlot})}
	case KindRangeWithBackup:
		return execPaired(p.Active, Range(p.Start, p.End), Range(p.BackupStart, p.BackupEnd))
	case KindWholeTrayWithBackup:
		return execPaired(p.Active, WholeTray(p.Tray), WholeTray(p.BackupTray))
	default:
		return []string{}
	}
}

// Range lists the positions from start to end inclusive, in tray-major order.
// An inverted range is empty; across trays the start tray
// runs to its last slot, intervening trays are full, and the end tray runs
// from slot 0.
func Range(start, end Position) []Position {
	out := []Position{}
	if end.Tray < start.Tray {
		return out
	}
	if start.Tray == end.Tray {
		for s := start.Slot; s <= end.Slot; s++ {
			out = append(out, Position{start.Tray, s})
		}
		return out
	}
	for s := start.Slot; s < SlotsPerTray; s++ {
		out = append(out, Position{start.Tray, s})
	}
	for t := start.Tray + 1; t < end.Tray; t++ {
		for s := 0; s < SlotsPerTray; s++ {
			out = append(out, Position{t, s})
		}
	}
	for s := 0; s <= end.Slot; s++ {
		out = append(out, Position{end.Tray, s})
	}
	return out
}

// WholeTray lists every slot of one tray.
func WholeTray(tray int) []Position {
	return Range(Position{tray, 0}, Position{tray, SlotsPerTray - 1})
}

// Exec formats one primary tray command.
func Exec(variant string, active *int, pos Position) string {
	if variant == "" {
		variant = VariantSTO
	}
	if isDefaultActive(active) {
		return fmt.Sprintf("+%s %d %d", variant, pos.Tray, pos.Slot)
	}
	return fmt.Sprintf("%s %d %d %d", variant, *active, pos.Tray, pos.Slot)
}

// ExecWithBackup formats one tray command with a backup slot.
func ExecWithBackup(active *int, pos, backup Position) string {
	if isDefaultActive(active) {
		return fmt.Sprintf("+%s %d %d %d %d", BackupCommand, pos.Tray, pos.Slot, backup.Tray, backup.Slot)
	}
	return fmt.Sprintf("%s %d %d %d %d %d", BackupCommand, *active, pos.Tray, pos.Slot, backup.Tray, backup.Slot)
}

func isDefaultActive(active *int) bool {
	return active == nil || *active == 1
}

func execAll(variant string, active *int, positions []Position) []string {
	out := make([]string, 0, len(positions))
	for _, pos := range positions {
		out = append(out, Exec(variant, active, pos))
	}
	return out
}

// execPaired emits one command per primary position. When the backup range is
// shorter its last element is reused; an empty backup range yields nothing.
func execPaired(active *int, primary, backup []Position) []string {
	out := make([]string, 0, len(primary))
	if len(backup) == 0 {
		return out
	}
	for i, pos := range primary {
		b := backup[min(i, len(backup)-1)]
		out = append(out, ExecWithBackup(active, pos, b))
	}
	return out
}
