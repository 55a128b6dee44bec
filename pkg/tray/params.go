package tray

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// rawParams mirrors the snake_case parameter maps sent by the service layer.
type rawParams struct {
	Tray            int    `mapstructure:"tray"`
	Slot            int    `mapstructure:"slot"`
	StartTray       int    `mapstructure:"start_tray"`
	StartSlot       int    `mapstructure:"start_slot"`
	EndTray         int    `mapstructure:"end_tray"`
	EndSlot         int    `mapstructure:"end_slot"`
	BackupTray      int    `mapstructure:"backup_tray"`
	BackupSlot      int    `mapstructure:"backup_slot"`
	BackupStartTray int    `mapstructure:"backup_start_tray"`
	BackupStartSlot int    `mapstructure:"backup_start_slot"`
	BackupEndTray   int    `mapstructure:"backup_end_tray"`
	BackupEndSlot   int    `mapstructure:"backup_end_slot"`
	Active          *int   `mapstructure:"active"`
	Command         string `mapstructure:"command"`
}

// DecodeParams converts a loosely typed parameter map into Params.
// Booleans and numeric strings are accepted; false decodes to an explicit 0
// and only a missing or nil "active" stays unset.
func DecodeParams(m map[string]any) (Params, error) {
	var raw rawParams
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return Params{}, fmt.Errorf("failed to create params decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return Params{}, fmt.Errorf("invalid tray params: %w", err)
	}
	return Params{
		Tray:        raw.Tray,
		Slot:        raw.Slot,
		Start:       Position{raw.StartTray, raw.StartSlot},
		End:         Position{raw.EndTray, raw.EndSlot},
		BackupTray:  raw.BackupTray,
		BackupSlot:  raw.BackupSlot,
		BackupStart: Position{raw.BackupStartTray, raw.BackupStartSlot},
		BackupEnd:   Position{raw.BackupEndTray, raw.BackupEndSlot},
		Active:      raw.Active,
		Variant:     strings.TrimPrefix(strings.TrimSpace(raw.Command), "+"),
	}, nil
}

// BuildFromMap decodes m and builds the permutation for kind.
// Undecodable params degrade to an empty list together with the decode error.
func BuildFromMap(kind Kind, m map[string]any) ([]string, error) {
	p, err := DecodeParams(m)
	if err != nil {
		return []string{}, err
	}
	return Build(kind, p), nil
}
