package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/chain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/tray"
)

var permutationKinds = []tray.Kind{
	tray.KindSingle,
	tray.KindRange,
	tray.KindWholeTray,
	tray.KindSingleWithBackup,
	tray.KindRangeWithBackup,
	tray.KindWholeTrayWithBackup,
}

// permuteParams lists the flags forwarded as tray parameters.
var permuteParams = []string{
	"tray", "slot",
	"start-tray", "start-slot", "end-tray", "end-slot",
	"backup-tray", "backup-slot",
	"backup-start-tray", "backup-start-slot", "backup-end-tray", "backup-end-slot",
	"active",
}

func newPermuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permute KIND",
		Short: "Expand a tray execution request into commands",
		Long: `Expands a tray execution request into its command chain.

KIND is one of: single, range, whole_tray, single_with_backup,
range_with_backup, whole_tray_with_backup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := tray.Kind(args[0])
			if !slices.Contains(permutationKinds, kind) {
				return fmt.Errorf("unknown permutation kind %q", args[0])
			}

			params := map[string]any{}
			cmd.Flags().Visit(func(f *pflag.Flag) {
				if slices.Contains(permuteParams, f.Name) {
					params[strings.ReplaceAll(f.Name, "-", "_")] = f.Value.String()
				}
			})
			if variant, _ := cmd.Flags().GetString("command"); variant != "" {
				params["command"] = variant
			}

			tokens, err := app.engine.PermutationsFromMap(kind, params)
			if err != nil {
				return err
			}

			mirror, _ := cmd.Flags().GetBool("mirror")
			key, _ := cmd.Flags().GetString("key")
			if key != "" {
				line, ok := chain.Line(key, tokens, mirror)
				if !ok {
					return fmt.Errorf("permutation for %s is empty", kind)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), chain.Join(tokens, mirror))
			return err
		},
	}

	for _, name := range permuteParams {
		if name == "active" {
			continue
		}
		cmd.Flags().Int(name, 0, "")
	}
	cmd.Flags().Int("active", 1, "Active flag; anything other than 1 uses the explicit form")
	cmd.Flags().String("command", "", "Primary command variant (STOTrayExecByTray, TrayExecByTray)")
	cmd.Flags().Bool("mirror", false, "Stabilize the execution order of the chain")
	cmd.Flags().String("key", "", "Print a keybind line for this key instead of a bare chain")
	return cmd
}

func init() {
	register(newPermuteCmd)
}
