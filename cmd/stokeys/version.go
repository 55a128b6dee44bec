package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	keybind "github.com/sto-tools/sto-tools-keybind-manager-sub008"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/presentation/tui"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of stokeys",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				tui.PrintBanner(out, strings.TrimSpace(keybind.Version))
				return nil
			}
			_, err := fmt.Fprintf(out, "stokeys version %s\n", strings.TrimSpace(keybind.Version))
			return err
		},
	}
}

func init() {
	register(newVersionCmd)
}
