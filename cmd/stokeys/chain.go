package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/chain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/command"
)

func newChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Mirror or unmirror command chains",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "mirror CHAIN",
		Short: "Print the stabilized form of a chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := command.SplitChain(strings.Join(args, " "))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), chain.Join(app.engine.Mirror(tokens), false))
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unmirror CHAIN",
		Short: "Recover the original chain from a stabilized one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens := command.SplitChain(strings.Join(args, " "))
			result := app.engine.Unmirror(tokens)
			if !result.IsMirrored {
				app.logger.Info("chain is not mirrored", "tokens", len(tokens))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), chain.Join(result.OriginalCommands, false))
			return err
		},
	})

	return cmd
}

func init() {
	register(newChainCmd)
}
