package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	keybind "github.com/sto-tools/sto-tools-keybind-manager-sub008"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/logging"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/metrics"
)

// runtime is the per-invocation state shared by all commands.
type runtime struct {
	logger    *slog.Logger
	collector *metrics.Collector
	engine    *keybind.Engine
}

var app runtime

// subcommands holds the constructors registered by each command file.
var subcommands []func() *cobra.Command

func register(newCmd func() *cobra.Command) {
	subcommands = append(subcommands, newCmd)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stokeys",
		Short: "stokeys manages Star Trek Online keybind files",
		Long: `stokeys parses, generates, and migrates Star Trek Online keybind and alias
files and the profiles they are built from.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelFlag, _ := cmd.Flags().GetString("log-level")
			level, err := logging.ParseLevel(levelFlag)
			if err != nil {
				return err
			}
			app.logger = logging.NewWithWriter(cmd.ErrOrStderr(), level)
			app.collector = metrics.NewCollector()
			app.engine = keybind.New(
				keybind.WithLogger(app.logger),
				keybind.WithHooks(app.collector.Hooks()),
			)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("metrics-file")
			if path == "" || app.collector == nil {
				return nil
			}
			return app.collector.WriteTextfile(path)
		},
	}

	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	for _, newCmd := range subcommands {
		cmd.AddCommand(newCmd())
	}
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
