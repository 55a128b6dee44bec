package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/watch"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/file"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate PROFILE",
		Short: "Generate a keybind or alias file from a profile",
		Long: `Reads a profile from a .json or .yaml file, or by ID from a Loam vault
(--vault) or directory store (--store-dir), upgrades it in memory, and
writes the game-loadable keybind file of one environment. With --aliases
the alias file is written instead.
With --watch the file is regenerated whenever the profile changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, _ := cmd.Flags().GetString("env")
			bindset, _ := cmd.Flags().GetString("bindset")
			grouped, _ := cmd.Flags().GetBool("grouped")
			aliases, _ := cmd.Flags().GetBool("aliases")
			fileName, _ := cmd.Flags().GetString("file-name")
			out, _ := cmd.Flags().GetString("out")
			vault, _ := cmd.Flags().GetString("vault")
			storeDir, _ := cmd.Flags().GetString("store-dir")
			storeFormat, _ := cmd.Flags().GetString("store-format")
			loc := profileLocation{Vault: vault, StoreDir: storeDir, StoreFormat: file.Format(storeFormat)}
			watchMode, _ := cmd.Flags().GetBool("watch")

			opts := keyfile.Options{
				Environment: env,
				Bindset:     bindset,
				Grouped:     grouped,
				FileName:    fileName,
			}
			generate := func(ctx context.Context) error {
				profile, err := loadProfile(ctx, args[0], loc)
				if err != nil {
					return err
				}
				var text string
				if aliases {
					text = app.engine.GenerateAliases(profile, opts)
				} else {
					text = app.engine.GenerateKeybinds(profile, opts)
				}
				return writeOutput(cmd, out, []byte(text))
			}

			if !watchMode {
				return generate(cmd.Context())
			}
			if vault != "" || storeDir != "" {
				return errors.New("--watch needs a profile file, not a vault or store")
			}
			return watchAndGenerate(cmd.Context(), args[0], generate)
		},
	}

	cmd.Flags().String("env", "", "Environment to generate (defaults to the profile's current environment)")
	cmd.Flags().String("bindset", "", "Named bindset to generate (default primary)")
	cmd.Flags().Bool("grouped", false, "Group keys into labeled sections")
	cmd.Flags().Bool("aliases", false, "Generate the alias file instead of the keybind file")
	cmd.Flags().String("file-name", "", "File name used in the load hint")
	cmd.Flags().StringP("out", "o", "", "Output file (default standard output)")
	cmd.Flags().String("vault", "", "Read PROFILE by ID from this Loam vault")
	cmd.Flags().String("store-dir", "", "Read PROFILE by ID from this directory store")
	cmd.Flags().String("store-format", string(file.FormatJSON), "Directory store format (json, yaml)")
	cmd.Flags().Bool("watch", false, "Regenerate whenever the profile file changes")
	return cmd
}

// watchAndGenerate generates once, then again after every change to path,
// until interrupted.
func watchAndGenerate(ctx context.Context, path string, generate func(context.Context) error) error {
	sigCtx := newSignalContext(ctx)
	defer sigCtx.cancel()

	w, err := watch.New([]string{path}, watch.WithLogger(app.logger))
	if err != nil {
		return err
	}
	if err := generate(sigCtx); err != nil {
		app.logger.Error("generation failed", "profile", path, "err", err)
	}

	app.logger.Info("watching profile", "path", path)
	err = w.Run(sigCtx, func(ctx context.Context, changed string) error {
		app.logger.Info("profile changed, regenerating", "path", changed)
		return generate(ctx)
	})
	app.logger.Info("stopped watching", "signal", sigCtx.Signal())
	return err
}

func init() {
	register(newGenerateCmd)
}
