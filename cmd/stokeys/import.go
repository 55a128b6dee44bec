package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/file"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/keyfile"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Build a profile from keybind and alias files",
		Long: `Parses one or more keybind or alias files and stores their keybinds and
aliases in a new profile. Later files win when a key or alias repeats.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			env, _ := cmd.Flags().GetString("env")
			bindset, _ := cmd.Flags().GetString("bindset")
			unmirror, _ := cmd.Flags().GetBool("unmirror")
			out, _ := cmd.Flags().GetString("out")

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			opts := keyfile.ImportOptions{Name: name, Bindset: bindset, Unmirror: unmirror}

			var profile *domain.Profile
			for _, path := range args {
				data, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				p, doc := app.engine.Import(string(data), env, opts)
				for _, lineErr := range doc.Errors {
					app.logger.Warn("skipped line", "path", path, "line", lineErr.LineNumber, "raw", lineErr.Raw)
				}
				if profile == nil {
					profile = p
					continue
				}
				mergeProfile(profile, p, env, bindset)
			}

			raw, err := profile.ToMap()
			if err != nil {
				return err
			}
			if out != "" && out != "-" {
				if err := file.WriteProfile(out, raw); err != nil {
					return err
				}
				app.logger.Info("wrote profile", "path", out)
				return nil
			}
			data, err := json.MarshalIndent(raw, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode profile: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().String("name", "", "Profile name (defaults to the first file name)")
	cmd.Flags().String("env", domain.EnvironmentSpace, "Environment receiving the keybinds (space, ground)")
	cmd.Flags().String("bindset", "", "Named bindset receiving the keybinds (default primary)")
	cmd.Flags().Bool("unmirror", false, "Store mirrored chains in original form and mark them stabilized")
	cmd.Flags().StringP("out", "o", "", "Write the profile to this .json or .yaml file")
	return cmd
}

// mergeProfile copies the keys and aliases of src into dst.
func mergeProfile(dst, src *domain.Profile, env, bindset string) {
	for key, tokens := range src.Keys(env, bindset) {
		dst.SetChain(env, bindset, key, tokens)
		if src.Stabilized(env, bindset, key) {
			dst.SetStabilized(env, bindset, key, true)
		}
	}
	for name, alias := range src.Aliases {
		dst.Aliases[name] = alias
		if src.AliasStabilized(name) {
			dst.SetAliasStabilized(name, true)
		}
	}
}

func init() {
	register(newImportCmd)
}
