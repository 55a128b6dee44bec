package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/presentation/graph"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/presentation/tui"
	"gopkg.in/yaml.v3"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a keybind or alias file",
		Long: `Parses a keybind or alias file ("-" reads standard input) and prints the
recognized keybinds, aliases, and unrecognized lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			asGraph, _ := cmd.Flags().GetBool("graph")
			strict, _ := cmd.Flags().GetBool("strict")

			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc := app.engine.Parse(string(data))
			app.logger.Info("parsed file", "path", args[0], "keybinds", len(doc.Keybinds), "aliases", len(doc.Aliases), "errors", len(doc.Errors))

			switch {
			case asGraph:
				_, err = io.WriteString(cmd.OutOrStdout(), graph.GenerateMermaid(doc))
			case format == "json":
				var out []byte
				out, err = json.MarshalIndent(doc, "", "  ")
				if err == nil {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
				}
			case format == "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				err = enc.Encode(doc)
				if err == nil {
					err = enc.Close()
				}
			case format == "markdown":
				err = printMarkdown(cmd, tui.DocumentMarkdown(filepath.Base(args[0]), doc))
			default:
				return fmt.Errorf("unknown format %q (want json, yaml or markdown)", format)
			}
			if err != nil {
				return err
			}

			if strict && len(doc.Errors) > 0 {
				return fmt.Errorf("%d unrecognized line(s), first: %w", len(doc.Errors), doc.Errors[0])
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "markdown", "Output format (json, yaml, markdown)")
	cmd.Flags().Bool("graph", false, "Print a Mermaid diagram of key and alias references")
	cmd.Flags().Bool("strict", false, "Fail when the file contains unrecognized lines")
	return cmd
}

func init() {
	register(newParseCmd)
}
