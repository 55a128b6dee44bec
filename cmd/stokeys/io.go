package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/internal/presentation/tui"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/file"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/adapters/loam"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/domain"
	"github.com/sto-tools/sto-tools-keybind-manager-sub008/pkg/persistence/middleware"
	"golang.org/x/term"
)

// readInput reads path, or standard input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's output when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	app.logger.Info("wrote file", "path", path, "bytes", len(data))
	return nil
}

// profileLocation selects where loadProfile reads from. With neither field
// set the reference is a profile file path.
type profileLocation struct {
	// Vault is a Loam vault directory; the reference is a document ID.
	Vault string
	// StoreDir is a directory store; the reference is a profile ID.
	StoreDir    string
	StoreFormat file.Format
}

// loadProfile reads a profile and migrates it in memory.
func loadProfile(ctx context.Context, ref string, loc profileLocation) (*domain.Profile, error) {
	var (
		raw map[string]any
		err error
	)
	switch {
	case loc.Vault != "":
		var source *loam.Source
		source, err = loam.Open(loc.Vault)
		if err != nil {
			return nil, err
		}
		raw, err = source.Load(ctx, ref)
	case loc.StoreDir != "":
		store := middleware.Chain(
			file.New(loc.StoreDir, file.WithFormat(loc.StoreFormat)),
			middleware.NewMigratingMiddleware(app.engine.Migrator()),
		)
		raw, err = store.Load(ctx, ref)
	default:
		raw, err = file.ReadProfile(ref)
	}
	if err != nil {
		return nil, err
	}

	p, report, err := app.engine.DecodeProfile(raw)
	if err != nil {
		return nil, err
	}
	if report.Changed() {
		app.logger.Info("profile upgraded in memory", "profile", ref, "from", report.FromVersion, "to", report.ToVersion)
	}
	return p, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printMarkdown renders markdown with glamour on a terminal and writes it
// verbatim otherwise.
func printMarkdown(cmd *cobra.Command, markdown string) error {
	out := cmd.OutOrStdout()
	if isTerminal(out) {
		rendered, err := tui.NewRenderer()(markdown)
		if err == nil {
			markdown = rendered
		}
	}
	_, err := io.WriteString(out, markdown)
	return err
}
