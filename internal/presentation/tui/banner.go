package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the stokeys banner followed by the version line.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"      _        _                  ", "#60a5fa"},
		{"  ___| |_ ___ | | _____ _   _ ___ ", "#818cf8"},
		{" / __| __/ _ \\| |/ / _ \\ | | / __|", "#a78bfa"},
		{" \\__ \\ || (_) |   <  __/ |_| \\__ \\", "#c084fc"},
		{" |___/\\__\\___/|_|\\_\\___|\\__, |___/", "#e879f9"},
		{"                        |___/     ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String(" keybind manager "+version).Faint())
	fmt.Fprintln(w)
}
