package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/seismic-map-service/internal/adapter/scene"
	"golang.org/x/term"
)

const ansiReset = "\033[0m"

var magnitudeColors = map[string]string{
	"magnitude-low":    "\033[32m",
	"magnitude-medium": "\033[33m",
	"magnitude-high":   "\033[31m",
}

// shouldUseColor respects NO_COLOR and CLICOLOR_FORCE, then falls back to
// TTY detection on stdout.
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// printList writes one line per row, or the placeholder when the list
// shows one.
func printList(w io.Writer, st scene.ListState, color bool) {
	if st.Placeholder != "" {
		fmt.Fprintln(w, st.Placeholder)
		return
	}
	if len(st.Rows) == 0 {
		fmt.Fprintln(w, "No earthquakes in this window.")
		return
	}
	for _, row := range st.Rows {
		mag := fmt.Sprintf("M%-4s", row.Magnitude)
		if c, ok := magnitudeColors[row.MagnitudeClass]; ok && color {
			mag = c + mag + ansiReset
		}
		fmt.Fprintf(w, "%s  %-24s  %s\n", mag, row.Time, row.Place)
	}
}
