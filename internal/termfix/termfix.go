// Package termfix adjusts terminal environment before lipgloss/termenv load.
// Import this package FIRST in main using:
//
//	_ "github.com/wahlandcase/release-inquisitor/internal/termfix"
package termfix

import "os"

func init() {
	// Warp answers termenv's background-colour query slowly; declaring
	// truecolor up front skips the query.
	if os.Getenv("TERM_PROGRAM") == "WarpTerminal" && os.Getenv("COLORTERM") == "" {
		os.Setenv("COLORTERM", "truecolor")
	}
}

// NoColorRequested reports whether the environment asks for plain output
// (NO_COLOR set to anything non-empty, or a dumb terminal)
func NoColorRequested() bool {
	return noColorRequested(os.Getenv)
}

func noColorRequested(getenv func(string) string) bool {
	return getenv("NO_COLOR") != "" || getenv("TERM") == "dumb"
}
