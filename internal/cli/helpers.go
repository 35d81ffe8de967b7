// Package cli holds the shared plumbing for the spmeplan commands: logging,
// terminal rendering and compound file loading.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/seplab/spmeplan/internal/logging"
	"github.com/seplab/spmeplan/internal/presentation/tui"
	"golang.org/x/term"
)

// CreateLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout table output).
func CreateLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// PrintSystemMessage prints a standardized system message to stdout.
func PrintSystemMessage(format string, args ...any) {
	fmt.Printf(">>> %s\n", fmt.Sprintf(format, args...))
}

// RenderMarkdown pretty-prints markdown when stdout is a terminal and falls
// back to the raw text when output is piped or redirected.
func RenderMarkdown(markdown string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return markdown
	}

	width := 0
	if w, _, err := term.GetSize(fd); err == nil {
		width = w
	}

	render := tui.NewRenderer(width)
	out, err := render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
