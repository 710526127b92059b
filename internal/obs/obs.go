// Package obs provides the module's single package-scoped logger: a thin
// wrapper over github.com/rs/zerolog used by the recorder's misuse
// diagnostics, the optimizer's per-pass change counts, and the CLI.
package obs

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the process-wide structured logger. It defaults to a
// human-readable console writer on stderr; CLI entry points may replace it
// (via SetOutput/SetLevel) before doing any work.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

// SetLevel adjusts the minimum level Logger emits.
func SetLevel(level zerolog.Level) {
	Logger = Logger.Level(level)
}

// SetOutput redirects Logger's writer, e.g. to plain JSON for non-TTY use.
func SetOutput(w io.Writer) {
	Logger = Logger.Output(w)
}
