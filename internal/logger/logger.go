// Package logger provides the leveled console logger and crash recovery for taskdeck.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options holds configuration for the console logger.
type Options struct {
	Verbose bool
	Output  io.Writer
}

// New creates a stderr logger. Only warnings and errors are shown unless
// Verbose is set, in which case debug output is included.
func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level := log.WarnLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.Verbose,
		Prefix:          "taskdeck",
	}).With("run", shortRunID())
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func shortRunID() string {
	id := RunID()
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
