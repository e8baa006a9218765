// Package cli implements the lineage command-line interface.
//
// The CLI reads family charts (JSON or TOML), runs the layout pipeline and
// writes layouts and rendered artifacts. It is built on cobra and logs
// through charmbracelet/log.
//
// # Commands
//
//   - layout: compute a layout and write it as JSON
//   - render: compute a layout and render it (svg, png, pdf, dot, json)
//   - visualize: render a previously written layout file
//   - inspect: show the generation rows of a chart, optionally interactively
//   - serve: run the HTTP API
//   - cache: show or clear the layout cache
//
// # Configuration
//
// Defaults come from lineage.toml (see package config). Flags given on the
// command line override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The log level
// in the configuration file applies when the flag is absent.
package cli

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLevel maps a configured level name to a log level. Unknown names
// fall back to info.
func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, for
// example "Placed 42 people (12ms)".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))...)
}
