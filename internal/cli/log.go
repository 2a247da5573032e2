// Package cli implements the eggsposition command-line interface.
//
// Commands load e-graphs (egraph-serialize JSON) and hypergraphs (JSON or
// YAML), flatten them into the node/edge graph model, and write or render
// the result. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - (root) file.json: Inspect an e-graph and summarize it
//   - convert: Write the flattened graph as JSON or force-graph data
//   - render: Generate DOT, SVG or PNG diagrams
//   - samples: List, show or interactively pick built-in hypergraphs
//   - serve: Run the HTTP API
//   - cache: Manage the conversion cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Verbose mode
// also registers logging hooks on the pipeline, cache and HTTP layers.
package cli

import (
	"io"
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

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 artifacts (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
