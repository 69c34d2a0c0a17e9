// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hooktools

import (
	"context"
	"fmt"

	"github.com/juju/loggo/v2"
)

// LogWriter is a loggo.Writer that sends entries to the unit's log on the
// controller via juju-log.
type LogWriter struct {
	runner Runner
}

// NewLogWriter returns a LogWriter using the runner.
func NewLogWriter(runner Runner) *LogWriter {
	return &LogWriter{runner: runner}
}

// Write is part of loggo.Writer. Failures are dropped: there is nowhere
// left to report them.
func (w *LogWriter) Write(entry loggo.Entry) {
	msg := fmt.Sprintf("%s %s", entry.Module, entry.Message)
	_, _ = w.runner.Run(context.Background(), "juju-log", "--log-level", entry.Level.String(), msg)
}
