// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package hooktools talks to the juju controller through the hook tools
// available to a charm while it handles an event.
package hooktools

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/juju/errors"
)

// Runner runs a hook tool and returns its standard output.
type Runner interface {
	Run(ctx context.Context, tool string, args ...string) ([]byte, error)
}

// ExecRunner runs hook tools as child processes found on PATH.
type ExecRunner struct{}

// Run is part of Runner. The tool's standard error, if any, becomes the
// error message on failure.
func (ExecRunner) Run(ctx context.Context, tool string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Errorf("%s: %s", tool, msg)
		}
		return nil, errors.Annotatef(err, "running %s", tool)
	}
	return stdout.Bytes(), nil
}
