// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package actions implements the operator-invoked charm actions.
package actions

import (
	"context"

	"github.com/juju/collections/set"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

var logger = loggo.GetLogger("jaeger.actions")

const (
	// RestartAction is the name of the restart action.
	RestartAction = "restart"

	// ServiceParam names the service to restart.
	ServiceParam = "service"
)

// Handler runs actions against the managed services.
type Handler struct {
	supervisor workload.Supervisor
	services   set.Strings
}

// NewHandler returns a Handler able to act on the named services.
func NewHandler(supervisor workload.Supervisor, services ...string) (*Handler, error) {
	if supervisor == nil {
		return nil, errors.NotValidf("nil Supervisor")
	}
	if len(services) == 0 {
		return nil, errors.NotValidf("empty services")
	}
	return &Handler{
		supervisor: supervisor,
		services:   set.NewStrings(services...),
	}, nil
}

// Restart stops the named service if it is running and starts it again.
// An unmanaged name yields a NotFound error without touching any service.
func (h *Handler) Restart(ctx context.Context, name string) error {
	if !h.services.Contains(name) {
		return errors.NotFoundf("service %q", name)
	}
	state, err := workload.Restart(ctx, h.supervisor, name)
	if err != nil {
		return errors.Annotatef(err, "restarting %q", name)
	}
	logger.Infof("restarted %q (was running: %v)", name, state.Restarted)
	return nil
}
