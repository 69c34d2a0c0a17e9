// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package workload

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/core/status"
	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
	"github.com/juju/jaeger-k8s-operator/internal/datastore"
)

var logger = loggo.GetLogger("jaeger.workload")

// ErrSupervisor is satisfied by every error originating from a call to the
// process supervisor.
const ErrSupervisor = errors.ConstError("supervisor error")

// Supervisor stores named service definitions and starts and stops the
// corresponding processes. Calls naming a service whose container is not
// registered fail with a NotFound error.
type Supervisor interface {
	// MergeLayer adds layer to the stored definitions for the named
	// service. With combine set, a stored layer with the same label is
	// combined with the new one rather than rejected.
	MergeLayer(ctx context.Context, name string, layer Layer, combine bool) error

	// IsRunning reports whether the named service is currently running.
	IsRunning(ctx context.Context, name string) (bool, error)

	// Start starts the named service and blocks until it has started.
	Start(ctx context.Context, name string) error

	// Stop stops the named service and blocks until it has stopped.
	Stop(ctx context.Context, name string) error
}

// RunState describes the result of a successful Apply.
type RunState struct {
	// Service is the name of the applied service.
	Service string

	// Restarted is true when a running instance was stopped before the
	// new one was started.
	Restarted bool
}

// Apply merges the definition into the supervisor's stored layer, then
// restarts the service: it is stopped if running and always started, even
// when the definition has not changed, so the process runs with the latest
// merged configuration. Applying the same definition twice leaves exactly
// one running instance.
func Apply(ctx context.Context, supervisor Supervisor, svc Service) (RunState, error) {
	name := svc.Name
	if err := supervisor.MergeLayer(ctx, name, svc.Layer(), true); err != nil {
		return RunState{}, supervisorError(err, "adding layer for %q", name)
	}
	state := RunState{Service: name}
	if err := restart(ctx, supervisor, name, &state); err != nil {
		return RunState{}, errors.Trace(err)
	}
	logger.Debugf("applied %q (restarted: %v)", name, state.Restarted)
	return state, nil
}

// Restart stops the named service if it is running, then starts it. The
// stored definition is not changed.
func Restart(ctx context.Context, supervisor Supervisor, name string) (RunState, error) {
	state := RunState{Service: name}
	if err := restart(ctx, supervisor, name, &state); err != nil {
		return RunState{}, errors.Trace(err)
	}
	return state, nil
}

func restart(ctx context.Context, supervisor Supervisor, name string, state *RunState) error {
	running, err := supervisor.IsRunning(ctx, name)
	if err != nil {
		return supervisorError(err, "checking %q", name)
	}
	if running {
		if err := supervisor.Stop(ctx, name); err != nil {
			return supervisorError(err, "stopping %q", name)
		}
		state.Restarted = true
	}
	if err := supervisor.Start(ctx, name); err != nil {
		return supervisorError(err, "starting %q", name)
	}
	return nil
}

func supervisorError(err error, format string, args ...interface{}) error {
	return errors.WithType(errors.Annotatef(err, format, args...), ErrSupervisor)
}

// Outcome is the result of reconciling one service.
type Outcome struct {
	RunState

	// Status is the unit status this service contributes: Blocked when a
	// datastore consumer was applied without an endpoint, otherwise
	// Active.
	Status status.Status
}

// Reconciler reconciles a single managed service. It is the only
// component that touches that service.
type Reconciler struct {
	name       string
	supervisor Supervisor
}

// NewReconciler returns a Reconciler for the named managed service.
func NewReconciler(name string, supervisor Supervisor) (*Reconciler, error) {
	if _, err := Define(name, charmconfig.UnitConfig{}, datastore.Endpoint{}); err != nil {
		return nil, errors.Trace(err)
	}
	if supervisor == nil {
		return nil, errors.NotValidf("nil Supervisor")
	}
	return &Reconciler{name: name, supervisor: supervisor}, nil
}

// Name returns the name of the reconciled service.
func (r *Reconciler) Name() string {
	return r.name
}

// Define returns the desired definition of the service. It is a pure
// function of its arguments.
func (r *Reconciler) Define(cfg charmconfig.UnitConfig, ep datastore.Endpoint) Service {
	svc, _ := Define(r.name, cfg, ep)
	return svc
}

// Reconcile computes the desired definition from cfg and the endpoint
// (present reports whether ep is usable) and applies it.
func (r *Reconciler) Reconcile(ctx context.Context, cfg charmconfig.UnitConfig, ep datastore.Endpoint, present bool) (Outcome, error) {
	if !present {
		ep = datastore.Endpoint{}
	}
	state, err := Apply(ctx, r.supervisor, r.Define(cfg, ep))
	if err != nil {
		return Outcome{}, errors.Trace(err)
	}
	outcome := Outcome{RunState: state, Status: status.Active}
	if NeedsDatastore(r.name) && !present {
		outcome.Status = status.Blocked
	}
	return outcome, nil
}
