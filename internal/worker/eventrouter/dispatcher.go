// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package eventrouter

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/worker/v4/catacomb"
)

// ErrDispatcherStopped is returned for triggers submitted after the
// dispatcher has started shutting down.
const ErrDispatcherStopped = errors.ConstError("dispatcher stopped")

// TriggerHandler handles a single trigger to completion.
type TriggerHandler interface {
	Handle(ctx context.Context, t Trigger) error
}

type request struct {
	ctx     context.Context
	trigger Trigger
	result  chan<- error
}

// Dispatcher is a worker that feeds triggers to a TriggerHandler one at a
// time, in the order they were submitted. No two triggers are ever handled
// concurrently, so the handler needs no locking.
type Dispatcher struct {
	catacomb catacomb.Catacomb
	handler  TriggerHandler
	requests chan request
}

// NewDispatcher starts a Dispatcher for the handler.
func NewDispatcher(handler TriggerHandler) (*Dispatcher, error) {
	if handler == nil {
		return nil, errors.NotValidf("nil TriggerHandler")
	}
	d := &Dispatcher{
		handler:  handler,
		requests: make(chan request),
	}
	err := catacomb.Invoke(catacomb.Plan{
		Site: &d.catacomb,
		Work: d.loop,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return d, nil
}

// Kill is part of the worker.Worker interface.
func (d *Dispatcher) Kill() {
	d.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (d *Dispatcher) Wait() error {
	return d.catacomb.Wait()
}

// Dispatch submits the trigger and blocks until it has been handled,
// returning the handler's result. Once accepted, a trigger is always
// handled to completion, even if the dispatcher is killed meanwhile.
func (d *Dispatcher) Dispatch(ctx context.Context, t Trigger) error {
	result := make(chan error, 1)
	select {
	case <-d.catacomb.Dying():
		return ErrDispatcherStopped
	case <-ctx.Done():
		return errors.Trace(ctx.Err())
	case d.requests <- request{ctx: ctx, trigger: t, result: result}:
	}
	return <-result
}

func (d *Dispatcher) loop() error {
	for {
		select {
		case <-d.catacomb.Dying():
			return d.catacomb.ErrDying()
		case req := <-d.requests:
			req.result <- d.handler.Handle(req.ctx, req.trigger)
		}
	}
}
