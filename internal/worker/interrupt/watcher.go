// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package interrupt cancels an in-flight dispatch when the process is
// signalled, so pebble calls stop waiting before juju kills the hook.
package interrupt

import (
	"context"
	"os"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/worker/v4/catacomb"
)

var logger = loggo.GetLogger("jaeger.worker.interrupt")

// ErrInterrupted is the worker error after a signal was received.
const ErrInterrupted = errors.ConstError("dispatch interrupted")

// Watcher is a worker that cancels a context on the first signal read
// from its channel.
type Watcher struct {
	catacomb catacomb.Catacomb
	sigCh    <-chan os.Signal
	cancel   context.CancelFunc
}

// NewWatcher starts a Watcher reading sig. cancel is called once, when a
// signal arrives.
func NewWatcher(sig <-chan os.Signal, cancel context.CancelFunc) (*Watcher, error) {
	if sig == nil {
		return nil, errors.NotValidf("nil signal channel")
	}
	if cancel == nil {
		return nil, errors.NotValidf("nil cancel func")
	}
	w := &Watcher{
		sigCh:  sig,
		cancel: cancel,
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &w.catacomb,
		Work: w.loop,
	}); err != nil {
		return nil, errors.Annotate(err, "starting interrupt watcher")
	}
	return w, nil
}

// Kill is part of the worker.Worker interface.
func (w *Watcher) Kill() {
	w.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (w *Watcher) Wait() error {
	return w.catacomb.Wait()
}

func (w *Watcher) loop() error {
	select {
	case sig, ok := <-w.sigCh:
		if !ok {
			return errors.New("signal channel closed unexpectedly")
		}
		logger.Warningf("received %v, cancelling dispatch", sig)
		w.cancel()
		return ErrInterrupted
	case <-w.catacomb.Dying():
		return w.catacomb.ErrDying()
	}
}
