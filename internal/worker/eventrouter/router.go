// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package eventrouter maps charm events onto reconciliation of the jaeger
// workloads and derives the unit status from the outcome.
package eventrouter

import (
	"context"
	"fmt"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/core/relation"
	"github.com/juju/jaeger-k8s-operator/core/status"
	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
	"github.com/juju/jaeger-k8s-operator/internal/datastore"
	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

var logger = loggo.GetLogger("jaeger.worker.eventrouter")

// Status messages.
const (
	MessageReady             = "Jaeger ready to use"
	MessageUpdatingConfig    = "Updating configuration"
	MessageUpdatingDatastore = "Updating datastore relation"
	MessageClearingDatastore = "Clearing datastore relation"
	MessageDatastoreMissing  = "datastore endpoint missing, check for missing relation with elasticsearch-k8s"
	MessageDatastoreData     = "Datastore hostname or port missing in the relation data"
	MessageDatastoreRead     = "Failed to read datastore relation data, see the unit log"
)

// Publisher publishes the agent location on a tracing relation.
type Publisher interface {
	Publish(ctx context.Context, relationName string, cfg charmconfig.UnitConfig) (bool, error)
}

// Restarter restarts a managed service on request.
type Restarter interface {
	Restart(ctx context.Context, name string) error
}

// Config holds the dependencies of a Router.
type Config struct {
	ConfigSource charmconfig.Source
	Peers        datastore.PeerReader
	Supervisor   workload.Supervisor
	Publisher    Publisher
	Restarter    Restarter
	StatusSetter status.StatusSetter
	Clock        clock.Clock

	// Metrics is optional.
	Metrics *Collector

	// DatastoreRelation is the endpoint the datastore is related on.
	// Defaults to "datastore".
	DatastoreRelation string
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if c.ConfigSource == nil {
		return errors.NotValidf("nil ConfigSource")
	}
	if c.Peers == nil {
		return errors.NotValidf("nil Peers")
	}
	if c.Supervisor == nil {
		return errors.NotValidf("nil Supervisor")
	}
	if c.Publisher == nil {
		return errors.NotValidf("nil Publisher")
	}
	if c.Restarter == nil {
		return errors.NotValidf("nil Restarter")
	}
	if c.StatusSetter == nil {
		return errors.NotValidf("nil StatusSetter")
	}
	if c.Clock == nil {
		return errors.NotValidf("nil Clock")
	}
	return nil
}

// Router handles one trigger at a time. It keeps no state between
// triggers apart from the last status it set; configuration and the
// datastore endpoint are read afresh every time.
type Router struct {
	config      Config
	reconcilers map[string]*workload.Reconciler
	current     status.StatusInfo
}

var _ Handler = (*Router)(nil)

// NewRouter returns a Router with a reconciler for each managed service.
func NewRouter(config Config) (*Router, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if config.DatastoreRelation == "" {
		config.DatastoreRelation = relation.DatastoreEndpoint
	}
	r := &Router{
		config:      config,
		reconcilers: make(map[string]*workload.Reconciler),
		current:     status.StatusInfo{Status: status.Idle},
	}
	for _, name := range workload.ManagedServices() {
		rec, err := workload.NewReconciler(name, config.Supervisor)
		if err != nil {
			return nil, errors.Trace(err)
		}
		r.reconcilers[name] = rec
	}
	return r, nil
}

// Status returns the unit status set by the most recently handled
// trigger.
func (r *Router) Status() status.StatusInfo {
	return r.current
}

// Handle dispatches the trigger to its handler and runs it to completion.
func (r *Router) Handle(ctx context.Context, t Trigger) error {
	logger.Debugf("handling %s", t)
	r.config.Metrics.triggerHandled(t.Kind())
	return errors.Trace(t.accept(ctx, r))
}

// HandleServiceReady is part of Handler.
func (r *Router) HandleServiceReady(ctx context.Context, t ServiceReady) error {
	if _, ok := r.reconcilers[t.Service]; !ok {
		return errors.NotFoundf("service %q", t.Service)
	}
	msg := fmt.Sprintf("Configuring jaeger-%s", t.Service)
	if !workload.NeedsDatastore(t.Service) {
		return r.reconcile(ctx, msg, datastore.Endpoint{}, datastore.Resolved, t.Service)
	}
	ep, reason := datastore.Resolve(ctx, r.config.Peers, r.config.DatastoreRelation)
	return r.reconcile(ctx, msg, ep, reason, t.Service)
}

// HandleConfigChanged is part of Handler.
func (r *Router) HandleConfigChanged(ctx context.Context, _ ConfigChanged) error {
	ep, reason := datastore.Resolve(ctx, r.config.Peers, r.config.DatastoreRelation)
	return r.reconcile(ctx, MessageUpdatingConfig, ep, reason, workload.ManagedServices()...)
}

// HandleDatastoreRelationChanged is part of Handler.
func (r *Router) HandleDatastoreRelationChanged(ctx context.Context, _ DatastoreRelationChanged) error {
	ep, reason := datastore.Resolve(ctx, r.config.Peers, r.config.DatastoreRelation)
	return r.reconcile(ctx, MessageUpdatingDatastore, ep, reason, workload.Collector, workload.Query)
}

// HandleDatastoreRelationBroken is part of Handler. The relation data is
// not consulted: the endpoint is treated as gone.
func (r *Router) HandleDatastoreRelationBroken(ctx context.Context, _ DatastoreRelationBroken) error {
	return r.reconcile(ctx, MessageClearingDatastore, datastore.Endpoint{}, datastore.NoRelation, workload.Collector, workload.Query)
}

// HandleTracingRelationChanged is part of Handler. It never touches the
// managed services or the unit status.
func (r *Router) HandleTracingRelationChanged(ctx context.Context, t TracingRelationChanged) error {
	cfg, err := charmconfig.Read(ctx, r.config.ConfigSource)
	if errors.Is(err, errors.NotValid) {
		logger.Warningf("not publishing on %q: %v", t.Relation, err)
		return nil
	} else if err != nil {
		return errors.Trace(err)
	}
	_, err = r.config.Publisher.Publish(ctx, t.Relation, cfg)
	return errors.Trace(err)
}

// HandleRestartAction is part of Handler. The action result is the
// returned error; the unit status is left unchanged.
func (r *Router) HandleRestartAction(ctx context.Context, t RestartAction) error {
	err := r.config.Restarter.Restart(ctx, t.Service)
	if err != nil {
		r.config.Metrics.restartHandled(resultError)
		return errors.Trace(err)
	}
	r.config.Metrics.restartHandled(resultOK)
	return nil
}

// reconcile applies the named services in order, with the endpoint as
// resolved for the reason given, and sets the resulting unit status. A
// supervisor failure abandons that service only.
func (r *Router) reconcile(
	ctx context.Context, maintenance string,
	ep datastore.Endpoint, reason datastore.Reason,
	services ...string,
) error {
	if err := r.setStatus(ctx, status.Maintenance, maintenance); err != nil {
		return errors.Trace(err)
	}
	cfg, err := charmconfig.Read(ctx, r.config.ConfigSource)
	if errors.Is(err, errors.NotValid) {
		return r.setStatus(ctx, status.Blocked, fmt.Sprintf("invalid config: %v", err))
	} else if err != nil {
		msg := fmt.Sprintf("failed to read config: %v", errors.Cause(err))
		if sErr := r.setStatus(ctx, status.Blocked, msg); sErr != nil {
			logger.Errorf("%v", sErr)
		}
		return errors.Trace(err)
	}

	present := reason == datastore.Resolved
	var blocked string
	for _, name := range services {
		outcome, err := r.reconcilers[name].Reconcile(ctx, cfg, ep, present)
		if err != nil {
			logger.Errorf("reconciling %q: %v", name, err)
			r.config.Metrics.reconciled(name, resultError)
			if blocked == "" {
				blocked = fmt.Sprintf("failed to reconcile %s: %v", name, err)
			}
			continue
		}
		r.config.Metrics.reconciled(name, string(outcome.Status))
		if outcome.Status == status.Blocked && blocked == "" {
			blocked = blockedMessage(reason)
		}
	}
	if blocked != "" {
		return r.setStatus(ctx, status.Blocked, blocked)
	}
	return r.setStatus(ctx, status.Active, MessageReady)
}

func blockedMessage(reason datastore.Reason) string {
	switch reason {
	case datastore.IncompleteData:
		return MessageDatastoreData
	case datastore.ReadFailed:
		return MessageDatastoreRead
	}
	return MessageDatastoreMissing
}

func (r *Router) setStatus(ctx context.Context, s status.Status, msg string) error {
	now := r.config.Clock.Now()
	info := status.StatusInfo{
		Status:  s,
		Message: msg,
		Since:   &now,
	}
	r.current = info
	if err := r.config.StatusSetter.SetStatus(ctx, info); err != nil {
		return errors.Annotatef(err, "setting status %q", s)
	}
	return nil
}
