// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package eventrouter

import (
	"context"
	"fmt"
)

// Trigger is an external event the router reacts to. The set of triggers
// is closed: each one dispatches to its own method on Handler, so a new
// trigger cannot be added without the router handling it.
type Trigger interface {
	fmt.Stringer

	// Kind returns a short, stable name for the trigger type.
	Kind() string

	accept(ctx context.Context, h Handler) error
}

// Handler has one method per Trigger type.
type Handler interface {
	HandleServiceReady(ctx context.Context, t ServiceReady) error
	HandleConfigChanged(ctx context.Context, t ConfigChanged) error
	HandleDatastoreRelationChanged(ctx context.Context, t DatastoreRelationChanged) error
	HandleDatastoreRelationBroken(ctx context.Context, t DatastoreRelationBroken) error
	HandleTracingRelationChanged(ctx context.Context, t TracingRelationChanged) error
	HandleRestartAction(ctx context.Context, t RestartAction) error
}

// ServiceReady fires when the supervisor in a workload container is ready
// to accept the service's definition.
type ServiceReady struct {
	Service string
}

func (t ServiceReady) Kind() string   { return "service-ready" }
func (t ServiceReady) String() string { return fmt.Sprintf("%s-pebble-ready", t.Service) }
func (t ServiceReady) accept(ctx context.Context, h Handler) error {
	return h.HandleServiceReady(ctx, t)
}

// ConfigChanged fires when the charm configuration may have changed.
type ConfigChanged struct{}

func (t ConfigChanged) Kind() string   { return "config-changed" }
func (t ConfigChanged) String() string { return "config-changed" }
func (t ConfigChanged) accept(ctx context.Context, h Handler) error {
	return h.HandleConfigChanged(ctx, t)
}

// DatastoreRelationChanged fires when a datastore unit joins or changes
// its relation data.
type DatastoreRelationChanged struct {
	Relation string
}

func (t DatastoreRelationChanged) Kind() string { return "datastore-relation-changed" }
func (t DatastoreRelationChanged) String() string {
	return fmt.Sprintf("%s-relation-changed", t.Relation)
}
func (t DatastoreRelationChanged) accept(ctx context.Context, h Handler) error {
	return h.HandleDatastoreRelationChanged(ctx, t)
}

// DatastoreRelationBroken fires when the datastore unit departs or the
// relation is removed.
type DatastoreRelationBroken struct {
	Relation string
}

func (t DatastoreRelationBroken) Kind() string { return "datastore-relation-broken" }
func (t DatastoreRelationBroken) String() string {
	return fmt.Sprintf("%s-relation-broken", t.Relation)
}
func (t DatastoreRelationBroken) accept(ctx context.Context, h Handler) error {
	return h.HandleDatastoreRelationBroken(ctx, t)
}

// TracingRelationChanged fires when a tracing client joins or changes.
type TracingRelationChanged struct {
	Relation string
}

func (t TracingRelationChanged) Kind() string { return "tracing-relation-changed" }
func (t TracingRelationChanged) String() string {
	return fmt.Sprintf("%s-relation-changed", t.Relation)
}
func (t TracingRelationChanged) accept(ctx context.Context, h Handler) error {
	return h.HandleTracingRelationChanged(ctx, t)
}

// RestartAction is the operator-invoked restart of one service.
type RestartAction struct {
	Service string
}

func (t RestartAction) Kind() string   { return "restart-action" }
func (t RestartAction) String() string { return fmt.Sprintf("restart(%s)", t.Service) }
func (t RestartAction) accept(ctx context.Context, h Handler) error {
	return h.HandleRestartAction(ctx, t)
}
