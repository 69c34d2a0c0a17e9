// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package eventrouter

import (
	"context"
	"path"
	"strings"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/juju/jaeger-k8s-operator/core/relation"
	"github.com/juju/jaeger-k8s-operator/internal/actions"
	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

// ActionParams reads the parameters of the running action.
type ActionParams interface {
	ActionGet(ctx context.Context, key string) (string, error)
}

// ParseDispatchPath returns the trigger for a juju dispatch path such as
// "hooks/config-changed" or "actions/restart". Events the charm does not
// react to yield a NotSupported error.
func ParseDispatchPath(ctx context.Context, dispatchPath string, params ActionParams) (Trigger, error) {
	dir, name := path.Split(dispatchPath)
	switch strings.TrimSuffix(dir, "/") {
	case "hooks":
		return parseHook(name)
	case "actions":
		return parseAction(ctx, name, params)
	}
	return nil, errors.NotValidf("dispatch path %q", dispatchPath)
}

func parseHook(name string) (Trigger, error) {
	if name == "config-changed" {
		return ConfigChanged{}, nil
	}
	if svc, ok := strings.CutSuffix(name, "-pebble-ready"); ok {
		if set.NewStrings(workload.ManagedServices()...).Contains(svc) {
			return ServiceReady{Service: svc}, nil
		}
		return nil, errors.NotSupportedf("hook %q", name)
	}
	endpoint, kind, ok := splitRelationHook(name)
	if !ok {
		return nil, errors.NotSupportedf("hook %q", name)
	}
	switch {
	case endpoint == relation.DatastoreEndpoint && (kind == "joined" || kind == "changed"):
		return DatastoreRelationChanged{Relation: endpoint}, nil
	case endpoint == relation.DatastoreEndpoint && (kind == "departed" || kind == "broken"):
		return DatastoreRelationBroken{Relation: endpoint}, nil
	case relation.IsTracingEndpoint(endpoint) && (kind == "joined" || kind == "changed"):
		return TracingRelationChanged{Relation: endpoint}, nil
	}
	return nil, errors.NotSupportedf("hook %q", name)
}

// splitRelationHook splits e.g. "datastore-relation-changed" into
// ("datastore", "changed").
func splitRelationHook(name string) (string, string, bool) {
	i := strings.LastIndex(name, "-relation-")
	if i <= 0 {
		return "", "", false
	}
	return name[:i], name[i+len("-relation-"):], true
}

func parseAction(ctx context.Context, name string, params ActionParams) (Trigger, error) {
	if name != actions.RestartAction {
		return nil, errors.NotSupportedf("action %q", name)
	}
	if params == nil {
		return nil, errors.NotValidf("nil ActionParams")
	}
	svc, err := params.ActionGet(ctx, actions.ServiceParam)
	if err != nil {
		return nil, errors.Annotatef(err, "reading %q parameter", actions.ServiceParam)
	}
	return RestartAction{Service: svc}, nil
}
