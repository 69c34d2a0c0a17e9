// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package datastore derives the span storage endpoint from the data a
// related elasticsearch unit publishes.
package datastore

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/core/relation"
)

var logger = loggo.GetLogger("jaeger.datastore")

// PeerReader reads the relation data published by the first unit on the
// other side of a relation. It returns a NotFound error when the relation
// or the remote unit does not exist.
type PeerReader interface {
	ReadPeerRecord(ctx context.Context, relationName string) (map[string]string, error)
}

// Endpoint is the reachable address of the datastore.
type Endpoint struct {
	URL string
}

// Reason describes why a resolution did or did not yield an endpoint.
type Reason int

const (
	// Resolved means an endpoint was found.
	Resolved Reason = iota
	// NoRelation means there is no related datastore unit to read from.
	NoRelation
	// IncompleteData means the remote unit has not yet published both its
	// address and port.
	IncompleteData
	// ReadFailed means the relation data could not be read at all.
	ReadFailed
)

// String is part of fmt.Stringer.
func (r Reason) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case NoRelation:
		return "no relation"
	case IncompleteData:
		return "incomplete data"
	case ReadFailed:
		return "read failed"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// ResolveEndpoint returns the datastore endpoint published on the named
// relation and whether one is available.
func ResolveEndpoint(ctx context.Context, reader PeerReader, relationName string) (Endpoint, bool) {
	ep, reason := Resolve(ctx, reader, relationName)
	return ep, reason == Resolved
}

// Resolve is ResolveEndpoint, additionally reporting why no endpoint was
// found. It never fails: an absent endpoint is the normal state until the
// datastore is related and ready.
func Resolve(ctx context.Context, reader PeerReader, relationName string) (Endpoint, Reason) {
	data, err := reader.ReadPeerRecord(ctx, relationName)
	if errors.Is(err, errors.NotFound) {
		logger.Debugf("no datastore on %q: %v", relationName, err)
		return Endpoint{}, NoRelation
	} else if err != nil {
		logger.Errorf("reading %q relation data: %v", relationName, err)
		return Endpoint{}, ReadFailed
	}
	return fromRecord(data)
}

func fromRecord(data map[string]string) (Endpoint, Reason) {
	host := data[relation.IngressAddressKey]
	port := data[relation.PortKey]
	if host == "" || port == "" {
		return Endpoint{}, IncompleteData
	}
	ep := Endpoint{URL: fmt.Sprintf("http://%s:%s", host, port)}
	logger.Debugf("datastore endpoint details received: %s", ep.URL)
	return ep, Resolved
}
