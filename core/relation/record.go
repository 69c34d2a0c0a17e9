// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package relation

import "strconv"

// Endpoint names declared in the charm metadata.
const (
	DatastoreEndpoint          = "datastore"
	JaegerEndpoint             = "jaeger"
	DistributedTracingEndpoint = "distributed-tracing"
)

// Keys published by the datastore (elasticsearch) side of a relation.
const (
	IngressAddressKey = "ingress-address"
	PortKey           = "port"
)

// Keys the leader publishes to tracing clients.
const (
	AgentAddressKey = "agent-address"
	PortBinaryKey   = "port_binary"
)

// Record is the agent location published into the local unit's bucket of
// a tracing relation.
type Record struct {
	AgentAddress string
	Port         int
	PortBinary   int
}

// Settings returns the record as relation settings. All values are
// strings, as relation data is untyped.
func (r Record) Settings() map[string]string {
	return map[string]string{
		AgentAddressKey: r.AgentAddress,
		PortKey:         strconv.Itoa(r.Port),
		PortBinaryKey:   strconv.Itoa(r.PortBinary),
	}
}

// IsTracingEndpoint reports whether name is one of the endpoints on which
// the agent location is published.
func IsTracingEndpoint(name string) bool {
	return name == JaegerEndpoint || name == DistributedTracingEndpoint
}
