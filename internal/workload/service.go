// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package workload

import (
	"fmt"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
	"github.com/juju/jaeger-k8s-operator/internal/datastore"
)

// Names of the managed services. Each runs in the container of the same
// name.
const (
	Agent     = "agent"
	Collector = "collector"
	Query     = "query"
)

// ManagedServices returns the managed service names in the order a full
// reconciliation visits them: the two datastore consumers first, then the
// agent.
func ManagedServices() []string {
	return []string{Collector, Query, Agent}
}

// NeedsDatastore reports whether the named service cannot be Active
// without a datastore endpoint.
func NeedsDatastore(name string) bool {
	return name == Collector || name == Query
}

// Environment variables passed to the datastore consumers.
const (
	SpanStorageTypeEnv = "SPAN_STORAGE_TYPE"
	ESServerURLsEnv    = "ES_SERVER_URLS"
)

const (
	// StartupEnabled starts the service when the supervisor starts.
	StartupEnabled = "enabled"

	// OverrideMerge combines a service definition field by field with
	// any existing one of the same name.
	OverrideMerge = "merge"

	// collectorGRPCAddress is where the agent reports spans.
	collectorGRPCAddress = "127.0.0.1:14250"
)

// Service is the desired definition of one managed process. Values are
// recomputed for every reconciliation and never stored.
type Service struct {
	Name        string
	Summary     string
	Command     string
	Startup     string
	Environment map[string]string
}

// AgentService returns the definition of jaeger-agent. The agent has no
// datastore dependency.
func AgentService(cfg charmconfig.UnitConfig) Service {
	return Service{
		Name:    Agent,
		Summary: "jaeger-agent",
		Command: fmt.Sprintf("/go/bin/agent-linux"+
			" --reporter.grpc.host-port=%s"+
			" --processor.jaeger-compact.server-host-port=:%d"+
			" --processor.jaeger-binary.server-host-port=:%d",
			collectorGRPCAddress, cfg.AgentPort, cfg.AgentPortBinary),
		Startup:     StartupEnabled,
		Environment: map[string]string{},
	}
}

// CollectorService returns the definition of jaeger-collector for the
// given endpoint. A zero endpoint yields an empty ES_SERVER_URLS.
func CollectorService(cfg charmconfig.UnitConfig, ep datastore.Endpoint) Service {
	return datastoreService(Collector, "/go/bin/collector-linux", cfg, ep)
}

// QueryService returns the definition of jaeger-query for the given
// endpoint. A zero endpoint yields an empty ES_SERVER_URLS.
func QueryService(cfg charmconfig.UnitConfig, ep datastore.Endpoint) Service {
	return datastoreService(Query, "/go/bin/query-linux", cfg, ep)
}

func datastoreService(name, command string, cfg charmconfig.UnitConfig, ep datastore.Endpoint) Service {
	return Service{
		Name:    name,
		Summary: "jaeger-" + name,
		Command: command,
		Startup: StartupEnabled,
		Environment: map[string]string{
			SpanStorageTypeEnv: cfg.SpanStorageType,
			ESServerURLsEnv:    ep.URL,
		},
	}
}

// Define returns the definition of the named service.
func Define(name string, cfg charmconfig.UnitConfig, ep datastore.Endpoint) (Service, error) {
	switch name {
	case Agent:
		return AgentService(cfg), nil
	case Collector:
		return CollectorService(cfg, ep), nil
	case Query:
		return QueryService(cfg, ep), nil
	}
	return Service{}, errors.NotFoundf("service %q", name)
}

// Layer is a pebble configuration layer.
type Layer struct {
	Summary     string                  `yaml:"summary,omitempty"`
	Description string                  `yaml:"description,omitempty"`
	Services    map[string]ServiceLayer `yaml:"services,omitempty"`
}

// ServiceLayer is the definition of one service within a Layer.
type ServiceLayer struct {
	Override    string            `yaml:"override"`
	Summary     string            `yaml:"summary,omitempty"`
	Command     string            `yaml:"command,omitempty"`
	Startup     string            `yaml:"startup,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// Layer returns a single-service layer for s. Fields are merged into any
// existing definition of the service, so only what s sets is replaced.
func (s Service) Layer() Layer {
	return Layer{
		Summary:     fmt.Sprintf("%s layer", s.Summary),
		Description: fmt.Sprintf("pebble config layer for %s", s.Summary),
		Services: map[string]ServiceLayer{
			s.Name: {
				Override:    OverrideMerge,
				Summary:     s.Summary,
				Command:     s.Command,
				Startup:     s.Startup,
				Environment: s.Environment,
			},
		},
	}
}

// Marshal returns the layer as pebble layer YAML.
func (l Layer) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(l)
	return data, errors.Trace(err)
}
