// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package charmconfig reads and validates the operator-supplied charm
// configuration.
package charmconfig

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/schema"
	"gopkg.in/juju/environschema.v1"
)

const (
	AgentPortKey       = "agent-port"
	AgentPortBinaryKey = "agent-port-binary"
	SpanStorageTypeKey = "span-storage-type"
)

const (
	// DefaultAgentPort is the jaeger-compact thrift UDP port.
	DefaultAgentPort = 6831
	// DefaultAgentPortBinary is the jaeger-binary thrift UDP port.
	DefaultAgentPortBinary = 6832
	// DefaultSpanStorageType is the only storage backend the charm relates to.
	DefaultSpanStorageType = "elasticsearch"
)

var configSchema = environschema.Fields{
	AgentPortKey: {
		Description: "Port on which the agent accepts jaeger.thrift over compact thrift protocol.",
		Type:        environschema.Tint,
	},
	AgentPortBinaryKey: {
		Description: "Port on which the agent accepts jaeger.thrift over binary thrift protocol.",
		Type:        environschema.Tint,
	},
	SpanStorageTypeKey: {
		Description: "The type of backend used for span storage.",
		Type:        environschema.Tstring,
	},
}

var configDefaults = schema.Defaults{
	AgentPortKey:       DefaultAgentPort,
	AgentPortBinaryKey: DefaultAgentPortBinary,
	SpanStorageTypeKey: DefaultSpanStorageType,
}

// UnitConfig is an immutable snapshot of the charm configuration, taken
// once per trigger.
type UnitConfig struct {
	AgentPort       int
	AgentPortBinary int
	SpanStorageType string
}

// Validate returns an error if the config cannot be used to configure
// the workloads.
func (c UnitConfig) Validate() error {
	if !validPort(c.AgentPort) {
		return errors.NotValidf("%s %d", AgentPortKey, c.AgentPort)
	}
	if !validPort(c.AgentPortBinary) {
		return errors.NotValidf("%s %d", AgentPortBinaryKey, c.AgentPortBinary)
	}
	if c.AgentPort == c.AgentPortBinary {
		return errors.NotValidf("%s and %s both set to %d", AgentPortKey, AgentPortBinaryKey, c.AgentPort)
	}
	if c.SpanStorageType == "" {
		return errors.NotValidf("empty %s", SpanStorageTypeKey)
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}

// Source supplies the raw charm configuration.
type Source interface {
	ConfigGet(ctx context.Context) (map[string]interface{}, error)
}

// Read fetches the current configuration from source and parses it.
func Read(ctx context.Context, source Source) (UnitConfig, error) {
	attrs, err := source.ConfigGet(ctx)
	if err != nil {
		return UnitConfig{}, errors.Annotate(err, "reading charm config")
	}
	return Parse(attrs)
}

// Parse coerces the raw attributes, filling in defaults for anything
// unset, and validates the result. Unknown attributes are ignored.
func Parse(attrs map[string]interface{}) (UnitConfig, error) {
	fields, defaults, err := configSchema.ValidationSchema()
	if err != nil {
		return UnitConfig{}, errors.Trace(err)
	}
	for k, v := range configDefaults {
		defaults[k] = v
	}
	known := make(map[string]interface{})
	for k, v := range attrs {
		if _, ok := configSchema[k]; ok && v != nil {
			known[k] = v
		}
	}
	coerced, err := schema.FieldMap(fields, defaults).Coerce(known, nil)
	if err != nil {
		return UnitConfig{}, errors.NewNotValid(err, "charm config")
	}
	valid := coerced.(map[string]interface{})
	cfg := UnitConfig{
		AgentPort:       valid[AgentPortKey].(int),
		AgentPortBinary: valid[AgentPortBinaryKey].(int),
		SpanStorageType: valid[SpanStorageTypeKey].(string),
	}
	if err := cfg.Validate(); err != nil {
		return UnitConfig{}, errors.Trace(err)
	}
	return cfg, nil
}
