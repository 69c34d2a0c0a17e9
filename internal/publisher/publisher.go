// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package publisher publishes the agent location to tracing clients.
package publisher

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/core/relation"
	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
)

var logger = loggo.GetLogger("jaeger.publisher")

// Leadership reports whether the local unit is the application leader.
type Leadership interface {
	IsLeader(ctx context.Context) (bool, error)
}

// Binder resolves the address the unit binds to for an endpoint.
type Binder interface {
	BindAddress(ctx context.Context, endpoint string) (string, error)
}

// RelationWriter writes into the local unit's bucket of a relation.
type RelationWriter interface {
	WriteLocalRecord(ctx context.Context, relationName string, data map[string]string) error
}

// Config holds the dependencies of a Publisher.
type Config struct {
	Leadership Leadership
	Binder     Binder
	Writer     RelationWriter
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if c.Leadership == nil {
		return errors.NotValidf("nil Leadership")
	}
	if c.Binder == nil {
		return errors.NotValidf("nil Binder")
	}
	if c.Writer == nil {
		return errors.NotValidf("nil Writer")
	}
	return nil
}

// Publisher writes the agent address and ports into tracing relations.
// Only the leader writes, so replicas never race on the same bucket.
type Publisher struct {
	config Config
}

// New returns a Publisher.
func New(config Config) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Publisher{config: config}, nil
}

// Publish writes the agent record into the named relation if, and only
// if, the local unit is the leader. It reports whether a write happened.
func (p *Publisher) Publish(ctx context.Context, relationName string, cfg charmconfig.UnitConfig) (bool, error) {
	leader, err := p.config.Leadership.IsLeader(ctx)
	if err != nil {
		return false, errors.Annotate(err, "checking leadership")
	}
	if !leader {
		logger.Debugf("not leader, skipping %q relation update", relationName)
		return false, nil
	}
	addr, err := p.config.Binder.BindAddress(ctx, relationName)
	if err != nil {
		return false, errors.Annotatef(err, "resolving bind address for %q", relationName)
	}
	record := relation.Record{
		AgentAddress: addr,
		Port:         cfg.AgentPort,
		PortBinary:   cfg.AgentPortBinary,
	}
	if err := p.config.Writer.WriteLocalRecord(ctx, relationName, record.Settings()); err != nil {
		return false, errors.Annotatef(err, "writing %q relation data", relationName)
	}
	logger.Infof("published agent %s:%d on %q", addr, cfg.AgentPort, relationName)
	return true, nil
}
