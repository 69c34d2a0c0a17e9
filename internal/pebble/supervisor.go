// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package pebble implements workload.Supervisor on top of the pebble
// daemons running in each workload container.
package pebble

import (
	"context"
	"path/filepath"
	"time"

	"github.com/canonical/pebble/client"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

var logger = loggo.GetLogger("jaeger.pebble")

// DefaultSocketDir is where the charm container sees each workload
// container's pebble socket, as <dir>/<container>/pebble.socket.
const DefaultSocketDir = "/charm/containers"

// Client is the subset of the pebble client used to manage services.
type Client interface {
	AddLayer(opts *client.AddLayerOptions) error
	Services(opts *client.ServicesOptions) ([]*client.ServiceInfo, error)
	Start(opts *client.ServiceOptions) (changeID string, err error)
	Stop(opts *client.ServiceOptions) (changeID string, err error)
	WaitChange(id string, opts *client.WaitChangeOptions) (*client.Change, error)
}

// Config holds the dependencies of a Supervisor.
type Config struct {
	// Clients maps each container name to the pebble client for that
	// container. Each managed service runs in the container of the same
	// name.
	Clients map[string]Client

	// WaitTimeout bounds how long a start or stop change is waited on.
	// Zero waits until pebble reports the change ready.
	WaitTimeout time.Duration
}

// Validate returns an error if the config cannot be used.
func (c Config) Validate() error {
	if len(c.Clients) == 0 {
		return errors.NotValidf("empty Clients")
	}
	for name, cl := range c.Clients {
		if cl == nil {
			return errors.NotValidf("nil Client for container %q", name)
		}
	}
	if c.WaitTimeout < 0 {
		return errors.NotValidf("negative WaitTimeout")
	}
	return nil
}

// Supervisor is a workload.Supervisor backed by pebble.
type Supervisor struct {
	config Config
}

var _ workload.Supervisor = (*Supervisor)(nil)

// NewSupervisor returns a Supervisor for the given config.
func NewSupervisor(config Config) (*Supervisor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &Supervisor{config: config}, nil
}

// Open returns a Supervisor talking to the pebble socket of each named
// container under socketDir.
func Open(socketDir string, containers []string, waitTimeout time.Duration) (*Supervisor, error) {
	clients := make(map[string]Client, len(containers))
	for _, name := range containers {
		socket := filepath.Join(socketDir, name, "pebble.socket")
		cl, err := client.New(&client.Config{Socket: socket})
		if err != nil {
			return nil, errors.Annotatef(err, "creating pebble client for %q", name)
		}
		clients[name] = cl
	}
	return NewSupervisor(Config{
		Clients:     clients,
		WaitTimeout: waitTimeout,
	})
}

func (s *Supervisor) client(name string) (Client, error) {
	cl, ok := s.config.Clients[name]
	if !ok {
		return nil, errors.NotFoundf("container %q", name)
	}
	return cl, nil
}

// MergeLayer is part of workload.Supervisor. The layer is labelled with
// the service name.
func (s *Supervisor) MergeLayer(ctx context.Context, name string, layer workload.Layer, combine bool) error {
	cl, err := s.client(name)
	if err != nil {
		return errors.Trace(err)
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	data, err := layer.Marshal()
	if err != nil {
		return errors.Trace(err)
	}
	logger.Tracef("adding layer %q:\n%s", name, data)
	return errors.Trace(cl.AddLayer(&client.AddLayerOptions{
		Combine:   combine,
		Label:     name,
		LayerData: data,
	}))
}

// IsRunning is part of workload.Supervisor. A service pebble does not know
// about is not running.
func (s *Supervisor) IsRunning(ctx context.Context, name string) (bool, error) {
	cl, err := s.client(name)
	if err != nil {
		return false, errors.Trace(err)
	}
	if err := ctx.Err(); err != nil {
		return false, errors.Trace(err)
	}
	infos, err := cl.Services(&client.ServicesOptions{Names: []string{name}})
	if err != nil {
		return false, errors.Trace(err)
	}
	for _, info := range infos {
		if info.Name == name {
			return info.Current == client.StatusActive, nil
		}
	}
	return false, nil
}

// Start is part of workload.Supervisor.
func (s *Supervisor) Start(ctx context.Context, name string) error {
	cl, err := s.client(name)
	if err != nil {
		return errors.Trace(err)
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	id, err := cl.Start(&client.ServiceOptions{Names: []string{name}})
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(s.wait(cl, id), "starting %q", name)
}

// Stop is part of workload.Supervisor.
func (s *Supervisor) Stop(ctx context.Context, name string) error {
	cl, err := s.client(name)
	if err != nil {
		return errors.Trace(err)
	}
	if err := ctx.Err(); err != nil {
		return errors.Trace(err)
	}
	id, err := cl.Stop(&client.ServiceOptions{Names: []string{name}})
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(s.wait(cl, id), "stopping %q", name)
}

func (s *Supervisor) wait(cl Client, changeID string) error {
	change, err := cl.WaitChange(changeID, &client.WaitChangeOptions{
		Timeout: s.config.WaitTimeout,
	})
	if err != nil {
		return errors.Annotatef(err, "waiting for change %s", changeID)
	}
	if change.Err != "" {
		return errors.New(change.Err)
	}
	return nil
}
