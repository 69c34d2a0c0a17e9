// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package workloadtest provides an in-memory process supervisor for tests.
package workloadtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/juju/collections/set"
	"github.com/juju/errors"

	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

// Supervisor is an in-memory workload.Supervisor. Layers are merged field
// by field, as pebble does for "override: merge". Only services in
// registered containers can be addressed.
type Supervisor struct {
	mu         sync.Mutex
	registered set.Strings
	plan       map[string]workload.ServiceLayer
	running    map[string]bool
	instances  map[string]int
	calls      []string
	errs       map[string]error
}

// NewSupervisor returns a Supervisor with a container registered for
// each of the given service names.
func NewSupervisor(names ...string) *Supervisor {
	return &Supervisor{
		registered: set.NewStrings(names...),
		plan:       make(map[string]workload.ServiceLayer),
		running:    make(map[string]bool),
		instances:  make(map[string]int),
		errs:       make(map[string]error),
	}
}

// SetErr makes every subsequent call of op ("merge", "check", "start",
// "stop") for the named service fail with err. A nil err clears it.
func (s *Supervisor) SetErr(op, name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := op + " " + name
	if err == nil {
		delete(s.errs, key)
		return
	}
	s.errs[key] = err
}

// SetRunning marks the named service as running without recording a call.
func (s *Supervisor) SetRunning(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running[name] = true
	s.instances[name] = 1
}

// Calls returns the recorded mutating calls, e.g. "merge agent",
// "stop agent", "start agent".
func (s *Supervisor) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ResetCalls clears the recorded calls.
func (s *Supervisor) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Plan returns the merged definition stored for the named service.
func (s *Supervisor) Plan(name string) (workload.ServiceLayer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.plan[name]
	return svc, ok
}

// Running reports whether the named service is running.
func (s *Supervisor) Running(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[name]
}

// Instances returns the number of running instances of the named service.
func (s *Supervisor) Instances(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instances[name]
}

func (s *Supervisor) check(op, name string) error {
	if !s.registered.Contains(name) {
		return errors.NotFoundf("container %q", name)
	}
	return s.errs[op+" "+name]
}

// MergeLayer is part of workload.Supervisor.
func (s *Supervisor) MergeLayer(_ context.Context, name string, layer workload.Layer, _ bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("merge", name); err != nil {
		return err
	}
	s.calls = append(s.calls, fmt.Sprintf("merge %s", name))
	for svcName, in := range layer.Services {
		cur := s.plan[svcName]
		if in.Override != "" {
			cur.Override = in.Override
		}
		if in.Summary != "" {
			cur.Summary = in.Summary
		}
		if in.Command != "" {
			cur.Command = in.Command
		}
		if in.Startup != "" {
			cur.Startup = in.Startup
		}
		if len(in.Environment) > 0 {
			env := make(map[string]string)
			for k, v := range cur.Environment {
				env[k] = v
			}
			for k, v := range in.Environment {
				env[k] = v
			}
			cur.Environment = env
		}
		s.plan[svcName] = cur
	}
	return nil
}

// IsRunning is part of workload.Supervisor.
func (s *Supervisor) IsRunning(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("check", name); err != nil {
		return false, err
	}
	return s.running[name], nil
}

// Start is part of workload.Supervisor. Starting a running service is a
// no-op, as with pebble.
func (s *Supervisor) Start(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("start", name); err != nil {
		return err
	}
	if _, ok := s.plan[name]; !ok {
		return errors.NotFoundf("service %q", name)
	}
	s.calls = append(s.calls, fmt.Sprintf("start %s", name))
	if !s.running[name] {
		s.running[name] = true
		s.instances[name]++
	}
	return nil
}

// Stop is part of workload.Supervisor.
func (s *Supervisor) Stop(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check("stop", name); err != nil {
		return err
	}
	s.calls = append(s.calls, fmt.Sprintf("stop %s", name))
	if s.running[name] {
		s.running[name] = false
		s.instances[name]--
	}
	return nil
}
