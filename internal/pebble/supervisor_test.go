// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package pebble_test

import (
	"context"
	"time"

	"github.com/canonical/pebble/client"
	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"
	"gopkg.in/yaml.v3"

	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
	"github.com/juju/jaeger-k8s-operator/internal/pebble"
	"github.com/juju/jaeger-k8s-operator/internal/pebble/mocks"
	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

type supervisorSuite struct {
	client *mocks.MockClient
}

var _ = gc.Suite(&supervisorSuite{})

func (s *supervisorSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.client = mocks.NewMockClient(ctrl)
	return ctrl
}

func (s *supervisorSuite) newSupervisor(c *gc.C) *pebble.Supervisor {
	sup, err := pebble.NewSupervisor(pebble.Config{
		Clients:     map[string]pebble.Client{"agent": s.client},
		WaitTimeout: time.Minute,
	})
	c.Assert(err, jc.ErrorIsNil)
	return sup
}

func (s *supervisorSuite) TestValidate(c *gc.C) {
	_, err := pebble.NewSupervisor(pebble.Config{})
	c.Check(err, jc.ErrorIs, errors.NotValid)
	_, err = pebble.NewSupervisor(pebble.Config{
		Clients: map[string]pebble.Client{"agent": nil},
	})
	c.Check(err, gc.ErrorMatches, `nil Client for container "agent" not valid`)
}

func (s *supervisorSuite) TestMergeLayer(c *gc.C) {
	defer s.setupMocks(c).Finish()

	layer := workload.AgentService(charmconfig.UnitConfig{
		AgentPort:       5775,
		AgentPortBinary: 6832,
	}).Layer()
	s.client.EXPECT().AddLayer(gomock.Any()).DoAndReturn(func(opts *client.AddLayerOptions) error {
		c.Check(opts.Combine, jc.IsTrue)
		c.Check(opts.Label, gc.Equals, "agent")
		var got workload.Layer
		c.Check(yaml.Unmarshal(opts.LayerData, &got), jc.ErrorIsNil)
		c.Check(got.Summary, gc.Equals, "jaeger-agent layer")
		c.Check(got.Services["agent"].Override, gc.Equals, "merge")
		c.Check(got.Services["agent"].Command, gc.Equals, layer.Services["agent"].Command)
		return nil
	})

	err := s.newSupervisor(c).MergeLayer(context.Background(), "agent", layer, true)
	c.Assert(err, jc.ErrorIsNil)
}

func (s *supervisorSuite) TestUnknownContainer(c *gc.C) {
	defer s.setupMocks(c).Finish()

	sup := s.newSupervisor(c)
	ctx := context.Background()
	c.Check(sup.MergeLayer(ctx, "query", workload.Layer{}, true), jc.ErrorIs, errors.NotFound)
	_, err := sup.IsRunning(ctx, "query")
	c.Check(err, jc.ErrorIs, errors.NotFound)
	c.Check(sup.Start(ctx, "query"), jc.ErrorIs, errors.NotFound)
	c.Check(sup.Stop(ctx, "query"), jc.ErrorIs, errors.NotFound)
}

func (s *supervisorSuite) TestIsRunning(c *gc.C) {
	defer s.setupMocks(c).Finish()

	opts := &client.ServicesOptions{Names: []string{"agent"}}
	s.client.EXPECT().Services(opts).Return([]*client.ServiceInfo{{
		Name:    "agent",
		Current: client.StatusActive,
	}}, nil)
	s.client.EXPECT().Services(opts).Return([]*client.ServiceInfo{{
		Name:    "agent",
		Current: client.StatusInactive,
	}}, nil)
	s.client.EXPECT().Services(opts).Return(nil, nil)

	sup := s.newSupervisor(c)
	for _, expected := range []bool{true, false, false} {
		running, err := sup.IsRunning(context.Background(), "agent")
		c.Assert(err, jc.ErrorIsNil)
		c.Check(running, gc.Equals, expected)
	}
}

func (s *supervisorSuite) TestStartWaitsForChange(c *gc.C) {
	defer s.setupMocks(c).Finish()

	gomock.InOrder(
		s.client.EXPECT().Start(&client.ServiceOptions{Names: []string{"agent"}}).Return("42", nil),
		s.client.EXPECT().WaitChange("42", &client.WaitChangeOptions{Timeout: time.Minute}).Return(&client.Change{
			ID:    "42",
			Ready: true,
		}, nil),
	)

	err := s.newSupervisor(c).Start(context.Background(), "agent")
	c.Assert(err, jc.ErrorIsNil)
}

func (s *supervisorSuite) TestStopChangeError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.client.EXPECT().Stop(&client.ServiceOptions{Names: []string{"agent"}}).Return("7", nil)
	s.client.EXPECT().WaitChange("7", gomock.Any()).Return(&client.Change{
		ID:    "7",
		Ready: true,
		Err:   "cannot stop service",
	}, nil)

	err := s.newSupervisor(c).Stop(context.Background(), "agent")
	c.Assert(err, gc.ErrorMatches, `stopping "agent": cannot stop service`)
}

func (s *supervisorSuite) TestCancelledContext(c *gc.C) {
	defer s.setupMocks(c).Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.newSupervisor(c).Start(ctx, "agent")
	c.Assert(err, jc.ErrorIs, context.Canceled)
}

func (s *supervisorSuite) TestOpen(c *gc.C) {
	sup, err := pebble.Open(c.MkDir(), workload.ManagedServices(), 0)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(sup, gc.NotNil)
}
