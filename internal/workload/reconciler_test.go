// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package workload_test

import (
	"context"

	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	"go.uber.org/mock/gomock"
	gc "gopkg.in/check.v1"

	"github.com/juju/jaeger-k8s-operator/core/status"
	"github.com/juju/jaeger-k8s-operator/internal/datastore"
	"github.com/juju/jaeger-k8s-operator/internal/workload"
	"github.com/juju/jaeger-k8s-operator/internal/workload/mocks"
	"github.com/juju/jaeger-k8s-operator/internal/workload/workloadtest"
)

type reconcilerSuite struct {
	supervisor *mocks.MockSupervisor
}

var _ = gc.Suite(&reconcilerSuite{})

func (s *reconcilerSuite) setupMocks(c *gc.C) *gomock.Controller {
	ctrl := gomock.NewController(c)
	s.supervisor = mocks.NewMockSupervisor(ctrl)
	return ctrl
}

func (s *reconcilerSuite) TestApplyNotRunning(c *gc.C) {
	defer s.setupMocks(c).Finish()

	svc := workload.AgentService(testConfig)
	gomock.InOrder(
		s.supervisor.EXPECT().MergeLayer(gomock.Any(), "agent", svc.Layer(), true).Return(nil),
		s.supervisor.EXPECT().IsRunning(gomock.Any(), "agent").Return(false, nil),
		s.supervisor.EXPECT().Start(gomock.Any(), "agent").Return(nil),
	)

	state, err := workload.Apply(context.Background(), s.supervisor, svc)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(state, gc.Equals, workload.RunState{Service: "agent"})
}

func (s *reconcilerSuite) TestApplyRunningStopsFirst(c *gc.C) {
	defer s.setupMocks(c).Finish()

	svc := workload.AgentService(testConfig)
	gomock.InOrder(
		s.supervisor.EXPECT().MergeLayer(gomock.Any(), "agent", svc.Layer(), true).Return(nil),
		s.supervisor.EXPECT().IsRunning(gomock.Any(), "agent").Return(true, nil),
		s.supervisor.EXPECT().Stop(gomock.Any(), "agent").Return(nil),
		s.supervisor.EXPECT().Start(gomock.Any(), "agent").Return(nil),
	)

	state, err := workload.Apply(context.Background(), s.supervisor, svc)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(state, gc.Equals, workload.RunState{Service: "agent", Restarted: true})
}

func (s *reconcilerSuite) TestApplyMergeError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.supervisor.EXPECT().MergeLayer(gomock.Any(), "query", gomock.Any(), true).Return(errors.New("boom"))

	_, err := workload.Apply(context.Background(), s.supervisor, workload.QueryService(testConfig, datastore.Endpoint{}))
	c.Assert(err, gc.ErrorMatches, `adding layer for "query": boom`)
	c.Assert(err, jc.ErrorIs, workload.ErrSupervisor)
}

func (s *reconcilerSuite) TestApplyStopError(c *gc.C) {
	defer s.setupMocks(c).Finish()

	s.supervisor.EXPECT().MergeLayer(gomock.Any(), "query", gomock.Any(), true).Return(nil)
	s.supervisor.EXPECT().IsRunning(gomock.Any(), "query").Return(true, nil)
	s.supervisor.EXPECT().Stop(gomock.Any(), "query").Return(errors.New("boom"))

	_, err := workload.Apply(context.Background(), s.supervisor, workload.QueryService(testConfig, datastore.Endpoint{}))
	c.Assert(err, gc.ErrorMatches, `stopping "query": boom`)
	c.Assert(err, jc.ErrorIs, workload.ErrSupervisor)
}

func (s *reconcilerSuite) TestApplyUnknownContainer(c *gc.C) {
	supervisor := workloadtest.NewSupervisor("agent")

	_, err := workload.Apply(context.Background(), supervisor, workload.QueryService(testConfig, datastore.Endpoint{}))
	c.Assert(err, jc.ErrorIs, workload.ErrSupervisor)
	c.Assert(err, jc.ErrorIs, errors.NotFound)
	c.Assert(supervisor.Calls(), gc.HasLen, 0)
}

func (s *reconcilerSuite) TestApplyTwiceIsIdempotent(c *gc.C) {
	supervisor := workloadtest.NewSupervisor("agent")
	svc := workload.AgentService(testConfig)

	_, err := workload.Apply(context.Background(), supervisor, svc)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(supervisor.Calls(), jc.DeepEquals, []string{"merge agent", "start agent"})
	supervisor.ResetCalls()

	state, err := workload.Apply(context.Background(), supervisor, svc)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(state.Restarted, jc.IsTrue)
	c.Assert(supervisor.Calls(), jc.DeepEquals, []string{"merge agent", "stop agent", "start agent"})
	c.Assert(supervisor.Instances("agent"), gc.Equals, 1)

	plan, ok := supervisor.Plan("agent")
	c.Assert(ok, jc.IsTrue)
	c.Assert(plan.Command, gc.Equals, svc.Command)
}

func (s *reconcilerSuite) TestApplyMergesIntoExistingDefinition(c *gc.C) {
	supervisor := workloadtest.NewSupervisor("collector")
	err := supervisor.MergeLayer(context.Background(), "collector", workload.Layer{
		Services: map[string]workload.ServiceLayer{
			"collector": {
				Override:    "merge",
				Command:     "/old/collector",
				Environment: map[string]string{"LOG_LEVEL": "debug"},
			},
		},
	}, true)
	c.Assert(err, jc.ErrorIsNil)

	ep := datastore.Endpoint{URL: "http://10.0.0.5:9200"}
	_, err = workload.Apply(context.Background(), supervisor, workload.CollectorService(testConfig, ep))
	c.Assert(err, jc.ErrorIsNil)

	plan, _ := supervisor.Plan("collector")
	c.Assert(plan.Command, gc.Equals, "/go/bin/collector-linux")
	c.Assert(plan.Environment, jc.DeepEquals, map[string]string{
		"LOG_LEVEL":         "debug",
		"SPAN_STORAGE_TYPE": "elasticsearch",
		"ES_SERVER_URLS":    "http://10.0.0.5:9200",
	})
}

func (s *reconcilerSuite) TestNewReconcilerUnknownService(c *gc.C) {
	_, err := workload.NewReconciler("unknown", workloadtest.NewSupervisor())
	c.Assert(err, jc.ErrorIs, errors.NotFound)
}

func (s *reconcilerSuite) TestReconcileStatus(c *gc.C) {
	supervisor := workloadtest.NewSupervisor(workload.ManagedServices()...)
	ep := datastore.Endpoint{URL: "http://10.0.0.5:9200"}

	for i, t := range []struct {
		service string
		present bool
		status  status.Status
	}{
		{service: "agent", present: false, status: status.Active},
		{service: "agent", present: true, status: status.Active},
		{service: "collector", present: false, status: status.Blocked},
		{service: "collector", present: true, status: status.Active},
		{service: "query", present: false, status: status.Blocked},
		{service: "query", present: true, status: status.Active},
	} {
		c.Logf("test %d: %s present=%v", i, t.service, t.present)
		r, err := workload.NewReconciler(t.service, supervisor)
		c.Assert(err, jc.ErrorIsNil)
		c.Assert(r.Name(), gc.Equals, t.service)

		outcome, err := r.Reconcile(context.Background(), testConfig, ep, t.present)
		c.Assert(err, jc.ErrorIsNil)
		c.Check(outcome.Status, gc.Equals, t.status)
		c.Check(outcome.Service, gc.Equals, t.service)
	}
}

func (s *reconcilerSuite) TestReconcileAbsentEndpointClearsURL(c *gc.C) {
	supervisor := workloadtest.NewSupervisor("query")
	r, err := workload.NewReconciler("query", supervisor)
	c.Assert(err, jc.ErrorIsNil)

	stale := datastore.Endpoint{URL: "http://10.0.0.5:9200"}
	_, err = r.Reconcile(context.Background(), testConfig, stale, true)
	c.Assert(err, jc.ErrorIsNil)
	_, err = r.Reconcile(context.Background(), testConfig, stale, false)
	c.Assert(err, jc.ErrorIsNil)

	plan, _ := supervisor.Plan("query")
	c.Assert(plan.Environment["ES_SERVER_URLS"], gc.Equals, "")
}

func (s *reconcilerSuite) TestRestart(c *gc.C) {
	defer s.setupMocks(c).Finish()

	gomock.InOrder(
		s.supervisor.EXPECT().IsRunning(gomock.Any(), "collector").Return(true, nil),
		s.supervisor.EXPECT().Stop(gomock.Any(), "collector").Return(nil),
		s.supervisor.EXPECT().Start(gomock.Any(), "collector").Return(nil),
	)

	state, err := workload.Restart(context.Background(), s.supervisor, "collector")
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(state.Restarted, jc.IsTrue)
}
