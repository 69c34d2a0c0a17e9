// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package charmconfig_test

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/jaeger-k8s-operator/internal/charmconfig"
)

type configSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&configSuite{})

func (s *configSuite) TestParseDefaults(c *gc.C) {
	cfg, err := charmconfig.Parse(map[string]interface{}{})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg, jc.DeepEquals, charmconfig.UnitConfig{
		AgentPort:       6831,
		AgentPortBinary: 6832,
		SpanStorageType: "elasticsearch",
	})
}

func (s *configSuite) TestParse(c *gc.C) {
	cfg, err := charmconfig.Parse(map[string]interface{}{
		"agent-port":        5775,
		"agent-port-binary": "6832",
		"span-storage-type": "elasticsearch",
		"unrelated":         true,
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg, jc.DeepEquals, charmconfig.UnitConfig{
		AgentPort:       5775,
		AgentPortBinary: 6832,
		SpanStorageType: "elasticsearch",
	})
}

func (s *configSuite) TestParseNotInt(c *gc.C) {
	_, err := charmconfig.Parse(map[string]interface{}{
		"agent-port": "not-a-port",
	})
	c.Assert(err, jc.ErrorIs, errors.NotValid)
}

func (s *configSuite) TestParseInvalid(c *gc.C) {
	for i, t := range []struct {
		attrs map[string]interface{}
		err   string
	}{{
		attrs: map[string]interface{}{"agent-port": 0},
		err:   "agent-port 0 not valid",
	}, {
		attrs: map[string]interface{}{"agent-port-binary": 70000},
		err:   "agent-port-binary 70000 not valid",
	}, {
		attrs: map[string]interface{}{"agent-port": 6832},
		err:   "agent-port and agent-port-binary both set to 6832 not valid",
	}, {
		attrs: map[string]interface{}{"span-storage-type": ""},
		err:   "empty span-storage-type not valid",
	}} {
		c.Logf("test %d", i)
		_, err := charmconfig.Parse(t.attrs)
		c.Check(err, gc.ErrorMatches, t.err)
		c.Check(err, jc.ErrorIs, errors.NotValid)
	}
}

type fakeSource struct {
	attrs map[string]interface{}
	err   error
}

func (f fakeSource) ConfigGet(context.Context) (map[string]interface{}, error) {
	return f.attrs, f.err
}

func (s *configSuite) TestRead(c *gc.C) {
	cfg, err := charmconfig.Read(context.Background(), fakeSource{
		attrs: map[string]interface{}{"agent-port": 5775},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(cfg.AgentPort, gc.Equals, 5775)
}

func (s *configSuite) TestReadError(c *gc.C) {
	_, err := charmconfig.Read(context.Background(), fakeSource{
		err: errors.New("boom"),
	})
	c.Assert(err, gc.ErrorMatches, "reading charm config: boom")
}
