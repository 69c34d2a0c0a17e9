// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package datastore_test

import (
	"context"

	"github.com/juju/errors"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/jaeger-k8s-operator/internal/datastore"
)

type resolverSuite struct{}

var _ = gc.Suite(&resolverSuite{})

type stubReader struct {
	data map[string]string
	err  error

	called []string
}

func (r *stubReader) ReadPeerRecord(_ context.Context, name string) (map[string]string, error) {
	r.called = append(r.called, name)
	return r.data, r.err
}

func (s *resolverSuite) TestResolveEndpoint(c *gc.C) {
	reader := &stubReader{data: map[string]string{
		"ingress-address": "10.0.0.5",
		"port":            "9200",
		"private-address": "10.0.0.6",
	}}
	ep, ok := datastore.ResolveEndpoint(context.Background(), reader, "datastore")
	c.Assert(ok, jc.IsTrue)
	c.Assert(ep, gc.Equals, datastore.Endpoint{URL: "http://10.0.0.5:9200"})
	c.Assert(reader.called, jc.DeepEquals, []string{"datastore"})
}

func (s *resolverSuite) TestResolveIncomplete(c *gc.C) {
	for i, data := range []map[string]string{
		nil,
		{},
		{"ingress-address": "10.0.0.5"},
		{"port": "9200"},
		{"ingress-address": "", "port": "9200"},
		{"ingress-address": "10.0.0.5", "port": ""},
	} {
		c.Logf("test %d: %v", i, data)
		ep, reason := datastore.Resolve(context.Background(), &stubReader{data: data}, "datastore")
		c.Check(reason, gc.Equals, datastore.IncompleteData)
		c.Check(ep, gc.Equals, datastore.Endpoint{})
	}
}

func (s *resolverSuite) TestResolveNoRelation(c *gc.C) {
	reader := &stubReader{err: errors.NotFoundf("relation %q", "datastore")}
	ep, reason := datastore.Resolve(context.Background(), reader, "datastore")
	c.Assert(reason, gc.Equals, datastore.NoRelation)
	c.Assert(ep, gc.Equals, datastore.Endpoint{})
}

func (s *resolverSuite) TestResolveReaderError(c *gc.C) {
	reader := &stubReader{err: errors.New("hook tool exploded")}
	_, ok := datastore.ResolveEndpoint(context.Background(), reader, "datastore")
	c.Assert(ok, jc.IsFalse)

	ep, reason := datastore.Resolve(context.Background(), reader, "datastore")
	c.Assert(reason, gc.Equals, datastore.ReadFailed)
	c.Assert(ep, gc.Equals, datastore.Endpoint{})
}

func (s *resolverSuite) TestReasonString(c *gc.C) {
	c.Check(datastore.Resolved.String(), gc.Equals, "resolved")
	c.Check(datastore.NoRelation.String(), gc.Equals, "no relation")
	c.Check(datastore.IncompleteData.String(), gc.Equals, "incomplete data")
	c.Check(datastore.ReadFailed.String(), gc.Equals, "read failed")
}
