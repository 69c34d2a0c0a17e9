// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package hooktools

import (
	"context"
	"fmt"
	"sort"

	"github.com/juju/errors"
	"github.com/juju/loggo/v2"
	"github.com/juju/names/v5"
	"gopkg.in/yaml.v3"

	"github.com/juju/jaeger-k8s-operator/core/status"
)

var logger = loggo.GetLogger("jaeger.hooktools")

// Context exposes the hook tools the charm uses. It satisfies the
// collaborator interfaces of the router, resolver, publisher and status
// reporting.
type Context struct {
	runner Runner
	unit   names.UnitTag
}

// NewContext returns a Context for the named unit.
func NewContext(runner Runner, unitName string) (*Context, error) {
	if runner == nil {
		return nil, errors.NotValidf("nil Runner")
	}
	if !names.IsValidUnit(unitName) {
		return nil, errors.NotValidf("unit name %q", unitName)
	}
	return &Context{
		runner: runner,
		unit:   names.NewUnitTag(unitName),
	}, nil
}

// Unit returns the tag of the unit the hook runs for.
func (c *Context) Unit() names.UnitTag {
	return c.unit
}

func (c *Context) runYAML(ctx context.Context, out interface{}, tool string, args ...string) error {
	args = append(args, "--format=yaml")
	data, err := c.runner.Run(ctx, tool, args...)
	if err != nil {
		return errors.Trace(err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Annotatef(err, "decoding %s output", tool)
	}
	return nil
}

// ConfigGet returns the charm configuration.
func (c *Context) ConfigGet(ctx context.Context) (map[string]interface{}, error) {
	attrs := make(map[string]interface{})
	if err := c.runYAML(ctx, &attrs, "config-get"); err != nil {
		return nil, errors.Trace(err)
	}
	return attrs, nil
}

// IsLeader reports whether this unit is the application leader.
func (c *Context) IsLeader(ctx context.Context) (bool, error) {
	var leader bool
	if err := c.runYAML(ctx, &leader, "is-leader"); err != nil {
		return false, errors.Trace(err)
	}
	return leader, nil
}

// BindAddress returns the address the unit binds to for the endpoint.
func (c *Context) BindAddress(ctx context.Context, endpoint string) (string, error) {
	var addr string
	if err := c.runYAML(ctx, &addr, "network-get", endpoint, "--bind-address"); err != nil {
		return "", errors.Trace(err)
	}
	if addr == "" {
		return "", errors.NotFoundf("bind address for %q", endpoint)
	}
	return addr, nil
}

func (c *Context) relationIDs(ctx context.Context, relationName string) ([]string, error) {
	var ids []string
	if err := c.runYAML(ctx, &ids, "relation-ids", relationName); err != nil {
		return nil, errors.Trace(err)
	}
	if len(ids) == 0 {
		return nil, errors.NotFoundf("relation %q", relationName)
	}
	return ids, nil
}

// ReadPeerRecord returns the data of the first remote unit on the first
// relation of the named endpoint. Only one datastore unit is supported.
func (c *Context) ReadPeerRecord(ctx context.Context, relationName string) (map[string]string, error) {
	ids, err := c.relationIDs(ctx, relationName)
	if err != nil {
		return nil, errors.Trace(err)
	}
	id := ids[0]
	var units []string
	if err := c.runYAML(ctx, &units, "relation-list", "-r", id); err != nil {
		return nil, errors.Trace(err)
	}
	if len(units) == 0 {
		return nil, errors.NotFoundf("remote unit on relation %s", id)
	}
	if len(units) > 1 {
		logger.Warningf("relation %s has %d remote units, using %s", id, len(units), units[0])
	}
	data := make(map[string]string)
	if err := c.runYAML(ctx, &data, "relation-get", "-r", id, "-", units[0]); err != nil {
		return nil, errors.Trace(err)
	}
	return data, nil
}

// WriteLocalRecord sets the data in this unit's bucket of every relation
// of the named endpoint.
func (c *Context) WriteLocalRecord(ctx context.Context, relationName string, data map[string]string) error {
	ids, err := c.relationIDs(ctx, relationName)
	if err != nil {
		return errors.Trace(err)
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, id := range ids {
		args := []string{"-r", id}
		for _, k := range keys {
			args = append(args, fmt.Sprintf("%s=%s", k, data[k]))
		}
		if _, err := c.runner.Run(ctx, "relation-set", args...); err != nil {
			return errors.Annotatef(err, "setting data on relation %s", id)
		}
	}
	return nil
}

// SetStatus is part of status.StatusSetter.
func (c *Context) SetStatus(ctx context.Context, info status.StatusInfo) error {
	if !status.ValidWorkloadStatus(info.Status) {
		return errors.NotValidf("workload status %q", info.Status)
	}
	_, err := c.runner.Run(ctx, "status-set", info.Status.String(), info.Message)
	return errors.Trace(err)
}

// ActionGet returns the named parameter of the running action.
func (c *Context) ActionGet(ctx context.Context, key string) (string, error) {
	var value string
	if err := c.runYAML(ctx, &value, "action-get", key); err != nil {
		return "", errors.Trace(err)
	}
	if value == "" {
		return "", errors.NotFoundf("action parameter %q", key)
	}
	return value, nil
}

// ActionSet records results of the running action.
func (c *Context) ActionSet(ctx context.Context, results map[string]string) error {
	keys := make([]string, 0, len(results))
	for k := range results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		args = append(args, fmt.Sprintf("%s=%s", k, results[k]))
	}
	_, err := c.runner.Run(ctx, "action-set", args...)
	return errors.Trace(err)
}

// ActionFail marks the running action as failed with the message.
func (c *Context) ActionFail(ctx context.Context, message string) error {
	_, err := c.runner.Run(ctx, "action-fail", message)
	return errors.Trace(err)
}
