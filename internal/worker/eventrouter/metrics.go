// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package eventrouter

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "jaeger_charm"

const (
	resultOK    = "ok"
	resultError = "error"
)

// Collector is a prometheus.Collector that collects metrics about the
// triggers the router handles. A nil *Collector records nothing.
type Collector struct {
	triggers        *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	restarts        *prometheus.CounterVec
}

// NewMetricsCollector returns a new Collector.
func NewMetricsCollector() *Collector {
	return &Collector{
		triggers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "triggers_total",
				Help:      "The number of triggers handled, by kind.",
			}, []string{"kind"},
		),
		reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "reconciliations_total",
				Help:      "The number of service reconciliations, by service and resulting status.",
			}, []string{"service", "result"},
		),
		restarts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "restart_actions_total",
				Help:      "The number of restart actions run, by result.",
			}, []string{"result"},
		),
	}
}

// Describe is part of the prometheus.Collector interface.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.triggers.Describe(ch)
	c.reconciliations.Describe(ch)
	c.restarts.Describe(ch)
}

// Collect is part of the prometheus.Collector interface.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.triggers.Collect(ch)
	c.reconciliations.Collect(ch)
	c.restarts.Collect(ch)
}

func (c *Collector) triggerHandled(kind string) {
	if c == nil {
		return
	}
	c.triggers.WithLabelValues(kind).Inc()
}

func (c *Collector) reconciled(service, result string) {
	if c == nil {
		return
	}
	c.reconciliations.WithLabelValues(service, result).Inc()
}

func (c *Collector) restartHandled(result string) {
	if c == nil {
		return
	}
	c.restarts.WithLabelValues(result).Inc()
}
