// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/loggo/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/juju/jaeger-k8s-operator/internal/actions"
	"github.com/juju/jaeger-k8s-operator/internal/hooktools"
	"github.com/juju/jaeger-k8s-operator/internal/pebble"
	"github.com/juju/jaeger-k8s-operator/internal/publisher"
	"github.com/juju/jaeger-k8s-operator/internal/worker/eventrouter"
	"github.com/juju/jaeger-k8s-operator/internal/worker/interrupt"
	"github.com/juju/jaeger-k8s-operator/internal/workload"
)

var logger = loggo.GetLogger("jaeger")

const (
	dispatchPathEnv = "JUJU_DISPATCH_PATH"
	unitNameEnv     = "JUJU_UNIT_NAME"
)

func setupLogging(logLevel loggo.Level, runner hooktools.Runner) error {
	writer := loggo.NewSimpleWriter(os.Stderr, logFormatter)
	loggo.ReplaceDefaultWriter(writer)
	if runner != nil {
		if err := loggo.RegisterWriter("juju-log", hooktools.NewLogWriter(runner)); err != nil {
			return errors.Trace(err)
		}
	}
	return loggo.ConfigureLoggers(fmt.Sprintf("<root>=%s", logLevel.String()))
}

func logFormatter(entry loggo.Entry) string {
	ts := entry.Timestamp.In(time.UTC).Format("2006-01-02 15:04:05")
	return fmt.Sprintf("%s %s %s %s", ts, entry.Level, entry.Module, entry.Message)
}

type commandLineArgs struct {
	logLevel    loggo.Level
	socketDir   string
	metricsFile string
	waitTimeout time.Duration
	jujuLog     bool
}

func commandLine(args []string) (commandLineArgs, error) {
	flags := gnuflag.NewFlagSet("jaeger-k8s-operator", gnuflag.ContinueOnError)
	var a commandLineArgs
	var rawLogLevel string
	flags.StringVar(&rawLogLevel, "log-level", "INFO",
		"log level to use (TRACE/DEBUG/INFO/etc)")
	flags.StringVar(&a.socketDir, "socket-dir", pebble.DefaultSocketDir,
		"directory holding a pebble socket per workload container")
	flags.StringVar(&a.metricsFile, "metrics-file", "",
		"write charm metrics in text format to this file")
	flags.DurationVar(&a.waitTimeout, "wait-timeout", 30*time.Second,
		"how long to wait for a service to start or stop")
	flags.BoolVar(&a.jujuLog, "juju-log", true,
		"also send log output to juju-log")

	if err := flags.Parse(true, args); err != nil {
		return a, errors.Trace(err)
	}
	level, ok := loggo.ParseLevel(rawLogLevel)
	if !ok {
		return a, errors.NotValidf("log level %q", rawLogLevel)
	}
	a.logLevel = level
	if a.waitTimeout < 0 {
		return a, errors.NotValidf("negative wait timeout")
	}
	return a, nil
}

// actionReporter reports the outcome of an action back to juju.
type actionReporter interface {
	ActionSet(ctx context.Context, results map[string]string) error
	ActionFail(ctx context.Context, message string) error
}

// charm holds everything one dispatch needs.
type charm struct {
	hctx       *hooktools.Context
	supervisor workload.Supervisor
	clock      clock.Clock
	metrics    *eventrouter.Collector
}

func (ch charm) router() (*eventrouter.Router, error) {
	pub, err := publisher.New(publisher.Config{
		Leadership: ch.hctx,
		Binder:     ch.hctx,
		Writer:     ch.hctx,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	restarter, err := actions.NewHandler(ch.supervisor, workload.ManagedServices()...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return eventrouter.NewRouter(eventrouter.Config{
		ConfigSource: ch.hctx,
		Peers:        ch.hctx,
		Supervisor:   ch.supervisor,
		Publisher:    pub,
		Restarter:    restarter,
		StatusSetter: ch.hctx,
		Clock:        ch.clock,
		Metrics:      ch.metrics,
	})
}

// dispatch routes a single trigger through a dispatcher and waits for it.
func (ch charm) dispatch(ctx context.Context, t eventrouter.Trigger) error {
	router, err := ch.router()
	if err != nil {
		return errors.Trace(err)
	}
	d, err := eventrouter.NewDispatcher(router)
	if err != nil {
		return errors.Trace(err)
	}
	handleErr := d.Dispatch(ctx, t)
	d.Kill()
	if err := d.Wait(); err != nil {
		logger.Warningf("dispatcher stopped with error: %v", err)
	}
	if handleErr != nil {
		return errors.Trace(handleErr)
	}
	logger.Infof("%s handled, status %s", t, router.Status())
	return nil
}

// reportAction records the result of an action trigger. A failed action
// is reported to the operator rather than failing the dispatch.
func reportAction(ctx context.Context, reporter actionReporter, t eventrouter.RestartAction, err error) error {
	if err != nil {
		logger.Errorf("%s failed: %v", t, err)
		return errors.Trace(reporter.ActionFail(ctx, err.Error()))
	}
	return errors.Trace(reporter.ActionSet(ctx, map[string]string{
		"result": fmt.Sprintf("restarted %s", t.Service),
	}))
}

func writeMetrics(path string, metrics *eventrouter.Collector) error {
	if path == "" {
		return nil
	}
	registry := prometheus.NewRegistry()
	if err := registry.Register(metrics); err != nil {
		return errors.Trace(err)
	}
	return errors.Annotatef(prometheus.WriteToTextfile(path, registry), "writing metrics to %q", path)
}

// run handles the event named by the dispatch path in the environment.
// The returned code is the process exit status.
func run(ctx context.Context, args commandLineArgs, getenv func(string) string, runner hooktools.Runner, open func() (workload.Supervisor, error)) int {
	dispatchPath := getenv(dispatchPathEnv)
	if dispatchPath == "" {
		logger.Errorf("%s not set", dispatchPathEnv)
		return 1
	}
	hctx, err := hooktools.NewContext(runner, getenv(unitNameEnv))
	if err != nil {
		logger.Errorf("creating hook context: %v", err)
		return 1
	}
	trigger, err := eventrouter.ParseDispatchPath(ctx, dispatchPath, hctx)
	if errors.Is(err, errors.NotSupported) {
		logger.Debugf("ignoring %s: %v", dispatchPath, err)
		return 0
	} else if err != nil && strings.HasPrefix(dispatchPath, "actions/") {
		logger.Errorf("parsing %s: %v", dispatchPath, err)
		if fErr := hctx.ActionFail(ctx, err.Error()); fErr != nil {
			logger.Errorf("reporting action failure: %v", fErr)
			return 1
		}
		return 0
	} else if err != nil {
		logger.Errorf("parsing %s: %v", dispatchPath, err)
		return 1
	}

	supervisor, err := open()
	if err != nil {
		logger.Errorf("connecting to pebble: %v", err)
		return 1
	}
	ch := charm{
		hctx:       hctx,
		supervisor: supervisor,
		clock:      clock.WallClock,
		metrics:    eventrouter.NewMetricsCollector(),
	}
	err = ch.dispatch(ctx, trigger)
	if action, ok := trigger.(eventrouter.RestartAction); ok {
		err = reportAction(ctx, hctx, action, err)
	}
	if mErr := writeMetrics(args.metricsFile, ch.metrics); mErr != nil {
		logger.Warningf("%v", mErr)
	}
	if err != nil {
		logger.Errorf("%s: %v", trigger, err)
		return 1
	}
	return 0
}

func main() {
	args, err := commandLine(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	runner := hooktools.ExecRunner{}
	var logRunner hooktools.Runner
	if args.jujuLog {
		logRunner = runner
	}
	if err := setupLogging(args.logLevel, logRunner); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	open := func() (workload.Supervisor, error) {
		return pebble.Open(args.socketDir, workload.ManagedServices(), args.waitTimeout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, os.Interrupt)
	w, err := interrupt.NewWatcher(sigCh, cancel)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	code := run(ctx, args, os.Getenv, runner, open)
	w.Kill()
	if err := w.Wait(); err != nil {
		logger.Warningf("%v", err)
		code = 1
	}
	os.Exit(code)
}
