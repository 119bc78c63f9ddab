// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved. This file is part of copperdag.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/copperdag/copperdag/examples/natspubsub"
	"github.com/copperdag/copperdag/examples/panicsink"
	"github.com/copperdag/copperdag/internal/config"
	"github.com/copperdag/copperdag/internal/runtime"
	"github.com/copperdag/copperdag/pkg/clock"
	"github.com/copperdag/copperdag/pkg/mempool"
	"github.com/copperdag/copperdag/pkg/metrics"
	"github.com/copperdag/copperdag/pkg/rlog"
)

func main() {
	var flagConfigFile string
	var flagGops bool
	flag.StringVar(&flagConfigFile, "config", "./config.json", "Overwrite the process defaults with those in `config.json`")
	flag.BoolVar(&flagGops, "gops", false, "Listen via github.com/google/gops/agent (for debugging)")
	flag.Parse()

	if err := config.Init(flagConfigFile); err != nil {
		rlog.Fatal(err)
	}
	rlog.SetLevel(config.Keys.LogLevel)
	rlog.SetDateTime(config.Keys.LogDateTime)

	if flagGops {
		if err := agent.Listen(agent.Options{Addr: config.Keys.GopsAddr}); err != nil {
			rlog.Fatalf("gops/agent.Listen failed: %s", err.Error())
		}
	}

	g, err := config.LoadGraph(config.Keys.GraphFile)
	if err != nil {
		rlog.Fatalf("loading graph %q: %s", config.Keys.GraphFile, err.Error())
	}

	reg := newRegistry()

	set := metrics.NewSet()
	if config.Keys.MetricsAddr != "" {
		set.MustRegister(prometheus.DefaultRegisterer)
		go serveMetrics(config.Keys.MetricsAddr)
	}

	pool := mempool.NewPool(4096, 256, 64)
	rt, err := runtime.Build(g, reg, clock.NewRealClock(), pool, runtime.WithMetrics(set))
	if err != nil {
		rlog.Fatalf("build failed: %s", err.Error())
	}

	if err := rt.Start(); err != nil {
		rlog.Fatalf("start failed: %s", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		rlog.Info("shutting down")
		cancel()
	}()

	var runErr error
	if config.Keys.CadenceMillis > 0 {
		runErr = rt.RunCadenced(ctx, time.Duration(config.Keys.CadenceMillis)*time.Millisecond)
	} else {
		runErr = rt.Run(ctx)
	}
	if runErr != nil && runErr != context.Canceled {
		rlog.Errorf("run stopped: %s", runErr.Error())
	}

	if err := rt.Stop(); err != nil {
		rlog.Errorf("stop: %s", err.Error())
	}
}

// newRegistry wires up every task and monitor type a graph document may
// reference by name. Out-of-tree task implementations register here the
// same way; this binary only knows about the bundled examples.
func newRegistry() *runtime.Registry {
	reg := runtime.NewRegistry()
	reg.RegisterTask("natspubsub::source", natspubsub.NewNatsSource)
	reg.RegisterTask("natspubsub::sink", natspubsub.NewNatsSink)
	reg.RegisterTask("panicsink::sink", panicsink.New)
	return reg
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		rlog.Errorf("metrics server on %s: %s", addr, err.Error())
	}
}
