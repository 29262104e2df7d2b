// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/twavp/api"
	"github.com/vechain/twavp/api/health"
	"github.com/vechain/twavp/cmd/twavp/httpserver"
	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/metrics"
)

func serveAction(ctx *cli.Context) error {
	defer func() { log.Info("exited") }()

	logLevel, err := initLogger(ctx)
	if err != nil {
		return errors.Wrap(err, "init logger")
	}

	exitCtx := handleExitSignal()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return errors.Wrap(err, "start metrics server")
		}
		defer func() { log.Info("stopping metrics server..."); closeFunc() }()
		log.Info("metrics server started", "url", url)
	}

	strategy, registry, err := newStrategy(exitCtx, ctx.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	defer registry.Close()

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(apiLogsFlag.Name))

	timeout := time.Duration(ctx.Uint64(apiTimeoutFlag.Name)) * time.Millisecond
	healthStatus := health.New(registryHeads{registry}, 0)

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeFunc, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), logLevel, &apiLogs, healthStatus)
		if err != nil {
			return errors.Wrap(err, "start admin server")
		}
		defer func() { log.Info("stopping admin server..."); closeFunc() }()
		log.Info("admin server started", "url", url)
	}

	handler := api.New(strategy, registry, healthStatus, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: &apiLogs,
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
		Timeout:         timeout,
	})
	url, closeFunc, err := httpserver.StartAPIServer(ctx.String(apiAddrFlag.Name), handler, timeout)
	if err != nil {
		return errors.Wrap(err, "start API server")
	}
	defer func() { log.Info("stopping API server..."); closeFunc() }()
	log.Info("score API started", "url", url, "home", registry.HomeID())

	<-exitCtx.Done()
	return nil
}
