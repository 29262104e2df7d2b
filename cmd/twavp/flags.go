// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/twavp/log"
)

var (
	configFlag = cli.StringFlag{
		Name:   "config",
		Value:  "networks.yaml",
		EnvVar: "TWAVP_CONFIG",
		Usage:  "YAML file mapping chain ids to RPC endpoints",
	}
	verbosityFlag = cli.IntFlag{
		Name:   "verbosity",
		Value:  log.LegacyLevelInfo,
		EnvVar: "TWAVP_VERBOSITY",
		Usage:  "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:   "json-logs",
		EnvVar: "TWAVP_JSON_LOGS",
		Usage:  "output logs in JSON format",
	}

	// score
	networkFlag = cli.StringFlag{
		Name:  "network",
		Usage: "chain id of the destination network",
	}
	snapshotFlag = cli.StringFlag{
		Name:  "snapshot",
		Value: "latest",
		Usage: "destination block number or 'latest'",
	}
	optionsFlag = cli.StringFlag{
		Name:  "options",
		Usage: "strategy options as JSON, or @path to a JSON file",
	}
	spaceFlag = cli.StringFlag{
		Name:  "space",
		Usage: "governance space name",
	}

	// serve
	apiAddrFlag = cli.StringFlag{
		Name:   "api-addr",
		Value:  "localhost:8680",
		EnvVar: "TWAVP_API_ADDR",
		Usage:  "score API listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:   "api-cors",
		Value:  "*",
		EnvVar: "TWAVP_API_CORS",
		Usage:  "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:   "api-timeout",
		Value:  30000,
		EnvVar: "TWAVP_API_TIMEOUT",
		Usage:  "score evaluation timeout in milliseconds",
	}
	apiLogsFlag = cli.BoolFlag{
		Name:   "api-logs",
		EnvVar: "TWAVP_API_LOGS",
		Usage:  "enables API requests logging",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:   "enable-metrics",
		EnvVar: "TWAVP_ENABLE_METRICS",
		Usage:  "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:   "metrics-addr",
		Value:  "localhost:2112",
		EnvVar: "TWAVP_METRICS_ADDR",
		Usage:  "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:   "enable-admin",
		EnvVar: "TWAVP_ENABLE_ADMIN",
		Usage:  "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:   "admin-addr",
		Value:  "localhost:2113",
		EnvVar: "TWAVP_ADMIN_ADDR",
		Usage:  "admin service listening address",
	}
)
