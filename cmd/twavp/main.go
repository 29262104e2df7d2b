// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// twavp evaluates the cross-chain boosted TWAVP strategy, once or as a service.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "twavp"
	app.Usage = "Time weighted, boost adjusted voting power across two chains"
	app.Flags = []cli.Flag{
		configFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:      "score",
			Usage:     "evaluate the strategy once and print the scores as JSON",
			ArgsUsage: "<address>...",
			Flags: []cli.Flag{
				networkFlag,
				snapshotFlag,
				optionsFlag,
				spaceFlag,
			},
			Action: scoreAction,
		},
		{
			Name:  "serve",
			Usage: "serve the score API",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				apiLogsFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				enableAdminFlag,
				adminAddrFlag,
			},
			Action: serveAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
