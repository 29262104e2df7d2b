// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/twavp/twavp"
)

func scoreAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return errors.Wrap(err, "init logger")
	}

	opts, err := loadOptions(ctx.String(optionsFlag.Name))
	if err != nil {
		return errors.Wrap(err, "options")
	}
	snapshot, err := twavp.ParseSnapshot(ctx.String(snapshotFlag.Name))
	if err != nil {
		return errors.Wrap(err, "snapshot")
	}
	network := ctx.String(networkFlag.Name)
	if network == "" {
		return errors.New("missing --network")
	}
	addresses := []string(ctx.Args())
	if len(addresses) == 0 {
		return errors.New("no addresses given")
	}

	exitCtx := handleExitSignal()

	strategy, registry, err := newStrategy(exitCtx, ctx.GlobalString(configFlag.Name))
	if err != nil {
		return err
	}
	defer registry.Close()

	dest, err := registry.Chain(exitCtx, network)
	if err != nil {
		return errors.Wrap(err, "destination network")
	}

	scores, err := strategy.Score(exitCtx, ctx.String(spaceFlag.Name), dest, addresses, opts, snapshot)
	if err != nil {
		return errors.Wrap(err, "score")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(scores)
}
