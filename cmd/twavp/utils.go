// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/twavp/api/health"
	"github.com/vechain/twavp/blockfinder"
	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/provider"
	"github.com/vechain/twavp/twavp"
)

func initLogger(ctx *cli.Context) (*slog.LevelVar, error) {
	lvl := ctx.GlobalInt(verbosityFlag.Name)
	if lvl < 0 {
		return nil, errors.Errorf("invalid verbosity %d", lvl)
	}

	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(lvl))

	handler, err := newLogHandler(os.Stderr, &level, ctx.GlobalBool(jsonLogsFlag.Name))
	if err != nil {
		return nil, err
	}
	log.SetDefault(log.NewLogger(handler))
	return &level, nil
}

func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs bool) (slog.Handler, error) {
	if jsonLogs {
		return log.NewFormatHandler(log.FormatJSON, w, level, false)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
	}
	return log.NewFormatHandler(log.FormatTerminal, w, level, useColor)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

// loadOptions reads strategy options given inline or as @path.
func loadOptions(value string) (*twavp.Options, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("missing --options")
	}
	data := []byte(value)
	if path, ok := strings.CutPrefix(value, "@"); ok {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, errors.Wrap(err, "read options")
		}
	}
	opts, err := twavp.ParseOptions(data)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// newStrategy dials the home chain of the network file at path.
func newStrategy(ctx context.Context, path string) (*twavp.Strategy, *provider.Registry, error) {
	cfg, err := provider.LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}
	registry := provider.NewRegistry(cfg)
	home, err := registry.Home(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "home network")
	}
	finder := blockfinder.New(cfg.BlockFinder)
	return twavp.New(home, finder, twavp.DefaultConfig()), registry, nil
}

// registryHeads exposes the configured networks to the health check.
type registryHeads struct {
	registry *provider.Registry
}

func (r registryHeads) Heads(ctx context.Context) (map[string]health.HeadReader, error) {
	chains, err := r.registry.Chains(ctx)
	if err != nil {
		return nil, err
	}
	heads := make(map[string]health.HeadReader, len(chains))
	for id, c := range chains {
		heads[id] = c.Blocks
	}
	return heads, nil
}
