// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package twavp computes time weighted, boost adjusted voting power for
// holders whose gauge balance lives on a destination chain and whose
// vote-escrow boost lives on the home chain.
package twavp

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/vechain/twavp/bn"
	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/metrics"
	"github.com/vechain/twavp/multicall"
)

var (
	logger = log.WithContext("pkg", "twavp")

	metricEvaluationCount    = metrics.LazyLoadCounterVec("evaluation_count", []string{"status"})
	metricEvaluationDuration = metrics.LazyLoadHistogram("evaluation_duration_ms", metrics.Bucket10s)
)

// BlockReader reads chain heads and headers. *ethclient.Client satisfies it.
type BlockReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// BatchReader performs an atomic batched read at one block. *multicall.Caller satisfies it.
type BatchReader interface {
	Aggregate(ctx context.Context, calls []multicall.Call, block uint64) ([][]any, error)
}

// BlockFinder maps a timestamp to a block number of the given chain.
// *blockfinder.Client satisfies it.
type BlockFinder interface {
	BlockAt(ctx context.Context, chainID string, ts uint64) (uint64, error)
}

// Chain bundles the readers of one network.
type Chain struct {
	ID     string
	Blocks BlockReader
	Batch  BatchReader
}

// Config holds the home chain contracts.
type Config struct {
	VotingEscrow common.Address
	BoostProxy   common.Address
}

// DefaultConfig returns the production veSDT and boost proxy deployments.
func DefaultConfig() Config {
	return Config{
		VotingEscrow: common.HexToAddress("0x0C30476f66034E11782938DF8e4384970B6c9e8a"),
		BoostProxy:   common.HexToAddress("0xD67bdBefF01Fc492f1864E61756E5FBB3f173506"),
	}
}

// Strategy evaluates voting weights against a fixed home chain.
type Strategy struct {
	home   Chain
	finder BlockFinder
	cfg    Config
}

// New creates a Strategy.
func New(home Chain, finder BlockFinder, cfg Config) *Strategy {
	return &Strategy{
		home:   home,
		finder: finder,
		cfg:    cfg,
	}
}

// Score returns the voting weight of every address, keyed by checksummed address.
// Options and addresses are validated before any network access. Any failure
// aborts the whole evaluation.
func (s *Strategy) Score(
	ctx context.Context,
	space string,
	dest Chain,
	addresses []string,
	opts *Options,
	snapshot Snapshot,
) (scores map[string]float64, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failure"
		}
		metricEvaluationCount().AddWithLabel(1, map[string]string{"status": status})
		metricEvaluationDuration().Observe(time.Since(start).Milliseconds())
	}()

	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	addrs, err := parseAddresses(addresses)
	if err != nil {
		return nil, err
	}
	if len(addrs) == 0 {
		return map[string]float64{}, nil
	}

	destRef, homeRef, err := s.alignBlocks(ctx, dest, snapshot)
	if err != nil {
		return nil, err
	}
	homeBlocks, err := Schedule(homeRef, p.samples, p.days, p.homeBPD)
	if err != nil {
		return nil, err
	}
	destBlocks, err := Schedule(destRef, p.samples, p.days, p.destBPD)
	if err != nil {
		return nil, err
	}
	logger.Debug("blocks scheduled", "space", space, "chain", dest.ID, "home", homeBlocks, "dest", destBlocks)

	homeRows, destRows, err := s.fetch(ctx, dest, p.gauge, addrs, homeBlocks, destBlocks)
	if err != nil {
		return nil, err
	}

	// totals are only read at the most recent sample and apply to every sample
	veTotal := bn.ToDecimal(homeRows[len(homeRows)-1].Total, bn.TokenDecimals)
	gaugeTotal := bn.ToDecimal(destRows[len(destRows)-1].Total, bn.TokenDecimals)

	scores = make(map[string]float64, len(addrs))
	working := make([]float64, p.samples)
	for _, addr := range addrs {
		for j := range p.samples {
			working[j] = WorkingBalance(
				bn.ToDecimal(destRows[j].Balances[addr], bn.TokenDecimals),
				bn.ToDecimal(homeRows[j].Balances[addr], bn.TokenDecimals),
				veTotal,
				gaugeTotal,
			)
		}
		scores[addr.Hex()] = Aggregate(working, addr, p.whitelist)
	}

	logger.Info("scores computed",
		"space", space,
		"chain", dest.ID,
		"snapshot", snapshot,
		"addresses", len(addrs),
		"samples", p.samples,
		"elapsed", time.Since(start),
	)
	return scores, nil
}

// parseAddresses parses and deduplicates addresses, keeping first-seen order.
func parseAddresses(addresses []string) ([]common.Address, error) {
	seen := make(map[common.Address]struct{}, len(addresses))
	addrs := make([]common.Address, 0, len(addresses))
	for _, s := range addresses {
		addr, err := parseAddress(s)
		if err != nil {
			return nil, errorf(ErrConfig, "addresses: %w", err)
		}
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}
	return addrs, nil
}
