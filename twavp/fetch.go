// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/twavp/abi"
	"github.com/vechain/twavp/contracts"
	"github.com/vechain/twavp/multicall"
)

var (
	adjustedBalanceOf = contracts.VeBoostProxy.MustMethod("adjusted_balance_of")
	escrowTotalSupply = contracts.VotingEscrow.MustMethod("totalSupply")
	gaugeBalanceOf    = contracts.LiquidityGauge.MustMethod("balanceOf")
	gaugeTotalSupply  = contracts.LiquidityGauge.MustMethod("totalSupply")
)

// SampleRow holds the raw values read from one chain at one sample block.
type SampleRow struct {
	Block    uint64
	Balances map[common.Address]*uint256.Int
	// Total is set on the final sample only.
	Total *uint256.Int
}

// fetch reads both chains at every sample index. The two batches of an index
// run concurrently, indices run in order.
func (s *Strategy) fetch(
	ctx context.Context,
	dest Chain,
	gauge common.Address,
	addrs []common.Address,
	homeBlocks, destBlocks []uint64,
) (homeRows, destRows []SampleRow, err error) {
	n := len(homeBlocks)
	homeRows = make([]SampleRow, n)
	destRows = make([]SampleRow, n)

	for i := range n {
		final := i == n-1

		homeCalls := balanceCalls(s.cfg.BoostProxy, adjustedBalanceOf, addrs)
		destCalls := balanceCalls(gauge, gaugeBalanceOf, addrs)
		if final {
			homeCalls = append(homeCalls, multicall.Call{Target: s.cfg.VotingEscrow, Method: escrowTotalSupply})
			destCalls = append(destCalls, multicall.Call{Target: gauge, Method: gaugeTotalSupply})
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			homeRows[i], err = readRow(gctx, s.home, homeCalls, addrs, homeBlocks[i], final)
			return err
		})
		g.Go(func() (err error) {
			destRows[i], err = readRow(gctx, dest, destCalls, addrs, destBlocks[i], final)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, nil, err
		}
		logger.Debug("sample fetched", "index", i, "home", homeBlocks[i], "dest", destBlocks[i], "final", final)
	}
	return homeRows, destRows, nil
}

func balanceCalls(target common.Address, method *abi.Method, addrs []common.Address) []multicall.Call {
	calls := make([]multicall.Call, len(addrs), len(addrs)+1)
	for i, addr := range addrs {
		calls[i] = multicall.Call{Target: target, Method: method, Args: []any{addr}}
	}
	return calls
}

// readRow executes one batch and maps the results back to addresses. With
// withTotal the last call is the total supply.
func readRow(ctx context.Context, chain Chain, calls []multicall.Call, addrs []common.Address, block uint64, withTotal bool) (SampleRow, error) {
	results, err := chain.Batch.Aggregate(ctx, calls, block)
	if err != nil {
		return SampleRow{}, errorf(ErrBatchRead, "chain %s at block %d - %w", chain.ID, block, err)
	}
	if len(results) != len(calls) {
		return SampleRow{}, errorf(ErrBatchRead, "chain %s at block %d: %d results for %d calls", chain.ID, block, len(results), len(calls))
	}

	row := SampleRow{
		Block:    block,
		Balances: make(map[common.Address]*uint256.Int, len(addrs)),
	}
	for i, addr := range addrs {
		v, err := toUint256(results[i])
		if err != nil {
			return SampleRow{}, errorf(ErrBatchRead, "chain %s at block %d: %v - %w", chain.ID, block, calls[i], err)
		}
		row.Balances[addr] = v
	}
	if withTotal {
		last := len(calls) - 1
		if row.Total, err = toUint256(results[last]); err != nil {
			return SampleRow{}, errorf(ErrBatchRead, "chain %s at block %d: %v - %w", chain.ID, block, calls[last], err)
		}
	}
	return row, nil
}

func toUint256(result []any) (*uint256.Int, error) {
	if len(result) != 1 {
		return nil, fmt.Errorf("expected 1 output, got %d", len(result))
	}
	b, ok := result[0].(*big.Int)
	if !ok || b == nil {
		return nil, fmt.Errorf("expected uint256 output, got %T", result[0])
	}
	if b.Sign() < 0 {
		return nil, fmt.Errorf("output %s out of range", b)
	}
	v, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("output %s out of range", b)
	}
	return v, nil
}
