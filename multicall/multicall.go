// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package multicall reads many contract values atomically at one block through
// a single Multicall3 aggregate eth_call.
package multicall

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/vechain/twavp/abi"
	"github.com/vechain/twavp/contracts"
	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/metrics"
)

// DefaultAddress is the Multicall3 deployment shared by most EVM chains.
var DefaultAddress = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

var (
	logger = log.WithContext("pkg", "multicall")

	aggregateMethod = contracts.Multicall3.MustMethod("aggregate")

	metricBatchCount = metrics.LazyLoadCounterVec("multicall_batch_count", []string{"chain", "status"})
	metricBatchSize  = metrics.LazyLoadHistogram("multicall_batch_size", metrics.BucketBatchSize)
)

// ErrResultMismatch is returned when the aggregate result does not line up with the calls.
var ErrResultMismatch = errors.New("multicall result mismatch")

// Call is one contract read inside a batch.
type Call struct {
	Target common.Address
	Method *abi.Method
	Args   []any
}

func (c Call) String() string {
	var b strings.Builder
	b.WriteString(c.Target.Hex())
	b.WriteByte('.')
	b.WriteString(c.Method.Name())
	b.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", arg)
	}
	b.WriteByte(')')
	return b.String()
}

// call3 mirrors the Multicall3 (address target, bytes callData) tuple.
type call3 struct {
	Target   common.Address
	CallData []byte
}

// Caller issues aggregate reads against one chain.
type Caller struct {
	chainID string
	caller  ethereum.ContractCaller
	address common.Address
}

// New creates a Caller reading through the Multicall3 contract at address.
func New(chainID string, caller ethereum.ContractCaller, address common.Address) *Caller {
	return &Caller{
		chainID: chainID,
		caller:  caller,
		address: address,
	}
}

// ChainID returns the chain the caller reads from.
func (c *Caller) ChainID() string {
	return c.chainID
}

// Aggregate performs all calls in one eth_call at the given block and returns the
// decoded return values of each call, in call order. Any failing or reverted call
// fails the whole batch.
func (c *Caller) Aggregate(ctx context.Context, calls []Call, block uint64) ([][]any, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	encoded := make([]call3, len(calls))
	for i, call := range calls {
		data, err := call.Method.EncodeInput(call.Args...)
		if err != nil {
			return nil, fmt.Errorf("unable to encode call %s - %w", call, err)
		}
		encoded[i] = call3{Target: call.Target, CallData: data}
	}

	input, err := aggregateMethod.EncodeInput(encoded)
	if err != nil {
		return nil, fmt.Errorf("unable to encode aggregate - %w", err)
	}

	metricBatchSize().Observe(int64(len(calls)))
	output, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: input}, new(big.Int).SetUint64(block))
	if err != nil {
		metricBatchCount().AddWithLabel(1, map[string]string{"chain": c.chainID, "status": "failed"})
		logger.Debug("aggregate call failed", "chain", c.chainID, "block", block, "calls", len(calls), "err", err)
		return nil, fmt.Errorf("unable to aggregate %d calls at block %d - %w", len(calls), block, withRevertReason(err))
	}
	metricBatchCount().AddWithLabel(1, map[string]string{"chain": c.chainID, "status": "ok"})

	values, err := aggregateMethod.DecodeOutput(output)
	if err != nil {
		return nil, fmt.Errorf("unable to decode aggregate result - %w", err)
	}
	if len(values) != 2 {
		return nil, fmt.Errorf("%w: expected 2 return values, got %d", ErrResultMismatch, len(values))
	}
	returnData, ok := values[1].([][]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected return data type %T", ErrResultMismatch, values[1])
	}
	if len(returnData) != len(calls) {
		return nil, fmt.Errorf("%w: %d calls, %d results", ErrResultMismatch, len(calls), len(returnData))
	}

	results := make([][]any, len(calls))
	for i, call := range calls {
		results[i], err = call.Method.DecodeOutput(returnData[i])
		if err != nil {
			return nil, fmt.Errorf("unable to decode result of %s - %w", call, err)
		}
	}
	return results, nil
}

// withRevertReason appends the decoded revert reason carried by JSON-RPC
// execution errors.
func withRevertReason(err error) error {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return err
	}
	data, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil {
		return err
	}
	reason, unpackErr := abi.UnpackRevert(data)
	if unpackErr != nil {
		return err
	}
	return fmt.Errorf("reverted: %s - %w", reason, err)
}
