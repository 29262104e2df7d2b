// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package contracts exposes the ABIs of the on-chain contracts read by the strategy.
package contracts

import (
	"fmt"

	"github.com/vechain/twavp/abi"
	"github.com/vechain/twavp/contracts/gen"
)

// Contract is a named contract ABI.
type Contract struct {
	name string
	ABI  *abi.ABI
}

func mustLoadContract(name string) *Contract {
	asset := "compiled/" + name + ".abi"
	data := gen.MustABI(asset)
	abi, err := abi.New(data)
	if err != nil {
		panic(fmt.Errorf("load ABI for '%s': %w", name, err))
	}
	return &Contract{name, abi}
}

// Name returns the contract name.
func (c *Contract) Name() string {
	return c.name
}

// MustMethod returns the named method and panics if the ABI does not define it.
func (c *Contract) MustMethod(name string) *abi.Method {
	m, ok := c.ABI.MethodByName(name)
	if !ok {
		panic(fmt.Errorf("method '%s' not found in %s ABI", name, c.name))
	}
	return m
}

var (
	// LiquidityGauge is the destination chain gauge holding the voting balances.
	LiquidityGauge = mustLoadContract("LiquidityGauge")
	// VeBoostProxy reports escrow balances adjusted for boost delegation.
	VeBoostProxy = mustLoadContract("VeBoostProxy")
	// VotingEscrow is the home chain vote-escrowed governance token.
	VotingEscrow = mustLoadContract("VotingEscrow")
	// Multicall3 aggregates calls into a single eth_call.
	Multicall3 = mustLoadContract("Multicall3")
)
