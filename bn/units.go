// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bn converts fixed-point on-chain integers into decimals.
package bn

import (
	"math/big"

	"github.com/holiman/uint256"
)

// TokenDecimals is the fixed-point precision of every balance and supply read by the strategy.
const TokenDecimals = 18

var scales = make(map[uint8]*big.Int)

func init() {
	for d := uint8(0); d <= 36; d++ {
		scales[d] = new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d)), nil)
	}
}

func scale(decimals uint8) *big.Int {
	if s, ok := scales[decimals]; ok {
		return s
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}

// ToDecimal converts v, a fixed-point integer with the given number of
// decimals, to the nearest float64. A nil value is zero.
func ToDecimal(v *uint256.Int, decimals uint8) float64 {
	if v == nil || v.IsZero() {
		return 0
	}
	f, _ := new(big.Rat).SetFrac(v.ToBig(), scale(decimals)).Float64()
	return f
}

// FromDecimal converts a decimal string such as "12.5" into a fixed-point
// integer with the given number of decimals. Digits beyond the precision are truncated.
func FromDecimal(s string, decimals uint8) (*uint256.Int, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok || r.Sign() < 0 {
		return nil, false
	}
	r.Mul(r, new(big.Rat).SetInt(scale(decimals)))
	v, overflow := uint256.FromBig(new(big.Int).Quo(r.Num(), r.Denom()))
	if overflow {
		return nil, false
	}
	return v, true
}

// Ether returns n whole tokens in 18-decimal fixed point.
func Ether(n uint64) *uint256.Int {
	v := uint256.NewInt(n)
	return v.Mul(v, uint256.MustFromBig(scale(TokenDecimals)))
}
