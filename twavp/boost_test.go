// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestWorkingBalance(t *testing.T) {
	// 20*0.4 + (500*5/1000)*0.6
	assert.Equal(t, 9.5, WorkingBalance(20, 5, 1000, 500))
	assert.Equal(t, 5.5, WorkingBalance(10, 5, 1000, 500))

	// capped at the gauge balance
	assert.Equal(t, 10.0, WorkingBalance(10, 1000, 1000, 500))
	assert.Equal(t, 0.0, WorkingBalance(0, 5, 1000, 500))
}

func TestWorkingBalanceZeroEscrow(t *testing.T) {
	for _, l := range []float64{0, 1, 10, 123.456, 1e9} {
		assert.InDelta(t, l*0.4, WorkingBalance(l, 5, 0, 500), 1e-9*l+1e-12)
	}
	assert.Equal(t, 4.0, WorkingBalance(10, 1e6, 0, 1e6))
}

func TestWorkingBalanceNeverExceedsGauge(t *testing.T) {
	values := []float64{0, 0.5, 1, 7, 100, 1e6, 3.3e12}
	for _, l := range values {
		for _, vb := range values {
			for _, ve := range values {
				for _, gauge := range values {
					assert.LessOrEqual(t, WorkingBalance(l, vb, ve, gauge), l)
				}
			}
		}
	}
}

func TestAggregate(t *testing.T) {
	a := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	b := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	wl := Whitelist{a: {}}

	assert.Equal(t, 0.0, Aggregate(nil, b, wl))
	assert.Equal(t, 0.0, Aggregate(nil, a, wl))
	assert.Equal(t, 7.5, Aggregate([]float64{5.5, 9.5}, b, wl))
	assert.Equal(t, 9.5, Aggregate([]float64{5.5, 9.5}, a, wl))
	assert.Equal(t, 3.0, Aggregate([]float64{3}, b, nil))
	assert.Equal(t, 2.0, Aggregate([]float64{1, 2, 3}, b, nil))
}
