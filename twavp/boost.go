// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import "math"

// TokenlessProduction is the percentage of the gauge balance granted without any escrow.
const TokenlessProduction = 40

// WorkingBalance returns the boosted balance of a gauge holder with balance l
// and escrow voting balance votingBalance, given the escrow and gauge totals.
// The result never exceeds l. A zero escrow total drops the boost term.
func WorkingBalance(l, votingBalance, veTotal, gaugeTotal float64) float64 {
	lim := l * TokenlessProduction / 100
	if veTotal > 0 {
		lim += gaugeTotal * votingBalance / veTotal * (100 - TokenlessProduction) / 100
	}
	return math.Min(l, lim)
}
