// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import "github.com/ethereum/go-ethereum/common"

// Aggregate reduces an address' working balances, oldest first, to one weight.
// Whitelisted addresses get the most recent sample, others the mean.
func Aggregate(balances []float64, addr common.Address, whitelist Whitelist) float64 {
	if len(balances) == 0 {
		return 0
	}
	if whitelist.Contains(addr) {
		return balances[len(balances)-1]
	}
	var sum float64
	for _, b := range balances {
		sum += b
	}
	return sum / float64(len(balances))
}
