// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import "math"

// Schedule returns n block numbers evenly spaced over the days*blocksPerDay
// blocks ending at ref. The last element is always ref.
func Schedule(ref uint64, n int, days float64, blocksPerDay uint64) ([]uint64, error) {
	if n < 1 {
		return nil, errorf(ErrConfig, "number of samples must be at least 1, got %d", n)
	}
	if n == 1 {
		return []uint64{ref}, nil
	}

	window := float64(blocksPerDay) * days
	step := window / float64(n-1)

	blocks := make([]uint64, n)
	for i := range n - 1 {
		v := math.Round(float64(ref) - window + step*float64(i))
		if v < 0 {
			return nil, errorf(ErrConfig, "lookback window of %v blocks precedes genesis (ref %d)", window, ref)
		}
		blocks[i] = uint64(v)
	}
	blocks[n-1] = ref
	return blocks, nil
}
