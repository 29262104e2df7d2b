// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"context"
	"math/big"
)

// alignBlocks resolves the snapshot into reference blocks on the destination
// and home chains. An explicit snapshot is matched to the home chain by
// timestamp. Latest uses the head of each chain.
func (s *Strategy) alignBlocks(ctx context.Context, dest Chain, snapshot Snapshot) (destRef, homeRef uint64, err error) {
	n, explicit := snapshot.Block()
	if !explicit {
		if destRef, err = dest.Blocks.BlockNumber(ctx); err != nil {
			return 0, 0, errorf(ErrExternalLookup, "chain %s: block number - %w", dest.ID, err)
		}
		if homeRef, err = s.home.Blocks.BlockNumber(ctx); err != nil {
			return 0, 0, errorf(ErrExternalLookup, "chain %s: block number - %w", s.home.ID, err)
		}
		logger.Debug("aligned to heads", "dest", destRef, "home", homeRef)
		return destRef, homeRef, nil
	}

	header, err := dest.Blocks.HeaderByNumber(ctx, new(big.Int).SetUint64(n))
	if err != nil {
		return 0, 0, errorf(ErrExternalLookup, "chain %s: header %d - %w", dest.ID, n, err)
	}
	if header == nil {
		return 0, 0, errorf(ErrExternalLookup, "chain %s: block %d not found", dest.ID, n)
	}
	homeRef, err = s.finder.BlockAt(ctx, s.home.ID, header.Time)
	if err != nil {
		return 0, 0, errorf(ErrExternalLookup, "chain %s: block at %d - %w", s.home.ID, header.Time, err)
	}
	logger.Debug("aligned by timestamp", "dest", n, "ts", header.Time, "home", homeRef)
	return n, homeRef, nil
}
