// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package gen embeds the ABI definitions of the contracts read by the strategy.
package gen

import (
	"embed"
)

//go:embed compiled
var fs embed.FS

// MustABI returns the named ABI asset, e.g. "compiled/Multicall3.abi".
func MustABI(name string) []byte {
	data, err := fs.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return data
}
