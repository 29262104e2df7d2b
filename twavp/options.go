// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package twavp

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// MaxSamples bounds the number of batched reads per chain.
	MaxSamples = 2
	// MaxWhitelist bounds the number of whitelisted addresses.
	MaxWhitelist = 20
	// DefaultHomeBlocksPerDay is the home chain cadence used when the options omit it.
	DefaultHomeBlocksPerDay = 7200
)

// Options is the options bag the governance framework passes to the strategy.
type Options struct {
	SDTokenGauge       string   `json:"sdTokenGauge"`
	NumberOfSamples    int      `json:"twavpNumberOfBlocks"`
	DaysInterval       float64  `json:"twavpDaysInterval"`
	BlocksPerDay       uint64   `json:"blocksPerDay"`
	HomeBlocksPerDay   uint64   `json:"homeBlocksPerDay,omitempty"`
	WhiteListedAddress []string `json:"whiteListedAddress"`
}

// ParseOptions decodes options from JSON. Unknown fields are ignored.
func ParseOptions(data []byte) (*Options, error) {
	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, errorf(ErrConfig, "malformed options - %w", err)
	}
	return &opts, nil
}

// Validate checks the options without touching the network.
func (o *Options) Validate() error {
	_, err := o.resolve()
	return err
}

// params is the validated form of Options.
type params struct {
	gauge     common.Address
	samples   int
	days      float64
	homeBPD   uint64
	destBPD   uint64
	whitelist Whitelist
}

func (o *Options) resolve() (*params, error) {
	if o == nil {
		return nil, errorf(ErrConfig, "missing options")
	}
	if o.NumberOfSamples < 1 {
		return nil, errorf(ErrConfig, "twavpNumberOfBlocks must be at least 1, got %d", o.NumberOfSamples)
	}
	if o.NumberOfSamples > MaxSamples {
		return nil, errorf(ErrConfig, "maximum of %d calls, got %d", MaxSamples, o.NumberOfSamples)
	}
	if len(o.WhiteListedAddress) > MaxWhitelist {
		return nil, errorf(ErrConfig, "maximum of %d whitelisted address, got %d", MaxWhitelist, len(o.WhiteListedAddress))
	}
	if !(o.DaysInterval > 0) {
		return nil, errorf(ErrConfig, "twavpDaysInterval must be positive")
	}
	if o.BlocksPerDay == 0 {
		return nil, errorf(ErrConfig, "blocksPerDay must be positive")
	}
	gauge, err := parseAddress(o.SDTokenGauge)
	if err != nil {
		return nil, errorf(ErrConfig, "sdTokenGauge: %w", err)
	}
	whitelist, err := NewWhitelist(o.WhiteListedAddress)
	if err != nil {
		return nil, err
	}

	homeBPD := o.HomeBlocksPerDay
	if homeBPD == 0 {
		homeBPD = DefaultHomeBlocksPerDay
	}
	return &params{
		gauge:     gauge,
		samples:   o.NumberOfSamples,
		days:      o.DaysInterval,
		homeBPD:   homeBPD,
		destBPD:   o.BlocksPerDay,
		whitelist: whitelist,
	}, nil
}

func parseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, &invalidAddressError{s}
	}
	return common.HexToAddress(s), nil
}

type invalidAddressError struct{ s string }

func (e *invalidAddressError) Error() string {
	return "invalid address " + strconv.Quote(e.s)
}

// Whitelist is a set of addresses that skip time averaging.
type Whitelist map[common.Address]struct{}

// NewWhitelist parses addrs in any letter case.
func NewWhitelist(addrs []string) (Whitelist, error) {
	w := make(Whitelist, len(addrs))
	for _, s := range addrs {
		addr, err := parseAddress(s)
		if err != nil {
			return nil, errorf(ErrConfig, "whiteListedAddress: %w", err)
		}
		w[addr] = struct{}{}
	}
	return w, nil
}

// Contains reports whether addr is whitelisted.
func (w Whitelist) Contains(addr common.Address) bool {
	_, ok := w[addr]
	return ok
}
