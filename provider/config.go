// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package provider resolves chain ids into RPC backed readers.
package provider

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/twavp/blockfinder"
	"github.com/vechain/twavp/multicall"
)

// DefaultHome is the chain id of Ethereum mainnet.
const DefaultHome = "1"

// Network is the endpoint configuration of one chain.
type Network struct {
	RPC       string `yaml:"rpc"`
	Multicall string `yaml:"multicall,omitempty"`
}

// Config is the network file.
type Config struct {
	Home        string             `yaml:"home"`
	BlockFinder string             `yaml:"blockfinder"`
	Networks    map[string]Network `yaml:"networks"`
}

// LoadConfig reads and validates a YAML network file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read network config")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrapf(err, "network config %v", path)
	}
	return cfg, nil
}

// ParseConfig decodes a YAML network file, filling in defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	if cfg.Home == "" {
		cfg.Home = DefaultHome
	}
	if cfg.BlockFinder == "" {
		cfg.BlockFinder = blockfinder.DefaultURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the home network is configured and every network has
// an endpoint and a well formed multicall address.
func (c *Config) Validate() error {
	if _, ok := c.Networks[c.Home]; !ok {
		return fmt.Errorf("home network %q is not configured", c.Home)
	}
	for id, n := range c.Networks {
		if strings.TrimSpace(n.RPC) == "" {
			return fmt.Errorf("network %q: missing rpc", id)
		}
		if n.Multicall != "" && !common.IsHexAddress(n.Multicall) {
			return fmt.Errorf("network %q: invalid multicall address %q", id, n.Multicall)
		}
	}
	return nil
}

// MulticallAddress returns the configured Multicall3 deployment or the default one.
func (n Network) MulticallAddress() common.Address {
	if n.Multicall == "" {
		return multicall.DefaultAddress
	}
	return common.HexToAddress(n.Multicall)
}
