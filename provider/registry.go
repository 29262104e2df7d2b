// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/multicall"
	"github.com/vechain/twavp/twavp"
)

var logger = log.WithContext("pkg", "provider")

// ErrUnknownNetwork is returned for a chain id missing from the config.
var ErrUnknownNetwork = errors.New("unknown network")

// Registry dials each configured network once and hands out readers for it.
type Registry struct {
	cfg *Config

	lock    sync.Mutex
	clients map[string]*ethclient.Client
}

// NewRegistry creates a Registry. Nothing is dialed until a chain is requested.
func NewRegistry(cfg *Config) *Registry {
	return &Registry{
		cfg:     cfg,
		clients: make(map[string]*ethclient.Client),
	}
}

// HomeID returns the home chain id.
func (r *Registry) HomeID() string { return r.cfg.Home }

// Has reports whether id is configured.
func (r *Registry) Has(id string) bool {
	_, ok := r.cfg.Networks[id]
	return ok
}

// Chain returns the readers of network id.
func (r *Registry) Chain(ctx context.Context, id string) (twavp.Chain, error) {
	n, ok := r.cfg.Networks[id]
	if !ok {
		return twavp.Chain{}, fmt.Errorf("%w: %q", ErrUnknownNetwork, id)
	}

	client, err := r.client(ctx, id, n.RPC)
	if err != nil {
		return twavp.Chain{}, err
	}
	return twavp.Chain{
		ID:     id,
		Blocks: client,
		Batch:  multicall.New(id, client, n.MulticallAddress()),
	}, nil
}

// Chains returns the readers of every configured network.
func (r *Registry) Chains(ctx context.Context) (map[string]twavp.Chain, error) {
	chains := make(map[string]twavp.Chain, len(r.cfg.Networks))
	for id := range r.cfg.Networks {
		c, err := r.Chain(ctx, id)
		if err != nil {
			return nil, err
		}
		chains[id] = c
	}
	return chains, nil
}

// Home returns the readers of the home network.
func (r *Registry) Home(ctx context.Context) (twavp.Chain, error) {
	return r.Chain(ctx, r.cfg.Home)
}

func (r *Registry) client(ctx context.Context, id, url string) (*ethclient.Client, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to dial network %q - %w", id, err)
	}
	logger.Debug("dialed network", "chain", id, "rpc", url)
	r.clients[id] = c
	return c, nil
}

// Close closes every dialed client.
func (r *Registry) Close() {
	r.lock.Lock()
	defer r.lock.Unlock()

	for id, c := range r.clients {
		c.Close()
		delete(r.clients, id)
	}
}
