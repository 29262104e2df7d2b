// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package provider

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/twavp/blockfinder"
	"github.com/vechain/twavp/contracts"
	"github.com/vechain/twavp/multicall"
)

const sampleConfig = `
home: "1"
networks:
  "1":
    rpc: https://rpc.ankr.com/eth
  "42161":
    rpc: https://arb1.arbitrum.io/rpc
    multicall: "0x842eC2c7D803033Edf55E478F461FC547Bc54EB2"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Home)
	assert.Equal(t, blockfinder.DefaultURL, cfg.BlockFinder)
	require.Len(t, cfg.Networks, 2)
	assert.Equal(t, multicall.DefaultAddress, cfg.Networks["1"].MulticallAddress())
	assert.Equal(t, common.HexToAddress("0x842eC2c7D803033Edf55E478F461FC547Bc54EB2"), cfg.Networks["42161"].MulticallAddress())
}

func TestParseConfigErrors(t *testing.T) {
	tests := map[string]string{
		"home missing":  "networks:\n  \"10\": { rpc: http://localhost }\n",
		"rpc missing":   "networks:\n  \"1\": { multicall: \"0xcA11bde05977b3631167028862bE2a173976CA11\" }\n",
		"bad multicall": "networks:\n  \"1\": { rpc: http://localhost, multicall: nope }\n",
		"not yaml":      "networks: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "networks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Home)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// newNode serves eth_blockNumber and answers every eth_call with a single
// aggregate result carrying a total supply of 500.
func newNode(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	supply, err := contracts.LiquidityGauge.MustMethod("totalSupply").EncodeOutput(big.NewInt(500))
	require.NoError(t, err)
	aggregate, err := contracts.Multicall3.MustMethod("aggregate").EncodeOutput(big.NewInt(100), [][]byte{supply})
	require.NoError(t, err)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req rpcRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		var result any
		switch req.Method {
		case "eth_blockNumber":
			result = hexutil.Uint64(1_000_000)
		case "eth_call":
			result = hexutil.Bytes(aggregate)
		default:
			t.Errorf("unexpected method %s", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestRegistryChain(t *testing.T) {
	node, calls := newNode(t)

	registry := NewRegistry(&Config{
		Home:     "1",
		Networks: map[string]Network{"1": {RPC: node.URL}},
	})
	defer registry.Close()

	assert.Equal(t, "1", registry.HomeID())
	assert.True(t, registry.Has("1"))
	assert.False(t, registry.Has("10"))

	chain, err := registry.Home(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", chain.ID)

	head, err := chain.Blocks.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), head)

	results, err := chain.Batch.Aggregate(context.Background(), []multicall.Call{
		{Target: common.HexToAddress("0x01"), Method: contracts.LiquidityGauge.MustMethod("totalSupply")},
	}, 100)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), results[0][0])
	assert.Equal(t, int32(2), calls.Load())

	// the client is dialed once and reused
	again, err := registry.Chain(context.Background(), "1")
	require.NoError(t, err)
	assert.Same(t, chain.Blocks, again.Blocks)
}

func TestRegistryChains(t *testing.T) {
	node, _ := newNode(t)
	registry := NewRegistry(&Config{
		Home: "1",
		Networks: map[string]Network{
			"1":     {RPC: node.URL},
			"42161": {RPC: node.URL, Multicall: "0x842eC2c7D803033Edf55E478F461FC547Bc54EB2"},
		},
	})
	defer registry.Close()

	chains, err := registry.Chains(context.Background())
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, "42161", chains["42161"].ID)
}

func TestRegistryUnknownNetwork(t *testing.T) {
	registry := NewRegistry(&Config{Home: "1", Networks: map[string]Network{}})

	_, err := registry.Chain(context.Background(), "137")
	assert.ErrorIs(t, err, ErrUnknownNetwork)
}
