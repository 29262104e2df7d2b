// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package blockfinder provides a client for the block-index service which maps
// a timestamp to the closest block of a given chain.
package blockfinder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/vechain/twavp/cache"
	"github.com/vechain/twavp/log"
	"github.com/vechain/twavp/metrics"
)

// DefaultURL is the public block finder endpoint.
const DefaultURL = "https://blockfinder.snapshot.org"

// cacheSize bounds the number of remembered (chain, timestamp) lookups.
const cacheSize = 4096

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

var (
	logger            = log.WithContext("pkg", "blockfinder")
	metricLookupCount = metrics.LazyLoadCounterVec("blockfinder_lookup_count", []string{"result"})
)

type lookupKey struct {
	chainID   string
	timestamp uint64
}

// Client represents the HTTP client for the block finder GraphQL endpoint.
type Client struct {
	url   string
	c     *http.Client
	cache *cache.LRU[lookupKey, uint64]
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

// NewWithHTTP creates a new Client using the given http client.
func NewWithHTTP(url string, c *http.Client) *Client {
	lru, err := cache.NewLRU[lookupKey, uint64](cacheSize)
	if err != nil {
		panic(err)
	}
	return &Client{
		url:   strings.TrimRight(url, "/"),
		c:     c,
		cache: lru,
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type blocksResponse struct {
	Data struct {
		Blocks []struct {
			Number blockNumber `json:"number"`
		} `json:"blocks"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// blockNumber accepts both JSON numbers and decimal strings.
type blockNumber uint64

func (n *blockNumber) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid block number %s", data)
	}
	*n = blockNumber(v)
	return nil
}

// BuildQuery returns the GraphQL query selecting the block of chainID at timestamp.
func BuildQuery(chainID string, timestamp uint64) string {
	return fmt.Sprintf(`query { blocks(where: { ts: %d, network_in: [%s] }) { number } }`, timestamp, strconv.Quote(chainID))
}

// BlockAt returns the number of the block of chainID whose timestamp matches ts.
// ErrNotFound is returned when the service knows no such block.
func (c *Client) BlockAt(ctx context.Context, chainID string, ts uint64) (uint64, error) {
	number, hit, err := c.cache.GetOrLoad(lookupKey{chainID, ts}, func(key lookupKey) (uint64, error) {
		return c.query(ctx, key.chainID, key.timestamp)
	})
	switch {
	case err != nil:
		metricLookupCount().AddWithLabel(1, map[string]string{"result": "error"})
		return 0, err
	case hit:
		metricLookupCount().AddWithLabel(1, map[string]string{"result": "cached"})
	default:
		metricLookupCount().AddWithLabel(1, map[string]string{"result": "found"})
	}
	logger.Trace("block found", "chain", chainID, "ts", ts, "number", number, "cached", hit)
	return number, nil
}

func (c *Client) query(ctx context.Context, chainID string, ts uint64) (uint64, error) {
	body, err := c.httpPOST(ctx, c.url, &graphQLRequest{Query: BuildQuery(chainID, ts)})
	if err != nil {
		return 0, fmt.Errorf("unable to query block finder - %w", err)
	}

	var res blocksResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return 0, fmt.Errorf("unable to unmarshal blocks - %w", err)
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Message)
		}
		return 0, fmt.Errorf("block finder query failed - %s", strings.Join(msgs, "; "))
	}
	if len(res.Data.Blocks) == 0 {
		return 0, fmt.Errorf("no block of chain %s at timestamp %d - %w", chainID, ts, ErrNotFound)
	}
	return uint64(res.Data.Blocks[0].Number), nil
}

func (c *Client) httpPOST(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, bytes.TrimSpace(responseBody), ErrNot200Status)
	}
	return responseBody, nil
}
