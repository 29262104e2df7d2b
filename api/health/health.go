// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health reports whether the configured networks answer.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/vechain/twavp/api/utils"
	"github.com/vechain/twavp/co"
	"github.com/vechain/twavp/metrics"
)

const defaultTimeout = 5 * time.Second

var metricNetworkHead = metrics.LazyLoadGaugeVec("network_head", []string{"network"})

// HeadReader reads the current block number of a chain.
type HeadReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
}

// Networks resolves the head readers to probe.
type Networks interface {
	Heads(ctx context.Context) (map[string]HeadReader, error)
}

type NetworkStatus struct {
	Head  uint64 `json:"head,omitempty"`
	Error string `json:"error,omitempty"`
}

type Status struct {
	Healthy  bool                     `json:"healthy"`
	Networks map[string]NetworkStatus `json:"networks,omitempty"`
}

type Health struct {
	networks Networks
	timeout  time.Duration
}

// New creates a Health. A nil networks reports healthy without probing.
func New(networks Networks, timeout time.Duration) *Health {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Health{
		networks: networks,
		timeout:  timeout,
	}
}

// Status probes every network concurrently. It is healthy when all of them answer.
func (h *Health) Status(ctx context.Context) *Status {
	status := &Status{Healthy: true}
	if h.networks == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	heads, err := h.networks.Heads(ctx)
	if err != nil {
		status.Healthy = false
		status.Networks = map[string]NetworkStatus{"": {Error: err.Error()}}
		return status
	}

	var lock sync.Mutex
	status.Networks = make(map[string]NetworkStatus, len(heads))
	co.Parallel(len(heads), func(enqueue co.Enqueue) {
		for id, reader := range heads {
			enqueue(func() {
				var ns NetworkStatus
				head, err := reader.BlockNumber(ctx)
				if err != nil {
					ns.Error = err.Error()
				} else {
					ns.Head = head
					metricNetworkHead().SetWithLabel(int64(head), map[string]string{"network": id})
				}

				lock.Lock()
				defer lock.Unlock()
				status.Networks[id] = ns
				if err != nil {
					status.Healthy = false
				}
			})
		}
	})
	return status
}

func (h *Health) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	status := h.Status(r.Context())
	if !status.Healthy {
		w.Header().Set("Content-Type", utils.JSONContentType)
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *Health) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
