// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/twavp/metrics"
)

type head struct {
	n   uint64
	err error
}

func (h head) BlockNumber(context.Context) (uint64, error) { return h.n, h.err }

type staticNetworks map[string]HeadReader

func (s staticNetworks) Heads(context.Context) (map[string]HeadReader, error) { return s, nil }

func get(t *testing.T, h *Health) (int, Status) {
	t.Helper()
	router := mux.NewRouter()
	h.Mount(router, "/health")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status Status
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	return rr.Code, status
}

func TestHealthy(t *testing.T) {
	metrics.InitializePrometheusMetrics()

	code, status := get(t, New(staticNetworks{
		"1":     head{n: 18_000_000},
		"42161": head{n: 1_000_000},
	}, 0))

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(18_000_000), status.Networks["1"].Head)
	assert.Equal(t, uint64(1_000_000), status.Networks["42161"].Head)

	rr := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `twavp_network_head{network="1"} 1.8e+07`)
}

func TestUnhealthy(t *testing.T) {
	code, status := get(t, New(staticNetworks{
		"1":     head{n: 18_000_000},
		"42161": head{err: errors.New("connection refused")},
	}, 0))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, status.Healthy)
	assert.Equal(t, "connection refused", status.Networks["42161"].Error)
	assert.Empty(t, status.Networks["1"].Error)
}

func TestNoNetworks(t *testing.T) {
	code, status := get(t, New(nil, 0))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, status.Healthy)
}
