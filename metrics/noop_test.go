// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	// recording on noop meters never fails, whatever the labels
	LazyLoadHistogram("evaluation_ms", nil)().Observe(10)
	LazyLoadHistogramVec("request_ms", []string{"code"}, nil)().
		ObserveWithLabels(10, map[string]string{"unknown": "label"})
	LazyLoadCounterVec("lookups", []string{"result"})().
		AddWithLabel(1, map[string]string{"unknown": "label"})
	LazyLoadGaugeVec("head", []string{"network"})().
		SetWithLabel(18_000_000, nil)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
