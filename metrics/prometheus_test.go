// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	counts := LazyLoadCounterVec("test_lookup_count", []string{"result"})
	for range 3 {
		counts().AddWithLabel(1, map[string]string{"result": "hit"})
	}
	counts().AddWithLabel(1, map[string]string{"result": "miss"})

	hist := LazyLoadHistogram("test_evaluation_ms", Bucket10s)
	for _, v := range []int64{100, 900, 2000} {
		hist().Observe(v)
	}

	histVec := LazyLoadHistogramVec("test_request_ms", []string{"code"}, BucketHTTPReqs)
	histVec().ObserveWithLabels(5, map[string]string{"code": "200"})
	histVec().ObserveWithLabels(7, map[string]string{"code": "400"})

	heads := LazyLoadGaugeVec("test_network_head", []string{"network"})
	heads().SetWithLabel(17_000_000, map[string]string{"network": "1"})
	heads().SetWithLabel(18_000_000, map[string]string{"network": "1"})

	// same name, same meter
	require.Same(t,
		metrics.GetOrCreateCountVecMeter("test_lookup_count", []string{"result"}),
		counts(),
	)

	families := gather(t)

	lookups := families["twavp_test_lookup_count"].GetMetric()
	require.Len(t, lookups, 2)
	require.Equal(t, float64(4), lookups[0].GetCounter().GetValue()+lookups[1].GetCounter().GetValue())

	evaluation := families["twavp_test_evaluation_ms"].GetMetric()[0].GetHistogram()
	require.Equal(t, uint64(3), evaluation.GetSampleCount())
	require.Equal(t, float64(3000), evaluation.GetSampleSum())

	require.Len(t, families["twavp_test_request_ms"].GetMetric(), 2)

	head := families["twavp_test_network_head"].GetMetric()
	require.Len(t, head, 1)
	require.Equal(t, float64(18_000_000), head[0].GetGauge().GetValue())

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `twavp_test_lookup_count{result="miss"} 1`)
}

func TestLazyLoading(t *testing.T) {
	metrics = defaultNoopMetrics()

	lazyCounterVec := LazyLoadCounterVec("lazy_counter_vec", nil)
	lazyGaugeVec := LazyLoadGaugeVec("lazy_gauge_vec", nil)
	lazyHistogram := LazyLoadHistogram("lazy_histogram", nil)
	lazyHistogramVec := LazyLoadHistogramVec("lazy_histogram_vec", nil, nil)

	// meters bind on first use, after initialization they are prometheus backed
	InitializePrometheusMetrics()

	require.IsType(t, &promCountVecMeter{}, lazyCounterVec())
	require.IsType(t, &promGaugeVecMeter{}, lazyGaugeVec())
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	require.IsType(t, &promHistogramVecMeter{}, lazyHistogramVec())

	// bound meters stay bound
	metrics = defaultNoopMetrics()
	require.IsType(t, &promHistogramMeter{}, lazyHistogram())
	InitializePrometheusMetrics()
}
