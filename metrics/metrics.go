// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a process wide registry of meters. It records nothing until
// InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

var metrics = defaultNoopMetrics()

// Metrics creates meters by name. Asking twice for a name returns the same meter.
type Metrics interface {
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler serves the current meters in the prometheus text format.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

// Histogram buckets, in milliseconds unless stated otherwise.
var (
	// Bucket10s covers evaluations which issue several round trips to remote nodes.
	Bucket10s      = []int64{0, 500, 1000, 2000, 3000, 4000, 5000, 7500, 10_000}
	BucketHTTPReqs = []int64{
		0, 1, 2, 5, 10, 20, 30, 50, 75, 100,
		150, 200, 300, 400, 500, 750, 1000,
		1500, 2000, 3000, 4000, 5000, 10000,
	}
	// BucketBatchSize counts calls, not milliseconds.
	BucketBatchSize = []int64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}
)

type HistogramMeter interface {
	Observe(int64)
}

type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// CountVecMeter is a labelled counter which only goes up.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeVecMeter is a labelled value which is overwritten on every report.
type GaugeVecMeter interface {
	SetWithLabel(int64, map[string]string)
}

// LazyLoad defers creating a meter until first use, so package level meters
// bind to whichever implementation is installed at that point.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadHistogram(name string, buckets []int64) func() HistogramMeter {
	return LazyLoad(func() HistogramMeter {
		return metrics.GetOrCreateHistogramMeter(name, buckets)
	})
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter {
		return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets)
	})
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter {
		return metrics.GetOrCreateCountVecMeter(name, labels)
	})
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter {
		return metrics.GetOrCreateGaugeVecMeter(name, labels)
	})
}
