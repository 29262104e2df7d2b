// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter  { return noop }
func (noopMetrics) GetOrCreateGaugeVecMeter(string, []string) GaugeVecMeter  { return noop }
func (noopMetrics) GetOrCreateHistogramMeter(string, []int64) HistogramMeter { return noop }

func (noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return noop
}

// GetOrCreateHandler answers 404 until prometheus is initialized.
func (noopMetrics) GetOrCreateHandler() http.Handler { return http.NotFoundHandler() }

var noop = noopMeter{}

type noopMeter struct{}

func (noopMeter) Observe(int64)                              {}
func (noopMeter) ObserveWithLabels(int64, map[string]string) {}
func (noopMeter) AddWithLabel(int64, map[string]string)      {}
func (noopMeter) SetWithLabel(int64, map[string]string)      {}
