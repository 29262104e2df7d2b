// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoes(t *testing.T) {
	var (
		goes Goes
		n    atomic.Int32
	)
	for range 10 {
		goes.Go(func() { n.Add(1) })
	}

	select {
	case <-goes.Done():
	case <-time.After(time.Second):
		t.Fatal("goes not done")
	}
	assert.Equal(t, int32(10), n.Load())
}

func TestParallel(t *testing.T) {
	var running, peak, done atomic.Int32
	Parallel(2, func(enqueue Enqueue) {
		for range 8 {
			enqueue(func() {
				cur := running.Add(1)
				for {
					p := peak.Load()
					if cur <= p || peak.CompareAndSwap(p, cur) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				done.Add(1)
			})
		}
	})
	assert.Equal(t, int32(8), done.Load())
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestParallelDefaultLimit(t *testing.T) {
	var n atomic.Int32
	Parallel(0, func(enqueue Enqueue) {
		for range 5 {
			enqueue(func() { n.Add(1) })
		}
	})
	assert.Equal(t, int32(5), n.Load())
}
