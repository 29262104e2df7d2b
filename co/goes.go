// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co manages goroutine life cycles.
package co

import (
	"runtime"
	"sync"
)

// Goes to run and manage life-cycle of go routines.
type Goes struct {
	wg sync.WaitGroup
}

// Go run f in go routine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait wait for all go routines started by 'Go' done.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done return the done channel for exiting of all go routines.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}

// Enqueue function to enqueue parallel works.
type Enqueue func(work func())

// Parallel runs the works enqueued by cb on at most limit go routines, and
// returns once all of them are done. A non-positive limit means NumCPU.
func Parallel(limit int, cb func(Enqueue)) {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	ch := make(chan func())

	var goes Goes
	for range limit {
		goes.Go(func() {
			for work := range ch {
				work()
			}
		})
	}
	cb(func(work func()) { ch <- work })
	close(ch)
	goes.Wait()
}
