// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU a typed LRU cache extends golang-lru.
type LRU[K comparable, V any] struct {
	cache     *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	cache, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{cache: cache}, nil
}

// Loader defines loader to load value.
type Loader[K comparable, V any] func(key K) (V, error)

// Get looks up a key's value from the cache.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	if v, ok := l.cache.Get(key); ok {
		return v.(V), true
	}
	var zero V
	return zero, false
}

// Add adds a value to the cache, evicting the oldest entry when full.
func (l *LRU[K, V]) Add(key K, value V) {
	l.cache.Add(key, value)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.cache.Len()
}

// GetOrLoad first try to get from cache, do load if missed.
// Failed loads are not cached. The returned bool reports a cache hit.
func (l *LRU[K, V]) GetOrLoad(key K, loader Loader[K, V]) (V, bool, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, true, nil
	}
	l.miss.Add(1)
	v, err := loader(key)
	if err != nil {
		var zero V
		return zero, false, err
	}

	l.Add(key, v)
	return v, false, nil
}

// Stats returns the number of hits and misses recorded by GetOrLoad.
func (l *LRU[K, V]) Stats() (hit int64, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
