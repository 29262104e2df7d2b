// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)
}

func TestGetOrLoad(t *testing.T) {
	c, err := NewLRU[string, uint64](2)
	require.NoError(t, err)

	loads := 0
	loader := func(key string) (uint64, error) {
		loads++
		return uint64(len(key)), nil
	}

	v, hit, err := c.GetOrLoad("abc", loader)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, uint64(3), v)

	v, hit, err = c.GetOrLoad("abc", loader)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, uint64(3), v)
	assert.Equal(t, 1, loads)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestGetOrLoadErrorNotCached(t *testing.T) {
	c, err := NewLRU[int, int](4)
	require.NoError(t, err)

	_, _, err = c.GetOrLoad(1, func(int) (int, error) { return 0, errors.New("boom") })
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 0, c.Len())

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestEviction(t *testing.T) {
	c, err := NewLRU[int, string](2)
	require.NoError(t, err)

	c.Add(1, "a")
	c.Add(2, "b")
	c.Get(1)
	c.Add(3, "c")

	_, ok := c.Get(2)
	assert.False(t, ok, "least recently used entry evicted")
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 2, c.Len())
}
