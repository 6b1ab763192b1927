// Copyright 2025 The Chainmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainmap

import (
	"hash/maphash"
	"testing"

	"github.com/stretchr/testify/require"
)

type countingAllocator[K comparable, V any] struct {
	alloc int
	free  int
}

func (a *countingAllocator[K, V]) AllocBuckets(n int) [][]Entry[K, V] {
	a.alloc++
	return make([][]Entry[K, V], n)
}

func (a *countingAllocator[K, V]) FreeBuckets(_ [][]Entry[K, V]) {
	a.free++
}

func TestAllocator(t *testing.T) {
	a := &countingAllocator[int, int]{}
	m := New[int, int](WithAllocator[int, int](a))
	require.Equal(t, 1, a.alloc)
	require.Equal(t, 0, a.free)

	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}

	// 16 -> 32 -> 64 -> 128 -> 256: one rehash per doubling, each freeing
	// the storage it replaced.
	const expected = 5
	require.Equal(t, expected, a.alloc)
	require.Equal(t, expected-1, a.free)

	// A shrink allocates and frees through the same interface.
	m.Clear()
	m.Insert(0, 0)
	m.Delete(0)
	require.Equal(t, expected+1, a.alloc)
	require.Equal(t, expected, a.free)
}

func TestWithHash(t *testing.T) {
	// A custom hash observes the map's seed and every key routed through
	// it.
	var calls int
	m := New[string, int](WithHash[string, int](
		func(seed maphash.Seed, key string) uint64 {
			calls++
			return maphash.String(seed, key)
		}))

	m.Insert("a", 1)
	m.Insert("b", 2)
	require.True(t, m.Contains("a"))
	require.Positive(t, calls)

	v, ok := m.Get("b")
	require.True(t, ok)
	require.Equal(t, 2, v)
}
