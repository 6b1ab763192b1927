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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	m := New[int, int]()
	e := make(map[int]int)
	for i := 0; i < 100; i++ {
		m.Insert(i, i*i)
		e[i] = i * i
	}

	vals := make(map[int]int)
	m.All(func(k, v int) bool {
		vals[k] = v
		return true
	})
	require.Equal(t, e, vals)

	// Early termination.
	var n int
	m.All(func(k, v int) bool {
		n++
		return n < 10
	})
	require.Equal(t, 10, n)

	// range-over-func form.
	vals = make(map[int]int)
	for k, v := range m.All {
		vals[k] = v
	}
	require.Equal(t, e, vals)
}

func TestCursor(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		m := New[int, int]()
		require.False(t, m.Begin().Valid())
		require.True(t, m.Begin().Equal(m.End()))
	})

	t.Run("walk", func(t *testing.T) {
		m := New[int, int]()
		e := make(map[int]int)
		for i := 0; i < 100; i++ {
			m.Insert(i, i)
			e[i] = i
		}

		vals := make(map[int]int)
		for c := m.Begin(); !c.Equal(m.End()); c = c.Next() {
			require.True(t, c.Valid())
			vals[c.Key()] = c.Value()
		}
		require.Equal(t, e, vals)
	})

	t.Run("matches-all-order", func(t *testing.T) {
		m := New[string, int]()
		for _, k := range []string{"a", "b", "c", "d", "e"} {
			m.Insert(k, len(k))
		}

		var fromAll []string
		m.All(func(k string, v int) bool {
			fromAll = append(fromAll, k)
			return true
		})

		var fromCursor []string
		for c := m.Begin(); c.Valid(); c = c.Next() {
			fromCursor = append(fromCursor, c.Key())
		}
		require.Equal(t, fromAll, fromCursor)
	})

	t.Run("chain-order", func(t *testing.T) {
		// Under a constant hash all entries share one bucket, so cursor
		// order is exactly insertion order.
		m := New[string, int](WithHash[string, int](constantHash[string](7)))
		keys := []string{"x", "q", "a", "m"}
		for i, k := range keys {
			m.Insert(k, i)
		}

		var got []string
		for c := m.Begin(); c.Valid(); c = c.Next() {
			got = append(got, c.Key())
		}
		require.Equal(t, keys, got)
	})

	t.Run("end-equality", func(t *testing.T) {
		m := New[int, int]()
		m.Insert(1, 1)

		// A cursor that reaches the end by advancing equals a freshly
		// constructed end cursor, and ends of distinct maps never
		// compare equal.
		c := m.Begin()
		require.True(t, c.Valid())
		c = c.Next()
		require.False(t, c.Valid())
		require.True(t, c.Equal(m.End()))
		require.True(t, m.End().Equal(c))

		other := New[int, int]()
		require.False(t, m.End().Equal(other.End()))
	})
}
