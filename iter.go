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

// Iteration visits entries in bucket order and in insertion order within a
// bucket, skipping empty buckets. The order is otherwise unspecified and in
// particular varies between maps because of the per-map hash seed.
//
// Any structural mutation of the map (an insert that grows it, a delete
// that shrinks it, Clear) invalidates outstanding cursors; advancing or
// dereferencing an invalidated cursor has unspecified results.

// All calls yield sequentially for each key and value present in the map.
// If yield returns false, iteration stops. It is compatible with
// range-over-func:
//
//	for k, v := range m.All {
//		...
//	}
func (m *Map[K, V]) All(yield func(key K, value V) bool) {
	for _, b := range m.buckets {
		for i := range b {
			if !yield(b[i].key, b[i].value) {
				return
			}
		}
	}
}

// Cursor is a position within a map's iteration sequence: a bucket index
// and an offset within that bucket's chain, resolved against the map it was
// created from. A Cursor does not restart; request a fresh one from Begin.
type Cursor[K comparable, V any] struct {
	m      *Map[K, V]
	bucket int
	offset int
}

// Begin returns a cursor positioned at the first entry, or the end cursor
// if the map is empty.
func (m *Map[K, V]) Begin() Cursor[K, V] {
	c := Cursor[K, V]{m: m}
	c.skipEmpty()
	return c
}

// End returns the one-past-last cursor. It compares equal to any other end
// cursor of the same map, including cursors that reached the end by
// advancing.
func (m *Map[K, V]) End() Cursor[K, V] {
	return Cursor[K, V]{m: m, bucket: len(m.buckets)}
}

// Valid reports whether the cursor is positioned at an entry (i.e. is not
// an end cursor).
func (c Cursor[K, V]) Valid() bool {
	return c.bucket < len(c.m.buckets)
}

// Next returns a cursor advanced by one entry, moving to the next non-empty
// bucket when the current chain is exhausted. Advancing past the last entry
// of the last non-empty bucket yields the end cursor. Next must not be
// called on an end cursor.
func (c Cursor[K, V]) Next() Cursor[K, V] {
	c.offset++
	c.skipEmpty()
	return c
}

// Key returns the key at the cursor. The cursor must be valid.
func (c Cursor[K, V]) Key() K {
	return c.m.buckets[c.bucket][c.offset].key
}

// Value returns the value at the cursor. The cursor must be valid.
func (c Cursor[K, V]) Value() V {
	return c.m.buckets[c.bucket][c.offset].value
}

// Equal reports whether two cursors denote the same position in the same
// map. All end cursors of a map are equal regardless of how they were
// produced.
func (c Cursor[K, V]) Equal(o Cursor[K, V]) bool {
	if c.m != o.m {
		return false
	}
	if !c.Valid() && !o.Valid() {
		return true
	}
	return c.bucket == o.bucket && c.offset == o.offset
}

// skipEmpty moves the cursor forward to the next non-empty chain position,
// or to the end state.
func (c *Cursor[K, V]) skipEmpty() {
	for c.bucket < len(c.m.buckets) && c.offset >= len(c.m.buckets[c.bucket]) {
		c.bucket++
		c.offset = 0
	}
}
