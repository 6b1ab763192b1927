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

// Package chainmap is a generic hash table that resolves collisions by
// separate chaining and resizes itself in both directions based on
// configurable load factor bounds.
//
// # Layout
//
// A Map[K,V] owns a slice of buckets whose length (the capacity) is always a
// power of two, starting at 16. Each bucket is an insertion-ordered slice of
// entries. An entry for key k lives in bucket hash(k) & (capacity-1). At
// most one entry per key exists in the whole table.
//
// # Resizing
//
// The table maintains size/capacity within [lower, upper] (defaults 0.25 and
// 0.75). After an insertion pushes the load factor above the upper bound the
// capacity is doubled repeatedly until the bound is satisfied and every
// entry is rehashed once into the final capacity. After a deletion drops the
// load factor below the lower bound the capacity is halved exactly once and
// the entries rehashed; a single deletion never shrinks by more than one
// halving even if the load factor remains below the bound, and the capacity
// never drops below 1. Rehashing is the only O(size) mutation; everything
// else is amortized O(1) under the usual hashing assumptions.
//
// By default keys are hashed with hash/maphash using a per-map seed, so two
// maps over the same keys generally have different bucket layouts. A
// different hash function can be supplied with the WithHash option.
//
// A Map is NOT goroutine-safe, and failure to allocate bucket storage is
// fatal (the Go runtime aborts on out-of-memory); neither is trapped nor
// reported by this package.
package chainmap

import (
	"errors"
	"fmt"
	"hash/maphash"
	"strings"
)

const (
	// invariants gates the expensive self-checks performed after every
	// structural mutation. Enable when debugging the resize machinery.
	invariants = false

	initialCapacity = 16

	defaultLowerLoadFactor = 0.25
	defaultUpperLoadFactor = 0.75
)

// Errors reported by the fallible constructors and lookups.
var (
	// ErrKeyNotFound is returned by At and BucketSize when the key is not in
	// the map.
	ErrKeyNotFound = errors.New("chainmap: key not found")
	// ErrLoadFactorOrder is returned by NewWithLoadFactors when the lower
	// bound exceeds the upper bound.
	ErrLoadFactorOrder = errors.New("chainmap: lower load factor greater than upper load factor")
	// ErrLoadFactorRange is returned by NewWithLoadFactors when a bound lies
	// outside [0, 1].
	ErrLoadFactorRange = errors.New("chainmap: load factors must be between 0 and 1")
	// ErrLengthMismatch is returned by FromPairs when the key and value
	// slices differ in length.
	ErrLengthMismatch = errors.New("chainmap: keys and values differ in length")
)

// Entry holds a key and value within a bucket chain.
type Entry[K comparable, V any] struct {
	key   K
	value V
}

// Key returns the entry's key.
func (e Entry[K, V]) Key() K { return e.key }

// Value returns the entry's value.
func (e Entry[K, V]) Value() V { return e.value }

// Map is an unordered map from keys to values with Insert, Get, Delete and
// iteration operations. Collisions are handled by chaining and the bucket
// array grows and shrinks to keep the load factor within configured bounds.
//
// The zero value for a Map is not usable; construct one with New,
// NewWithLoadFactors or FromPairs.
//
// A Map is NOT goroutine-safe.
type Map[K comparable, V any] struct {
	// The hash function applied to keys of type K, seeded per map.
	hash hashFn[K]
	seed maphash.Seed
	// The allocator to use for bucket storage.
	allocator Allocator[K, V]
	// buckets is capacity in length; capacity is always a power of two so
	// that hash values can be reduced to a bucket index with a mask.
	buckets [][]Entry[K, V]
	// The number of entries across all buckets.
	size int
	// The load factor bounds driving shrink and growth.
	lower, upper float64
}

// New constructs an empty Map with capacity 16 and the default load factor
// bounds of 0.25 and 0.75.
func New[K comparable, V any](options ...option[K, V]) *Map[K, V] {
	m := &Map[K, V]{
		hash:      maphash.Comparable[K],
		seed:      maphash.MakeSeed(),
		allocator: defaultAllocator[K, V]{},
		lower:     defaultLowerLoadFactor,
		upper:     defaultUpperLoadFactor,
	}

	for _, op := range options {
		op.apply(m)
	}

	m.buckets = m.allocator.AllocBuckets(initialCapacity)
	m.checkInvariants()
	return m
}

// NewWithLoadFactors constructs an empty Map with the specified load factor
// bounds. It returns ErrLoadFactorOrder if upper < lower and
// ErrLoadFactorRange if lower < 0 or upper > 1.
func NewWithLoadFactors[K comparable, V any](
	lower, upper float64, options ...option[K, V],
) (*Map[K, V], error) {
	if upper < lower {
		return nil, ErrLoadFactorOrder
	}
	if lower < 0 || upper > 1 {
		return nil, ErrLoadFactorRange
	}
	m := New[K, V](options...)
	m.lower, m.upper = lower, upper
	return m, nil
}

// FromPairs constructs a Map from parallel key and value slices, inserting
// the pairs in order. If a key repeats, the later value overwrites the
// earlier one without counting twice toward the size. It returns
// ErrLengthMismatch if the slices differ in length.
func FromPairs[K comparable, V any](
	keys []K, values []V, options ...option[K, V],
) (*Map[K, V], error) {
	if len(keys) != len(values) {
		return nil, ErrLengthMismatch
	}
	m := New[K, V](options...)
	for i, k := range keys {
		if p := m.find(k); p != nil {
			*p = values[i]
			continue
		}
		m.add(k, values[i])
	}
	return m, nil
}

// Clone returns a deep copy of the map: same entries, size, load factor
// bounds, capacity, seed and hash function. Mutations of the clone do not
// affect the original and vice versa.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		hash:      m.hash,
		seed:      m.seed,
		allocator: m.allocator,
		size:      m.size,
		lower:     m.lower,
		upper:     m.upper,
	}
	c.buckets = c.allocator.AllocBuckets(len(m.buckets))
	for i, b := range m.buckets {
		if len(b) == 0 {
			continue
		}
		c.buckets[i] = append(make([]Entry[K, V], 0, len(b)), b...)
	}
	c.checkInvariants()
	return c
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Cap returns the number of buckets.
func (m *Map[K, V]) Cap() int {
	return len(m.buckets)
}

// LoadFactor returns size divided by capacity.
func (m *Map[K, V]) LoadFactor() float64 {
	return float64(m.size) / float64(len(m.buckets))
}

// Empty reports whether the map contains no entries.
func (m *Map[K, V]) Empty() bool {
	return m.size == 0
}

// Contains reports whether the map contains an entry for key.
func (m *Map[K, V]) Contains(key K) bool {
	return m.find(key) != nil
}

// Get retrieves the value for the specified key, returning ok=false if the
// key is not present.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if p := m.find(key); p != nil {
		return *p, true
	}
	return value, false
}

// At returns a pointer to the value stored for key, through which the value
// can be read or updated in place. It returns ErrKeyNotFound if the key is
// absent. The pointer is invalidated by any structural mutation of the map.
func (m *Map[K, V]) At(key K) (*V, error) {
	if p := m.find(key); p != nil {
		return p, nil
	}
	return nil, ErrKeyNotFound
}

// BucketSize returns the length of the chain in the bucket that key hashes
// to. It returns ErrKeyNotFound if key itself is not in the map, rather
// than reporting the occupancy of the bucket a non-member key would hash
// to.
func (m *Map[K, V]) BucketSize(key K) (int, error) {
	if m.find(key) == nil {
		return 0, ErrKeyNotFound
	}
	return len(m.buckets[m.bucketIndex(key, len(m.buckets))]), nil
}

// Insert adds an entry to the map. If an entry with the same key already
// exists the map is unchanged and Insert returns false.
func (m *Map[K, V]) Insert(key K, value V) bool {
	if m.find(key) != nil {
		return false
	}
	m.add(key, value)
	return true
}

// Index returns a pointer to the value stored for key, inserting an entry
// with the zero value first if the key is absent. The returned pointer is
// resolved after any growth triggered by the insertion, so it is valid
// until the next structural mutation.
func (m *Map[K, V]) Index(key K) *V {
	if p := m.find(key); p != nil {
		return p
	}
	var zero V
	m.add(key, zero)
	return m.find(key)
}

// Delete removes the entry for key, returning false if no such entry
// exists. Order of the surviving entries within the bucket is preserved.
func (m *Map[K, V]) Delete(key K) bool {
	i := m.bucketIndex(key, len(m.buckets))
	b := m.buckets[i]
	for j := range b {
		if b[j].key != key {
			continue
		}
		m.buckets[i] = append(b[:j], b[j+1:]...)
		m.size--
		m.maybeShrink()
		m.checkInvariants()
		return true
	}
	return false
}

// Clear removes every entry. The capacity is unchanged.
func (m *Map[K, V]) Clear() {
	for i := range m.buckets {
		m.buckets[i] = nil
	}
	m.size = 0
	m.checkInvariants()
}

// Equal reports whether two maps hold the same entries under the same load
// factor bounds and capacity. Iteration order is irrelevant. It is a free
// function rather than a method so that V can be constrained comparable
// while Map itself permits any value type.
func Equal[K, V comparable](a, b *Map[K, V]) bool {
	if a.size != b.size || a.lower != b.lower || a.upper != b.upper ||
		len(a.buckets) != len(b.buckets) {
		return false
	}
	for _, bucket := range b.buckets {
		for _, e := range bucket {
			p := a.find(e.key)
			if p == nil || *p != e.value {
				return false
			}
		}
	}
	return true
}

// bucketIndex reduces hash(key) to a bucket index for the given capacity.
// Capacity must be a power of two.
func (m *Map[K, V]) bucketIndex(key K, capacity int) int {
	return int(m.hash(m.seed, key) & uint64(capacity-1))
}

// find returns a pointer to the value stored for key, or nil.
func (m *Map[K, V]) find(key K) *V {
	b := m.buckets[m.bucketIndex(key, len(m.buckets))]
	for i := range b {
		if b[i].key == key {
			return &b[i].value
		}
	}
	return nil
}

// add appends an entry known not to be in the table to its bucket and
// applies the growth policy.
func (m *Map[K, V]) add(key K, value V) {
	i := m.bucketIndex(key, len(m.buckets))
	m.buckets[i] = append(m.buckets[i], Entry[K, V]{key: key, value: value})
	m.size++
	m.maybeGrow()
	m.checkInvariants()
}

// maybeGrow doubles the capacity until the load factor drops to the upper
// bound, rehashing once into the final capacity.
func (m *Map[K, V]) maybeGrow() {
	if m.LoadFactor() <= m.upper {
		return
	}
	newCapacity := len(m.buckets)
	for float64(m.size)/float64(newCapacity) > m.upper {
		newCapacity *= 2
	}
	m.rehash(newCapacity)
}

// maybeShrink halves the capacity exactly once if the load factor has
// dropped below the lower bound. The capacity floors at 1.
func (m *Map[K, V]) maybeShrink() {
	if m.LoadFactor() >= m.lower || len(m.buckets) == 1 {
		return
	}
	m.rehash(len(m.buckets) / 2)
}

// rehash redistributes every entry into freshly allocated bucket storage of
// the target capacity and releases the old storage to the allocator.
func (m *Map[K, V]) rehash(newCapacity int) {
	old := m.buckets
	m.buckets = m.allocator.AllocBuckets(newCapacity)
	for _, b := range old {
		for _, e := range b {
			i := m.bucketIndex(e.key, newCapacity)
			m.buckets[i] = append(m.buckets[i], e)
		}
	}
	m.allocator.FreeBuckets(old)
}

func (m *Map[K, V]) checkInvariants() {
	if invariants {
		if c := len(m.buckets); c < 1 || c&(c-1) != 0 {
			panic(fmt.Sprintf("invariant failed: capacity %d is not a power of two\n%s",
				c, m.debugString()))
		}
		var size int
		for i, b := range m.buckets {
			for _, e := range b {
				if j := m.bucketIndex(e.key, len(m.buckets)); j != i {
					panic(fmt.Sprintf("invariant failed: %v in bucket %d, hashes to %d\n%s",
						e.key, i, j, m.debugString()))
				}
				if m.find(e.key) == nil {
					panic(fmt.Sprintf("invariant failed: %v not found\n%s",
						e.key, m.debugString()))
				}
				size++
			}
		}
		if size != m.size {
			panic(fmt.Sprintf("invariant failed: found %d entries, but size is %d\n%s",
				size, m.size, m.debugString()))
		}
	}
}

func (m *Map[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  size=%d  bounds=[%v,%v]\n",
		len(m.buckets), m.size, m.lower, m.upper)
	for i, b := range m.buckets {
		if len(b) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for _, e := range b {
			fmt.Fprintf(&buf, " %v=%v", e.key, e.value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
