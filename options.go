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

import "hash/maphash"

// option provides an interface to do work on Map while it is being created.
type option[K comparable, V any] interface {
	apply(m *Map[K, V])
}

type hashOption[K comparable, V any] struct {
	hash func(seed maphash.Seed, key K) uint64
}

func (op hashOption[K, V]) apply(m *Map[K, V]) {
	m.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a Map[K,V].
// The function is handed the map's seed; implementations are expected to
// mix it in (see hash/maphash), though a degenerate hash that ignores it is
// legal and merely slow.
func WithHash[K comparable, V any](hash func(seed maphash.Seed, key K) uint64) option[K, V] {
	return hashOption[K, V]{hash}
}

// Allocator specifies an interface for obtaining and releasing bucket
// storage used by a Map. The default allocator utilizes Go's builtin make()
// and allows the GC to reclaim memory.
type Allocator[K comparable, V any] interface {
	// AllocBuckets should return a slice equivalent to
	// make([][]Entry[K,V], n).
	AllocBuckets(n int) [][]Entry[K, V]

	// FreeBuckets can optionally release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocBuckets.
	FreeBuckets(v [][]Entry[K, V])
}

type defaultAllocator[K comparable, V any] struct{}

func (defaultAllocator[K, V]) AllocBuckets(n int) [][]Entry[K, V] {
	return make([][]Entry[K, V], n)
}

func (defaultAllocator[K, V]) FreeBuckets(v [][]Entry[K, V]) {
}

type allocatorOption[K comparable, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(m *Map[K, V]) {
	m.allocator = op.allocator
}

// WithAllocator is an option for specifying the Allocator to use for a
// Map[K,V].
func WithAllocator[K comparable, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
