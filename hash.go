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

// hashFn is the hashing capability required of a key type: a seeded,
// uniformly distributed hash such that equal keys hash equally under the
// same seed. The default for any comparable K is maphash.Comparable, which
// matches the quality of the hash used by Go's builtin map.
type hashFn[K comparable] func(seed maphash.Seed, key K) uint64
