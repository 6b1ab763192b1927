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

// Package scorer computes the spam score of a message against a loaded
// score database.
package scorer

import (
	"bytes"

	"github.com/aviadud/chainmap/internal/database"
)

// Score scans message for every sequence in db and returns the sum of the
// scores of all occurrences. The scan is brute force: for every distinct
// sequence length L the message is swept with a window of width L, one byte
// at a time, so overlapping and repeated matches all count. Matching is
// case-insensitive; the message is lowercased the same way the database
// sequences were.
func Score(message []byte, db *database.DB) int {
	var total int
	lower := bytes.ToLower(message)
	for _, n := range db.Lengths {
		if n > len(lower) {
			// Lengths is sorted; no longer sequence can fit either.
			break
		}
		for i := 0; i+n <= len(lower); i++ {
			if v, ok := db.Scores.Get(string(lower[i : i+n])); ok {
				total += v
			}
		}
	}
	return total
}
