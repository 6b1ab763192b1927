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

// Package database loads a spam-sequence score database: a line-oriented
// text format where each line is "sequence,score". Sequences are
// case-normalized to lower case on load; scores are non-negative integers.
package database

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aviadud/chainmap"
)

// ErrInvalidInput reports a malformed database line.
var ErrInvalidInput = errors.New("invalid input")

// validLine is the record shape: a non-empty sequence without commas,
// a comma, and a decimal score.
var validLine = regexp.MustCompile(`^[^,]+,[0-9]+$`)

// DB is a loaded score database.
type DB struct {
	// Scores maps a lowercased sequence to its spam score.
	Scores *chainmap.Map[string, int]
	// Lengths is the sorted set of distinct sequence lengths, in bytes.
	// The scorer scans the message once per length.
	Lengths []int
}

// Load reads sequence,score records from r. Later records for the same
// sequence overwrite earlier ones. A terminating newline is allowed; any
// other malformed line fails with an error wrapping ErrInvalidInput.
func Load(r io.Reader) (*DB, error) {
	scores := chainmap.New[string, int]()
	lengths := chainmap.New[int, struct{}]()

	sc := bufio.NewScanner(r)
	for lineno := 1; sc.Scan(); lineno++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if !validLine.MatchString(line) {
			return nil, fmt.Errorf("%w: line %d", ErrInvalidInput, lineno)
		}
		comma := strings.IndexByte(line, ',')
		sequence := strings.ToLower(line[:comma])
		score, err := strconv.Atoi(line[comma+1:])
		if err != nil || score < 0 {
			return nil, fmt.Errorf("%w: line %d: bad score %q", ErrInvalidInput, lineno, line[comma+1:])
		}
		*scores.Index(sequence) = score
		lengths.Insert(len(sequence), struct{}{})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	db := &DB{Scores: scores}
	lengths.All(func(n int, _ struct{}) bool {
		db.Lengths = append(db.Lengths, n)
		return true
	})
	sort.Ints(db.Lengths)
	return db, nil
}
