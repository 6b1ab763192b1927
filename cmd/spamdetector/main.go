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

// spamdetector classifies a message file as SPAM or NOT_SPAM by summing the
// scores of database sequences found in the message and comparing the total
// against a threshold.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aviadud/chainmap/internal/database"
	"github.com/aviadud/chainmap/internal/scorer"
)

var rootCmd = &cobra.Command{
	Use:   "spamdetector <database> <message> <threshold>",
	Short: "Classify a message against a scored sequence database",
	Long: "Loads sequence,score records from the database file, sums the scores of\n" +
		"all (case-insensitive, overlapping) occurrences in the message file, and\n" +
		"prints SPAM if the total reaches the threshold, NOT_SPAM otherwise.",
	Args:          cobra.ExactArgs(3),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func run(cmd *cobra.Command, args []string) error {
	threshold, err := strconv.ParseFloat(args[2], 64)
	if err != nil || threshold <= 0 {
		return fmt.Errorf("invalid threshold %q", args[2])
	}

	dbFile, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer dbFile.Close()

	db, err := database.Load(dbFile)
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}

	message, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), classify(scorer.Score(message, db), threshold))
	return nil
}

// classify maps a score and threshold to the printed verdict.
func classify(score int, threshold float64) string {
	if float64(score) >= threshold {
		return "SPAM"
	}
	return "NOT_SPAM"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
