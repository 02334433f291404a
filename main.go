// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Tally.
//
// Usage:
//
//	go run . [flags]
//	./tally [flags]
//
// This launches the Tally CLI. See --help for options.
package main

import (
	"os"

	"github.com/toeirei/tally/internal/logging"
	"github.com/toeirei/tally/ui/cli"
)

// main is the entrypoint for the Tally CLI.
func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}
