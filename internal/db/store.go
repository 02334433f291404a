// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/toeirei/tally/internal/model"
)

// Store defines the interface for the calculation-history storage. It
// allows multiple database backends to be implemented.
type Store interface {
	// AddEntry records one confirmed calculation and returns its ID.
	AddEntry(expression, result string) (int64, error)
	// GetAllEntries returns the full history, newest first.
	GetAllEntries() ([]model.Entry, error)
	// GetRecentEntries returns up to limit entries, newest first.
	GetRecentEntries(limit int) ([]model.Entry, error)
	// ClearEntries deletes the history and reports how many entries went.
	ClearEntries() (int64, error)
	// Close releases the underlying database handle.
	Close() error
}
