// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db provides the calculation-history data access layer for Tally.
// It abstracts the underlying database (SQLite, PostgreSQL or MySQL)
// behind a small Store interface so the rest of the application records
// and reads history in a uniform way.
package db // import "github.com/toeirei/tally/internal/db"

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/toeirei/tally/internal/model"

	// SQL drivers required at runtime and for integration tests.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// store is the package-level Store set by InitDB.
	store Store
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// ErrNotInitialized is returned by the package-level helpers before InitDB
// has set up a store.
var ErrNotInitialized = errors.New("history store not initialized")

// InitDB initializes the history database connection based on the provided
// type and DSN, sets the package-level store and creates the schema when it
// does not exist yet.
func InitDB(dbType, dsn string) error {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	store = s
	return nil
}

// IsInitialized reports whether the package-level store has been set.
func IsInitialized() bool {
	return store != nil
}

// Close closes the package-level store if one is set.
func Close() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

// driverName maps a configured database type onto the registered SQL
// driver name. The pgx stdlib driver registers as "pgx".
func driverName(dbType string) string {
	if dbType == "postgres" {
		return "pgx"
	}
	return dbType
}

// AddEntry records a calculation via the package-level store.
func AddEntry(expression, result string) (int64, error) {
	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.AddEntry(expression, result)
}

// GetAllEntries returns the full history via the package-level store.
func GetAllEntries() ([]model.Entry, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetAllEntries()
}

// GetRecentEntries returns the newest entries via the package-level store.
func GetRecentEntries(limit int) ([]model.Entry, error) {
	if store == nil {
		return nil, ErrNotInitialized
	}
	return store.GetRecentEntries(limit)
}

// ClearEntries wipes the history via the package-level store.
func ClearEntries() (int64, error) {
	if store == nil {
		return 0, ErrNotInitialized
	}
	return store.ClearEntries()
}
