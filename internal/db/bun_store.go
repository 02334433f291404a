// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

// Bun-backed Store implementation shared by all three supported backends;
// only the dialect differs between them.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/tally/internal/logging"
	"github.com/toeirei/tally/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// EntryModel maps the `entries` table for Bun queries.
type EntryModel struct {
	bun.BaseModel `bun:"table:entries"`
	ID            int64     `bun:"id,pk,autoincrement"`
	Expression    string    `bun:"expression,notnull"`
	Result        string    `bun:"result,notnull"`
	CreatedAt     time.Time `bun:"created_at,notnull"`
}

// bunStore is the Store implementation backing every supported database.
type bunStore struct {
	bun *bun.DB
}

// NewStoreFromDSN opens the database for the given type and DSN, wraps it
// in a bun.DB with the matching dialect, ensures the schema exists, and
// returns a ready Store.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName(dbType), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var bdb *bun.DB
	switch dbType {
	case "sqlite":
		bdb = bun.NewDB(sqlDB, sqlitedialect.New())
	case "postgres":
		bdb = bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		bdb = bun.NewDB(sqlDB, mysqldialect.New())
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	// The history schema is a single table; create it in place instead of
	// carrying versioned migrations.
	ctx := context.Background()
	if _, err := bdb.NewCreateTable().Model((*EntryModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = bdb.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	logging.Debugf("db: opened %s history store in %s", dbType, time.Since(start))
	return &bunStore{bun: bdb}, nil
}

// AddEntry records one confirmed calculation.
func (s *bunStore) AddEntry(expression, result string) (int64, error) {
	ctx := context.Background()
	m := &EntryModel{
		Expression: expression,
		Result:     result,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.bun.NewInsert().Model(m).Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record history entry: %w", err)
	}
	return m.ID, nil
}

// GetAllEntries returns the full history, newest first.
func (s *bunStore) GetAllEntries() ([]model.Entry, error) {
	return s.entries(0)
}

// GetRecentEntries returns up to limit entries, newest first.
func (s *bunStore) GetRecentEntries(limit int) ([]model.Entry, error) {
	return s.entries(limit)
}

func (s *bunStore) entries(limit int) ([]model.Entry, error) {
	ctx := context.Background()
	var rows []EntryModel
	q := s.bun.NewSelect().Model(&rows).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	entries := make([]model.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, model.Entry{
			ID:         r.ID,
			Expression: r.Expression,
			Result:     r.Result,
			CreatedAt:  r.CreatedAt,
		})
	}
	return entries, nil
}

// ClearEntries deletes the whole history and reports the number of rows
// removed. Bun requires a WHERE clause on deletes; TRUE keeps it a full
// wipe without using raw SQL.
func (s *bunStore) ClearEntries() (int64, error) {
	ctx := context.Background()
	res, err := s.bun.NewDelete().Model((*EntryModel)(nil)).Where("TRUE").Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the underlying database handle.
func (s *bunStore) Close() error {
	return s.bun.Close()
}
