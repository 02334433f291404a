// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "tally_test.db")
	s, err := NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAndGetEntries(t *testing.T) {
	s := newTestStore(t)

	id1, err := s.AddEntry("2 + 3", "5")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	id2, err := s.AddEntry("10 / 4", "2.5")
	if err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if id2 <= id1 {
		t.Errorf("ids should increase: %d then %d", id1, id2)
	}

	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Expression != "10 / 4" || entries[0].Result != "2.5" {
		t.Errorf("entries[0] = %s, want the newest entry", entries[0])
	}
	if entries[0].String() != "10 / 4 = 2.5" {
		t.Errorf("String() = %q", entries[0].String())
	}
	if entries[1].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestGetRecentEntriesLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		if _, err := s.AddEntry("1 + 1", "2"); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}
	entries, err := s.GetRecentEntries(3)
	if err != nil {
		t.Fatalf("GetRecentEntries: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}
}

func TestClearEntries(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 4; i++ {
		if _, err := s.AddEntry("2 x 2", "4"); err != nil {
			t.Fatalf("AddEntry: %v", err)
		}
	}
	n, err := s.ClearEntries()
	if err != nil {
		t.Fatalf("ClearEntries: %v", err)
	}
	if n != 4 {
		t.Errorf("ClearEntries removed %d rows, want 4", n)
	}
	entries, err := s.GetAllEntries()
	if err != nil {
		t.Fatalf("GetAllEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("history should be empty, got %d entries", len(entries))
	}
}

func TestUnsupportedDatabaseType(t *testing.T) {
	if _, err := NewStoreFromDSN("oracle", "whatever"); err == nil {
		t.Fatal("unsupported type should fail")
	}
}

func TestPackageHelpersRequireInit(t *testing.T) {
	if store != nil {
		t.Fatal("test assumes a fresh package state")
	}
	if _, err := AddEntry("1", "1"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("AddEntry: got %v, want ErrNotInitialized", err)
	}
	if _, err := GetAllEntries(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("GetAllEntries: got %v, want ErrNotInitialized", err)
	}
	if _, err := ClearEntries(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("ClearEntries: got %v, want ErrNotInitialized", err)
	}
}

func TestInitDBAndClose(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "tally_init.db")
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = Close() }()

	if !IsInitialized() {
		t.Fatal("IsInitialized should be true after InitDB")
	}
	if _, err := AddEntry("7 - 2", "5"); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	entries, err := GetRecentEntries(1)
	if err != nil {
		t.Fatalf("GetRecentEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Result != "5" {
		t.Errorf("unexpected entries: %v", entries)
	}

	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if IsInitialized() {
		t.Error("IsInitialized should be false after Close")
	}
}
