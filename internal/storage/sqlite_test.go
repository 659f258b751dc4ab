package storage

import (
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("new sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteMigration(t *testing.T) {
	s := newTestSQLite(t)

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}

	// Running migrate again should be a no-op.
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestSQLiteGetAbsent(t *testing.T) {
	s := newTestSQLite(t)

	value, ok, err := s.Get("TYDLIG_TID_STATE")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("expected absent key, got %q", value)
	}
}

func TestSQLiteSetGet(t *testing.T) {
	s := newTestSQLite(t)

	if err := s.Set("k", `{"activities":[]}`); err != nil {
		t.Fatal(err)
	}
	value, ok, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != `{"activities":[]}` {
		t.Fatalf("got %q ok=%v", value, ok)
	}
}

func TestSQLiteSetOverwrites(t *testing.T) {
	s := newTestSQLite(t)

	s.Set("k", "first")
	if err := s.Set("k", "second"); err != nil {
		t.Fatal(err)
	}
	value, _, _ := s.Get("k")
	if value != "second" {
		t.Fatalf("expected overwrite, got %q", value)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "tydlig.db")

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "kept"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	value, ok, err := s2.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || value != "kept" {
		t.Fatalf("got %q ok=%v after reopen", value, ok)
	}
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemory()

	if _, ok, _ := m.Get("missing"); ok {
		t.Fatal("expected absent key")
	}
	m.Set("k", "v")
	value, ok, _ := m.Get("k")
	if !ok || value != "v" {
		t.Fatalf("got %q ok=%v", value, ok)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}
