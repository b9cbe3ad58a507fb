package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/lazyrec/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestOpenCreatesDatabase(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if _, err := os.Stat(st.Path()); err != nil {
		t.Fatalf("expected database file at %s: %v", st.Path(), err)
	}

	if _, err := st.ExecContext(ctx, "CREATE TABLE notes (id TEXT PRIMARY KEY, text TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := st.ExecContext(ctx, "INSERT INTO notes (id, text) VALUES (?, ?)", "n1", "hello"); err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	rows, err := st.QueryContext(ctx, "SELECT text FROM notes WHERE id = ?", "n1")
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		t.Fatalf("expected a row")
	}
	var text string
	if err := rows.Scan(&text); err != nil {
		t.Fatalf("failed to scan: %v", err)
	}
	if text != "hello" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestOpenInMemory(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	defer func() { _ = st.Close() }()

	if _, err := st.ExecContext(ctx, "CREATE TABLE t (x INTEGER)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
}

func TestQuoteIdent(t *testing.T) {
	st := openTestStore(t)

	if got := st.QuoteIdent("reports"); got != `"reports"` {
		t.Errorf("unexpected quoting: %s", got)
	}
	if got := st.QuoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("unexpected quoting of embedded quote: %s", got)
	}
}
