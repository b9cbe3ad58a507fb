// Package testutil provides the shared fixtures and assertion helpers
// the mapper tests build on: temp-dir stores, the standard reports
// schema, and a round-trip counting store wrapper.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/lazyrec/store"
)

// ReportsDDL is the schema shared across the mapper tests: a table mixing
// eager character columns with deferrable TEXT and BLOB ones.
const ReportsDDL = `CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	title VARCHAR(120) NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'draft',
	pages INTEGER NOT NULL DEFAULT 0,
	rating REAL,
	body TEXT,
	attachment BLOB
)`

// NewStore opens a store on a fresh database under t.TempDir and closes
// it when the test ends.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// Fixture bundles a store with the reports schema applied and two rows
// seeded.
type Fixture struct {
	Store *store.Store

	// Keys of the seeded rows.
	AuditKey string
	DraftKey string

	// Large values seeded for the audit row.
	AuditBody       string
	AuditAttachment []byte
}

// NewFixture builds the standard reports fixture: schema applied, one
// fully populated row and one row with NULL large fields.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	st := NewStore(t)
	ctx := context.Background()
	if err := st.ApplySchema(ctx, []string{ReportsDDL}); err != nil {
		t.Fatalf("failed to apply reports schema: %v", err)
	}

	f := &Fixture{
		Store:           st,
		AuditKey:        "report-audit",
		DraftKey:        "report-draft",
		AuditBody:       "Findings: the audit trail is complete and the ledger balances.",
		AuditAttachment: []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a},
	}

	const insert = `INSERT INTO reports (id, title, status, pages, rating, body, attachment)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	seeds := [][]any{
		{f.AuditKey, "Quarterly Audit", "final", 42, 4.5, f.AuditBody, f.AuditAttachment},
		{f.DraftKey, "Incident Draft", "draft", 3, nil, nil, nil},
	}
	for _, args := range seeds {
		if _, err := st.ExecContext(ctx, insert, args...); err != nil {
			t.Fatalf("failed to seed reports: %v", err)
		}
	}
	return f
}
