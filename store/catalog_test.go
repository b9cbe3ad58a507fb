package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/lazyrec/types"
)

func TestColumns(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	const ddl = `CREATE TABLE cases (
		id TEXT PRIMARY KEY,
		label VARCHAR(60) NOT NULL,
		weight REAL,
		open BOOLEAN NOT NULL DEFAULT 1,
		opened_on DATETIME,
		details TEXT,
		evidence BLOB,
		misc
	)`
	if _, err := st.ExecContext(ctx, ddl); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}

	cols, err := st.Columns(ctx, "cases")
	if err != nil {
		t.Fatalf("failed to read columns: %v", err)
	}

	names := types.ColumnNames(cols)
	wantNames := []string{"id", "label", "weight", "open", "opened_on", "details", "evidence", "misc"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("column order mismatch (-want +got):\n%s", diff)
	}

	wantKinds := []types.ColumnKind{
		types.KindText,
		types.KindString,
		types.KindFloat,
		types.KindBoolean,
		types.KindDatetime,
		types.KindText,
		types.KindBlob,
		types.KindBlob,
	}
	for i, c := range cols {
		if c.Kind != wantKinds[i] {
			t.Errorf("column %s: kind = %s, want %s", c.Name, c.Kind, wantKinds[i])
		}
	}

	if !cols[0].PrimaryKey {
		t.Errorf("expected id to be the primary key")
	}
	if !cols[1].NotNull {
		t.Errorf("expected label to be NOT NULL")
	}
	if cols[3].Default != "1" {
		t.Errorf("expected open default 1, got %q", cols[3].Default)
	}
	if cols[7].Declared != "" {
		t.Errorf("expected misc to be typeless, got %q", cols[7].Declared)
	}
}

func TestColumnsUnknownTable(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	_, err := st.Columns(ctx, "never_created")
	if err == nil {
		t.Fatalf("expected error for unknown table")
	}
	if !strings.Contains(err.Error(), "no such table") {
		t.Errorf("unexpected error: %v", err)
	}
}
