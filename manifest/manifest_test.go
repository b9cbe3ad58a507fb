package manifest_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/lazyrec/manifest"
)

const sampleManifest = `
models:
  - name: reports
    primary_key: id
    columns:
      - name: id
        type: TEXT
        primary_key: true
      - name: title
        type: VARCHAR(120)
        not_null: true
      - name: status
        type: VARCHAR(16)
        default: draft
      - name: pages
        type: INTEGER
        default: "0"
      - name: body
        type: TEXT
      - name: attachment
        type: BLOB
  - name: audit_reports
    extends: reports
    deferred: [body]
`

func TestParseDefaults(t *testing.T) {
	f, err := manifest.Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}

	if f.Version != "1" {
		t.Errorf("expected version to default to 1, got %q", f.Version)
	}
	if len(f.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(f.Models))
	}
	if f.Models[0].Table != "reports" {
		t.Errorf("expected table to default to model name, got %q", f.Models[0].Table)
	}
	// Extending models resolve their table from the parent at define
	// time, not at parse time.
	if f.Models[1].Table != "" {
		t.Errorf("expected extending model to leave table empty, got %q", f.Models[1].Table)
	}
	if got := f.Model("audit_reports"); got == nil || got.Extends != "reports" {
		t.Errorf("unexpected lookup result: %+v", got)
	}
	if f.Model("ghosts") != nil {
		t.Errorf("expected nil for unknown model")
	}
}

func TestParseRejectsInvalidManifests(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no models",
			yaml:    `models: []`,
			wantErr: "declares no models",
		},
		{
			name: "duplicate model",
			yaml: `
models:
  - name: reports
  - name: reports
`,
			wantErr: "duplicate model name",
		},
		{
			name: "invalid model name",
			yaml: `
models:
  - name: 9reports
`,
			wantErr: "cannot start with a digit",
		},
		{
			name: "keyword column",
			yaml: `
models:
  - name: reports
    columns:
      - name: select
        type: TEXT
`,
			wantErr: "SQL keyword",
		},
		{
			name: "unknown parent",
			yaml: `
models:
  - name: audit_reports
    extends: ghosts
`,
			wantErr: "not declared earlier",
		},
		{
			name: "parent declared later",
			yaml: `
models:
  - name: audit_reports
    extends: reports
  - name: reports
`,
			wantErr: "not declared earlier",
		},
		{
			name: "two primary keys",
			yaml: `
models:
  - name: reports
    columns:
      - name: id
        type: TEXT
        primary_key: true
      - name: alt_id
        type: TEXT
        primary_key: true
`,
			wantErr: "primary key columns",
		},
		{
			name: "invalid deferred name",
			yaml: `
models:
  - name: reports
    deferred: ["bad name"]
`,
			wantErr: "invalid character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected parse to fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDDL(t *testing.T) {
	f, err := manifest.Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}

	stmts := f.DDL()
	want := []string{
		`CREATE TABLE IF NOT EXISTS "reports" (` +
			`"id" TEXT PRIMARY KEY, ` +
			`"title" VARCHAR(120) NOT NULL, ` +
			`"status" VARCHAR(16) DEFAULT 'draft', ` +
			`"pages" INTEGER DEFAULT 0, ` +
			`"body" TEXT, ` +
			`"attachment" BLOB)`,
	}
	if diff := cmp.Diff(want, stmts); diff != "" {
		t.Errorf("DDL mismatch (-want +got):\n%s", diff)
	}
}

func TestDDLQuotesStringDefaults(t *testing.T) {
	f, err := manifest.Parse([]byte(`
models:
  - name: quotes
    columns:
      - name: id
        type: TEXT
        primary_key: true
      - name: saying
        type: TEXT
        default: it's fine
`))
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	stmts := f.DDL()
	if len(stmts) != 1 || !strings.Contains(stmts[0], "DEFAULT 'it''s fine'") {
		t.Errorf("expected doubled quote in default, got %v", stmts)
	}
}
