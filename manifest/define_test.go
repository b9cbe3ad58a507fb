package manifest_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/lazyrec/manifest"
	"github.com/arthur-debert/lazyrec/testutil"
)

func TestApplyAndDefine(t *testing.T) {
	st := testutil.NewStore(t)
	ctx := context.Background()

	f, err := manifest.Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if err := f.Apply(ctx, st); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	models, err := f.Define(st)
	if err != nil {
		t.Fatalf("failed to define models: %v", err)
	}

	reports := models["reports"]
	if reports == nil {
		t.Fatalf("expected reports model")
	}
	deferred, err := reports.DeferredFields()
	if err != nil {
		t.Fatalf("failed to resolve deferred fields: %v", err)
	}
	if diff := cmp.Diff([]string{"body", "attachment"}, deferred); diff != "" {
		t.Errorf("inferred deferred mismatch (-want +got):\n%s", diff)
	}

	audit := models["audit_reports"]
	if audit == nil {
		t.Fatalf("expected audit_reports model")
	}
	if audit.Parent() != reports {
		t.Errorf("expected audit_reports to derive from reports")
	}
	if audit.Table() != "reports" {
		t.Errorf("expected audit_reports to share the parent table, got %q", audit.Table())
	}
	auditDeferred, err := audit.DeferredFields()
	if err != nil {
		t.Fatalf("failed to resolve deferred fields: %v", err)
	}
	if diff := cmp.Diff([]string{"body"}, auditDeferred); diff != "" {
		t.Errorf("declared deferred mismatch (-want +got):\n%s", diff)
	}

	// The defined models are live against the applied schema.
	rec, err := reports.InsertContext(ctx, map[string]any{
		"title": "Manifest Roundtrip",
		"body":  "stored lazily",
	})
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	key, err := rec.Key()
	if err != nil {
		t.Fatalf("failed to read key: %v", err)
	}
	fetched, err := audit.FindContext(ctx, key)
	if err != nil {
		t.Fatalf("failed to find through derived model: %v", err)
	}
	body, err := fetched.GetContext(ctx, "body")
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if body != "stored lazily" {
		t.Errorf("unexpected body: %v", body)
	}
}
