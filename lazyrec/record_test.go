package lazyrec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arthur-debert/lazyrec/lazyrec"
	"github.com/arthur-debert/lazyrec/testutil"
)

func TestGetPresentFields(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.Find(f.AuditKey)
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	title, err := rec.Get("title")
	if err != nil {
		t.Fatalf("failed to read title: %v", err)
	}
	if title != "Quarterly Audit" {
		t.Errorf("unexpected title: %v", title)
	}

	rating, err := rec.Get("rating")
	if err != nil {
		t.Fatalf("failed to read rating: %v", err)
	}
	if rating != 4.5 {
		t.Errorf("unexpected rating: %v", rating)
	}
}

func TestGetNullIsPresent(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.Find(f.DraftKey)
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	// A NULL column is present as nil, not absent.
	if !rec.Has("rating") {
		t.Fatalf("expected rating to be present")
	}
	rating, err := rec.Get("rating")
	if err != nil {
		t.Fatalf("failed to read rating: %v", err)
	}
	if rating != nil {
		t.Errorf("expected nil rating, got %v", rating)
	}
}

func TestGetMissingNonDeferred(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.FindSelect(f.AuditKey, "id", "title")
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	t.Run("field excluded by narrow fetch", func(t *testing.T) {
		_, err := rec.Get("status")
		testutil.AssertFieldMissing(t, err, "status")
	})

	t.Run("field the table never had", func(t *testing.T) {
		_, err := rec.Get("nonexistent")
		testutil.AssertFieldMissing(t, err, "nonexistent")
	})
}

func TestFieldNames(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}

	t.Run("default fetch", func(t *testing.T) {
		rec, err := reports.Find(f.AuditKey)
		if err != nil {
			t.Fatalf("failed to find record: %v", err)
		}
		names, err := rec.FieldNames()
		if err != nil {
			t.Fatalf("failed to enumerate fields: %v", err)
		}
		want := []string{"attachment", "body", "id", "pages", "rating", "status", "title"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("field names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("narrow fetch still lists deferred", func(t *testing.T) {
		rec, err := reports.FindSelect(f.AuditKey, "id", "title")
		if err != nil {
			t.Fatalf("failed to find record: %v", err)
		}
		names, err := rec.FieldNames()
		if err != nil {
			t.Fatalf("failed to enumerate fields: %v", err)
		}
		want := []string{"attachment", "body", "id", "title"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("field names mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSetMarksDirty(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.Find(f.AuditKey)
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	rec.Set("Title", "Amended Audit")
	rec.Set("pages", int64(50))

	if diff := cmp.Diff([]string{"pages", "title"}, rec.Dirty()); diff != "" {
		t.Errorf("dirty set mismatch (-want +got):\n%s", diff)
	}
	title, err := rec.Get("title")
	if err != nil {
		t.Fatalf("failed to read title: %v", err)
	}
	if title != "Amended Audit" {
		t.Errorf("unexpected title after set: %v", title)
	}
}

func TestTypedGetters(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.Find(f.AuditKey)
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	t.Run("string", func(t *testing.T) {
		title, err := rec.GetString("title")
		if err != nil {
			t.Fatalf("failed to read title: %v", err)
		}
		if title != "Quarterly Audit" {
			t.Errorf("unexpected title: %q", title)
		}
	})

	t.Run("int64", func(t *testing.T) {
		pages, err := rec.GetInt64("pages")
		if err != nil {
			t.Fatalf("failed to read pages: %v", err)
		}
		if pages != 42 {
			t.Errorf("unexpected pages: %d", pages)
		}
	})

	t.Run("bytes load on demand", func(t *testing.T) {
		attachment, err := rec.GetBytes("attachment")
		if err != nil {
			t.Fatalf("failed to read attachment: %v", err)
		}
		if diff := cmp.Diff(f.AuditAttachment, attachment); diff != "" {
			t.Errorf("attachment mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("null string reads empty", func(t *testing.T) {
		draft, err := reports.Find(f.DraftKey)
		if err != nil {
			t.Fatalf("failed to find record: %v", err)
		}
		body, err := draft.GetString("body")
		if err != nil {
			t.Fatalf("failed to read body: %v", err)
		}
		if body != "" {
			t.Errorf("expected empty body, got %q", body)
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		if _, err := rec.GetInt64("title"); err == nil {
			t.Errorf("expected error reading title as int64")
		}
	})
}

func TestKeyRequiresPrimaryKey(t *testing.T) {
	f := testutil.NewFixture(t)

	reports, err := lazyrec.Define(f.Store, lazyrec.ModelConfig{Table: "reports"})
	if err != nil {
		t.Fatalf("failed to define model: %v", err)
	}
	rec, err := reports.FindSelect(f.AuditKey, "title")
	if err != nil {
		t.Fatalf("failed to find record: %v", err)
	}

	_, err = rec.Key()
	testutil.AssertFieldMissing(t, err, "id")

	// Without a key there is nothing to load deferred fields against.
	_, err = rec.Get("body")
	testutil.AssertFieldMissing(t, err, "id")
}
