package testutil

import (
	"errors"
	"testing"

	"github.com/arthur-debert/lazyrec/lazyrec"
)

// AssertPresent checks that the record holds field in memory
func AssertPresent(t *testing.T, rec *lazyrec.Record, field string, context ...string) {
	t.Helper()
	if !rec.Has(field) {
		t.Errorf("expected field %q to be present%s", field, ctxSuffix(context))
	}
}

// AssertAbsent checks that the record does not hold field in memory
func AssertAbsent(t *testing.T, rec *lazyrec.Record, field string, context ...string) {
	t.Helper()
	if rec.Has(field) {
		t.Errorf("expected field %q to be absent%s", field, ctxSuffix(context))
	}
}

// AssertQueryCount checks how many queries the counting store has seen
func AssertQueryCount(t *testing.T, cs *CountingStore, expected int, context ...string) {
	t.Helper()
	if got := cs.QueryCount(); got != expected {
		t.Errorf("expected %d queries%s, got %d: %v", expected, ctxSuffix(context), got, cs.Queries())
	}
}

// AssertNotFound checks that err is a record-not-found failure
func AssertNotFound(t *testing.T, err error) {
	t.Helper()
	var nf *lazyrec.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

// AssertFieldMissing checks that err reports field as unfetched
func AssertFieldMissing(t *testing.T, err error, field string) {
	t.Helper()
	var fm *lazyrec.FieldMissingError
	if !errors.As(err, &fm) {
		t.Errorf("expected FieldMissingError for %q, got %v", field, err)
		return
	}
	if fm.Field != field {
		t.Errorf("expected FieldMissingError for %q, got one for %q", field, fm.Field)
	}
}

func ctxSuffix(context []string) string {
	if len(context) == 0 {
		return ""
	}
	return " " + context[0]
}
