package lazyrec

import "strings"

// ModelConfig describes a mapped type for Define and Derive.
type ModelConfig struct {
	// Name identifies the model in errors and tooling output.
	// Defaults to Table.
	Name string

	// Table is the table rows are fetched from. Required for Define;
	// Derive defaults it to the parent's table.
	Table string

	// PrimaryKey is the column used for single-row fetches and on-demand
	// loads. Defaults to "id" for Define and to the parent's primary key
	// for Derive.
	PrimaryKey string

	// DeferredFields lists the fields excluded from default fetches and
	// loaded on first access. Leaving it empty means infer: every large
	// text or binary column except the primary key is deferred. An
	// explicit list replaces inference entirely, so naming only "body"
	// makes every other column eager.
	DeferredFields []string
}

// normalizeField lowercases and trims a field name to the store's
// representation of column names.
func normalizeField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeFields normalizes every name, dropping blanks and duplicates
// while preserving first-occurrence order. Registering the same list twice
// therefore resolves to the same set.
func normalizeFields(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = normalizeField(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
