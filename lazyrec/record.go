package lazyrec

import (
	"context"
	"fmt"
	"sort"
)

// Record is one mapped row held in memory. Fields live in a name-to-value
// map: a field is present when the map has an entry for it, which is not
// the same as holding a non-nil value (a NULL column is present as nil).
// Reading a deferred field that is not present triggers exactly one
// targeted fetch for it; reading any other absent field fails with
// *FieldMissingError, exactly as a narrow custom fetch would without
// deferral.
//
// A Record is not safe for concurrent use. Hand each goroutine its own
// record, or serialize access externally.
type Record struct {
	model  *Model
	fields map[string]any
	dirty  map[string]struct{}
}

func newRecord(m *Model, fields map[string]any) *Record {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Record{
		model:  m,
		fields: fields,
		dirty:  make(map[string]struct{}),
	}
}

// Model returns the record's mapped type.
func (r *Record) Model() *Model { return r.model }

// Key returns the record's primary key value. It fails when the key was
// excluded from the fetch that produced the record.
func (r *Record) Key() (any, error) {
	v, ok := r.fields[r.model.pk]
	if !ok {
		return nil, &FieldMissingError{Model: r.model.name, Field: r.model.pk}
	}
	return v, nil
}

// Has reports whether name is present in memory. Deferred fields are
// absent until first read, and absent again after Reload.
func (r *Record) Has(name string) bool {
	_, ok := r.fields[normalizeField(name)]
	return ok
}

// Get returns the value of name, using context.Background for any load it
// has to issue. See GetContext.
func (r *Record) Get(name string) (any, error) {
	return r.GetContext(context.Background(), name)
}

// GetContext returns the value of name. A present field is returned as
// is. An absent deferred field is loaded from the store first, with one
// single-row query, and behaves like any other field afterwards. An
// absent field outside the deferred set fails with *FieldMissingError.
func (r *Record) GetContext(ctx context.Context, name string) (any, error) {
	name = normalizeField(name)
	if v, ok := r.fields[name]; ok {
		return v, nil
	}
	deferred, err := r.model.isDeferred(ctx, name)
	if err != nil {
		return nil, err
	}
	if !deferred {
		return nil, &FieldMissingError{Model: r.model.name, Field: name}
	}
	if err := r.LoadContext(ctx, name); err != nil {
		return nil, err
	}
	return r.fields[name], nil
}

// Set installs value under name and marks the field dirty for the next
// Save. Setting an unloaded deferred field counts as loading it: the
// value is present afterwards and later reads trigger no fetch.
func (r *Record) Set(name string, value any) {
	name = normalizeField(name)
	r.fields[name] = value
	r.dirty[name] = struct{}{}
}

// Fields returns a copy of the present fields.
func (r *Record) Fields() map[string]any {
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v
	}
	return out
}

// Dirty returns the names changed since the last Save or Reload, sorted.
func (r *Record) Dirty() []string {
	out := make([]string, 0, len(r.dirty))
	for name := range r.dirty {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FieldNames returns the record's field names, using context.Background.
// See FieldNamesContext.
func (r *Record) FieldNames() ([]string, error) {
	return r.FieldNamesContext(context.Background())
}

// FieldNamesContext returns the union of the present fields and the
// model's deferred set, deduplicated and sorted. Unloaded deferred fields
// count as fields of the record, so enumeration sees them before any
// value exists in memory.
func (r *Record) FieldNamesContext(ctx context.Context) ([]string, error) {
	st, err := r.model.stateContext(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(r.fields)+len(st.deferred))
	names := make([]string, 0, len(r.fields)+len(st.deferred))
	for name := range r.fields {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, name := range st.deferred {
		if _, dup := seen[name]; dup {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetString returns name as a string. NULL reads as the empty string;
// byte values are converted, anything else is rendered with %v.
func (r *Record) GetString(name string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	default:
		return fmt.Sprintf("%v", s), nil
	}
}

// GetBytes returns name as a byte slice. NULL reads as nil; string values
// are converted.
func (r *Record) GetBytes(name string) ([]byte, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("field %q of %s is %T, not bytes", name, r.model.name, v)
	}
}

// GetInt64 returns name as an int64. NULL reads as zero.
func (r *Record) GetInt64(name string) (int64, error) {
	v, err := r.Get(name)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("field %q of %s is %T, not an integer", name, r.model.name, v)
	}
}
