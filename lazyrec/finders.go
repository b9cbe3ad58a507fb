package lazyrec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// ListOptions configures List.
type ListOptions struct {
	// Filters restricts results by column equality, combined with AND.
	// A slice value matches any of its elements.
	Filters map[string]any

	// OrderBy applies ordering clauses in sequence.
	OrderBy []OrderClause

	// Limit caps the number of rows returned. Nil means no cap.
	Limit *int

	// Offset skips rows before returning results. Nil means none.
	Offset *int
}

// OrderClause is one ordering term for ListOptions.
type OrderClause struct {
	Field      string
	Descending bool
}

// Find fetches one record by primary key, using context.Background. See
// FindContext.
func (m *Model) Find(key any) (*Record, error) {
	return m.FindContext(context.Background(), key)
}

// FindContext fetches the row with the given primary key through the
// model's default projection, so deferred fields stay in the database
// until read. A missed lookup returns *NotFoundError.
func (m *Model) FindContext(ctx context.Context, key any) (*Record, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return nil, err
	}
	return m.findProjected(ctx, key, st.unqualified)
}

// FindSelect fetches one record with a custom field list, using
// context.Background. See FindSelectContext.
func (m *Model) FindSelect(key any, fields ...string) (*Record, error) {
	return m.FindSelectContext(context.Background(), key, fields...)
}

// FindSelectContext fetches the row with the given primary key, selecting
// only the named fields. The record holds exactly those fields; reading
// an omitted non-deferred field afterwards fails with *FieldMissingError,
// while omitted deferred fields still load on demand.
func (m *Model) FindSelectContext(ctx context.Context, key any, fields ...string) (*Record, error) {
	names := normalizeFields(fields)
	if len(names) == 0 {
		return m.FindContext(ctx, key)
	}
	quoted := make([]string, len(names))
	for i, f := range names {
		quoted[i] = m.store.QuoteIdent(f)
	}
	query, args, err := sq.Select(quoted...).
		From(m.store.QuoteIdent(m.table)).
		Where(squirrel.Eq{m.store.QuoteIdent(m.pk): key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find query for %s: %w", m.name, err)
	}
	rows, err := m.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %v: %w", m.name, key, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find %s %v: %w", m.name, key, err)
		}
		return nil, &NotFoundError{Model: m.name, Key: key}
	}
	values, err := scanValues(rows, len(names))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s %v: %w", m.name, key, err)
	}
	rec := make(map[string]any, len(names))
	for i, f := range names {
		rec[f] = values[i]
	}
	return newRecord(m, rec), nil
}

// List fetches records matching opts, using context.Background. See
// ListContext.
func (m *Model) List(opts ListOptions) ([]*Record, error) {
	return m.ListContext(context.Background(), opts)
}

// ListContext fetches every row matching opts through the model's default
// projection. Each returned record defers its large fields independently.
func (m *Model) ListContext(ctx context.Context, opts ListOptions) ([]*Record, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return nil, err
	}
	b := sq.Select(st.unqualified).From(m.store.QuoteIdent(m.table))
	if len(opts.Filters) > 0 {
		eq := squirrel.Eq{}
		for col, v := range opts.Filters {
			eq[m.store.QuoteIdent(normalizeField(col))] = v
		}
		b = b.Where(eq)
	}
	for _, oc := range opts.OrderBy {
		dir := " ASC"
		if oc.Descending {
			dir = " DESC"
		}
		b = b.OrderBy(m.store.QuoteIdent(normalizeField(oc.Field)) + dir)
	}
	if opts.Limit != nil && *opts.Limit >= 0 {
		b = b.Limit(uint64(*opts.Limit))
	}
	if opts.Offset != nil && *opts.Offset > 0 {
		b = b.Offset(uint64(*opts.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query for %s: %w", m.name, err)
	}

	rows, err := m.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", m.name, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", m.name, err)
	}
	var out []*Record
	for rows.Next() {
		values, err := scanValues(rows, len(cols))
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", m.name, err)
		}
		fields := make(map[string]any, len(cols))
		for i, c := range cols {
			fields[normalizeField(c)] = values[i]
		}
		out = append(out, newRecord(m, fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", m.name, err)
	}
	return out, nil
}

// findProjected runs the single-row fetch shared by Find and Reload with
// a prebuilt projection string.
func (m *Model) findProjected(ctx context.Context, key any, projection string) (*Record, error) {
	query, args, err := sq.Select(projection).
		From(m.store.QuoteIdent(m.table)).
		Where(squirrel.Eq{m.store.QuoteIdent(m.pk): key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find query for %s: %w", m.name, err)
	}
	rows, err := m.store.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %v: %w", m.name, key, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to find %s %v: %w", m.name, key, err)
		}
		return nil, &NotFoundError{Model: m.name, Key: key}
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %v: %w", m.name, key, err)
	}
	values, err := scanValues(rows, len(cols))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s %v: %w", m.name, key, err)
	}
	fields := make(map[string]any, len(cols))
	for i, c := range cols {
		fields[normalizeField(c)] = values[i]
	}
	return newRecord(m, fields), nil
}

// scanValues scans the current row into n values, copying driver-owned
// byte slices so they survive the next Scan.
func scanValues(rows *sql.Rows, n int) ([]any, error) {
	values := make([]any, n)
	ptrs := make([]any, n)
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
	}
	return values, nil
}
