package lazyrec

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Load fetches the given fields for this record, using
// context.Background. See LoadContext.
func (r *Record) Load(names ...string) error {
	return r.LoadContext(context.Background(), names...)
}

// LoadContext fetches the given fields for this record with one
// single-row query by primary key and installs the returned values in the
// field map. Callers needing several deferred fields should pass them
// together and pay for one round trip. The names are not restricted to
// the deferred set: any column the table has can be loaded this way.
//
// The install is all or nothing. If the underlying row is gone, deleted
// since the record was fetched, LoadContext fails with *NotFoundError
// and the field map is untouched; values already in memory stay valid.
func (r *Record) LoadContext(ctx context.Context, names ...string) error {
	fields := normalizeFields(names)
	if len(fields) == 0 {
		return nil
	}
	key, err := r.Key()
	if err != nil {
		return err
	}

	m := r.model
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = m.store.QuoteIdent(f)
	}
	query, args, err := sq.Select(quoted...).
		From(m.store.QuoteIdent(m.table)).
		Where(squirrel.Eq{m.store.QuoteIdent(m.pk): key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build load query for %s: %w", m.name, err)
	}

	rows, err := m.store.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to load %s fields %v: %w", m.name, fields, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to load %s fields %v: %w", m.name, fields, err)
		}
		return &NotFoundError{Model: m.name, Key: key}
	}
	values, err := scanValues(rows, len(fields))
	if err != nil {
		return fmt.Errorf("failed to scan %s fields %v: %w", m.name, fields, err)
	}

	for i, f := range fields {
		r.fields[f] = values[i]
	}
	return nil
}
