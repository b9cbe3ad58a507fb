package lazyrec

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/arthur-debert/lazyrec/internal/validation"
)

// Insert creates a row from the given fields, using context.Background.
// See InsertContext.
func (m *Model) Insert(fields map[string]any) (*Record, error) {
	return m.InsertContext(context.Background(), fields)
}

// InsertContext creates a row from the given fields and returns its
// record. When the primary key is absent a random UUID is generated for
// it. The returned record holds exactly the inserted values, so deferred
// fields passed here stay present in memory until the next Reload.
func (m *Model) InsertContext(ctx context.Context, fields map[string]any) (*Record, error) {
	vals := make(map[string]any, len(fields)+1)
	for name, v := range fields {
		name = normalizeField(name)
		if name == "" {
			continue
		}
		vals[name] = v
	}
	if _, ok := vals[m.pk]; !ok {
		vals[m.pk] = uuid.New().String()
	}

	// Deterministic column order for the generated SQL.
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		if err := validation.ValidateValue(name, vals[name]); err != nil {
			return nil, fmt.Errorf("failed to insert %s: %w", m.name, err)
		}
		cols[i] = m.store.QuoteIdent(name)
		args[i] = vals[name]
	}
	query, sqlArgs, err := sq.Insert(m.store.QuoteIdent(m.table)).
		Columns(cols...).
		Values(args...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert for %s: %w", m.name, err)
	}
	if _, err := m.store.ExecContext(ctx, query, sqlArgs...); err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", m.name, err)
	}
	return newRecord(m, vals), nil
}

// Delete removes the row with the given primary key, using
// context.Background. See DeleteContext.
func (m *Model) Delete(key any) error {
	return m.DeleteContext(context.Background(), key)
}

// DeleteContext removes the row with the given primary key. Deleting a
// row that is already gone returns *NotFoundError. Records fetched
// earlier keep their in-memory values; only their next on-demand load or
// reload notices the deletion.
func (m *Model) DeleteContext(ctx context.Context, key any) error {
	query, args, err := sq.Delete(m.store.QuoteIdent(m.table)).
		Where(squirrel.Eq{m.store.QuoteIdent(m.pk): key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete for %s: %w", m.name, err)
	}
	res, err := m.store.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete %s %v: %w", m.name, key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %s %v: %w", m.name, key, err)
	}
	if affected == 0 {
		return &NotFoundError{Model: m.name, Key: key}
	}
	return nil
}

// Save writes the record's dirty fields, using context.Background. See
// SaveContext.
func (r *Record) Save() error {
	return r.SaveContext(context.Background())
}

// SaveContext writes the dirty fields with one UPDATE by primary key and
// clears the dirty set. A record with nothing dirty is a no-op. Zero
// affected rows means the row is gone and fails with *NotFoundError.
func (r *Record) SaveContext(ctx context.Context) error {
	if len(r.dirty) == 0 {
		return nil
	}
	key, err := r.Key()
	if err != nil {
		return err
	}
	m := r.model
	upd := sq.Update(m.store.QuoteIdent(m.table))
	for _, name := range r.Dirty() {
		if err := validation.ValidateValue(name, r.fields[name]); err != nil {
			return fmt.Errorf("failed to save %s %v: %w", m.name, key, err)
		}
		upd = upd.Set(m.store.QuoteIdent(name), r.fields[name])
	}
	query, args, err := upd.
		Where(squirrel.Eq{m.store.QuoteIdent(m.pk): key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update for %s: %w", m.name, err)
	}
	res, err := m.store.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save %s %v: %w", m.name, key, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save %s %v: %w", m.name, key, err)
	}
	if affected == 0 {
		return &NotFoundError{Model: m.name, Key: key}
	}
	r.dirty = make(map[string]struct{})
	return nil
}

// Reload re-fetches the record from the store, using context.Background.
// See ReloadContext.
func (r *Record) Reload() error {
	return r.ReloadContext(context.Background())
}

// ReloadContext re-fetches the record's row through the default
// projection, replaces the field map wholesale, clears the dirty set and
// evicts every deferred field, so each one loads fresh on its next read.
// Values loaded or set before the reload are discarded. When the reload
// fails (including *NotFoundError for a vanished row) the record keeps
// its previous state.
func (r *Record) ReloadContext(ctx context.Context) error {
	key, err := r.Key()
	if err != nil {
		return err
	}
	m := r.model
	st, err := m.stateContext(ctx)
	if err != nil {
		return err
	}
	fresh, err := m.findProjected(ctx, key, st.unqualified)
	if err != nil {
		return err
	}
	// Evict the full deferred set regardless of what the refresh
	// returned.
	for _, name := range st.deferred {
		delete(fresh.fields, name)
	}
	r.fields = fresh.fields
	r.dirty = make(map[string]struct{})
	return nil
}
