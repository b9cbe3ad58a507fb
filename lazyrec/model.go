package lazyrec

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/Masterminds/squirrel"

	"github.com/arthur-debert/lazyrec/types"
)

// sq builds every statement the package issues, with ? placeholders for
// SQLite.
var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Model is a mapped type: a named view of one table whose rows surface as
// Records. A model knows its primary key and which fields are deferred,
// and memoizes the column metadata and default projection that fetches
// use. All methods are safe for concurrent use once the model is defined.
type Model struct {
	name  string
	table string
	pk    string
	store types.Store

	parent *Model

	// explicit is the declared deferred list; nil means the model infers
	// its deferred fields (or inherits an ancestor's declaration).
	explicit []string

	state atomic.Pointer[modelState]
}

// Define registers a mapped type against st. cfg.Table is required; see
// ModelConfig for the other defaults. Define never touches the database:
// column metadata loads on first use, so a model can be defined before
// its schema exists. Unknown names in cfg.DeferredFields are accepted
// here and fail only when a fetch asks for them.
func Define(st types.Store, cfg ModelConfig) (*Model, error) {
	if st == nil {
		return nil, &DefinitionError{Model: cfg.Name, Reason: "store is required"}
	}
	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		return nil, &DefinitionError{Model: cfg.Name, Reason: "table is required"}
	}
	m := &Model{
		name:     strings.TrimSpace(cfg.Name),
		table:    table,
		pk:       normalizeField(cfg.PrimaryKey),
		store:    st,
		explicit: normalizeFields(cfg.DeferredFields),
	}
	if m.name == "" {
		m.name = m.table
	}
	if m.pk == "" {
		m.pk = "id"
	}
	return m, nil
}

// Derive registers a subtype of m. The child shares the parent's store
// and defaults to its table and primary key. Its deferred set starts as
// the parent's: a child without its own DeferredFields resolves the
// nearest ancestor declaration, or falls back to inference over its own
// columns when no ancestor declared one. Declaring DeferredFields on the
// child replaces the inherited set without touching the parent, and a
// later declaration on the parent never reaches back into the child.
func (m *Model) Derive(cfg ModelConfig) (*Model, error) {
	if strings.TrimSpace(cfg.Table) == "" {
		cfg.Table = m.table
	}
	if normalizeField(cfg.PrimaryKey) == "" {
		cfg.PrimaryKey = m.pk
	}
	child, err := Define(m.store, cfg)
	if err != nil {
		return nil, err
	}
	child.parent = m
	return child, nil
}

// Name returns the model's name.
func (m *Model) Name() string { return m.name }

// Table returns the table the model maps.
func (m *Model) Table() string { return m.table }

// PrimaryKey returns the primary key column.
func (m *Model) PrimaryKey() string { return m.pk }

// Parent returns the model this one was derived from, or nil.
func (m *Model) Parent() *Model { return m.parent }

// Store returns the store the model fetches from.
func (m *Model) Store() types.Store { return m.store }

// DeferredFields returns the fields currently treated as deferred, using
// context.Background. See DeferredFieldsContext.
func (m *Model) DeferredFields() ([]string, error) {
	return m.DeferredFieldsContext(context.Background())
}

// DeferredFieldsContext returns the ordered field names currently treated
// as deferred: the nearest declared list, or the inferred large-column
// set. The first call after Define or ResetColumns reads column metadata
// from the store.
func (m *Model) DeferredFieldsContext(ctx context.Context) ([]string, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), st.deferred...), nil
}

// DefaultProjection returns the projection used by default fetches, using
// context.Background. See DefaultProjectionContext.
func (m *Model) DefaultProjection(qualified bool) (string, error) {
	return m.DefaultProjectionContext(context.Background(), qualified)
}

// DefaultProjectionContext returns the comma-joined list of the model's
// non-deferred columns, in the table's declared order. With qualified set,
// each name carries the quoted table prefix for use in joins. The string
// is memoized together with the column metadata.
func (m *Model) DefaultProjectionContext(ctx context.Context, qualified bool) (string, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return "", err
	}
	if qualified {
		return st.qualified, nil
	}
	return st.unqualified, nil
}

// Columns returns the model's column metadata, using context.Background.
// See ColumnsContext.
func (m *Model) Columns() ([]types.Column, error) {
	return m.ColumnsContext(context.Background())
}

// ColumnsContext returns the table's column metadata in declared order.
func (m *Model) ColumnsContext(ctx context.Context) ([]types.Column, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return nil, err
	}
	return append([]types.Column(nil), st.columns...), nil
}

// ResetColumns drops the memoized column metadata, deferred set and
// projections, so the next fetch rebuilds them from the live schema. Call
// it after ALTER TABLE or after swapping schemas under the model.
func (m *Model) ResetColumns() {
	m.state.Store(nil)
}

// isDeferred reports whether name belongs to the model's deferred set.
func (m *Model) isDeferred(ctx context.Context, name string) (bool, error) {
	st, err := m.stateContext(ctx)
	if err != nil {
		return false, err
	}
	_, ok := st.deferredSet[name]
	return ok, nil
}
