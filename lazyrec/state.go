package lazyrec

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/lazyrec/types"
)

// modelState is the memoized snapshot a model fetches through: column
// metadata, the resolved deferred set, and both projection renderings.
// It is immutable once built. Concurrent first computations build
// identical values from the same schema, so the last store winning is
// harmless.
type modelState struct {
	columns     []types.Column
	colIndex    map[string]int
	deferred    []string
	deferredSet map[string]struct{}
	unqualified string
	qualified   string
}

// stateContext returns the current snapshot, building it on first use and
// after ResetColumns.
func (m *Model) stateContext(ctx context.Context) (*modelState, error) {
	if st := m.state.Load(); st != nil {
		return st, nil
	}
	st, err := m.buildState(ctx)
	if err != nil {
		return nil, err
	}
	m.state.Store(st)
	return st, nil
}

// buildState reads column metadata from the store and resolves the
// deferred set and default projections for this model.
func (m *Model) buildState(ctx context.Context) (*modelState, error) {
	cols, err := m.store.Columns(ctx, m.table)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s column metadata: %w", m.name, err)
	}

	st := &modelState{
		columns:     cols,
		colIndex:    make(map[string]int, len(cols)),
		deferredSet: make(map[string]struct{}),
	}
	for i, c := range cols {
		st.colIndex[normalizeField(c.Name)] = i
	}

	st.deferred = m.resolveDeferred(cols)
	for _, name := range st.deferred {
		st.deferredSet[name] = struct{}{}
	}

	// Projections keep the table's declared column order and skip the
	// deferred names.
	var plain, prefixed []string
	qt := m.store.QuoteIdent(m.table)
	for _, c := range cols {
		name := normalizeField(c.Name)
		if _, skip := st.deferredSet[name]; skip {
			continue
		}
		plain = append(plain, name)
		prefixed = append(prefixed, qt+"."+name)
	}
	st.unqualified = strings.Join(plain, ", ")
	st.qualified = strings.Join(prefixed, ", ")
	return st, nil
}

// resolveDeferred picks the deferred list: the nearest ancestor with an
// explicit declaration wins, and with no declaration anywhere every
// deferrable (large text or binary) non-key column is deferred.
func (m *Model) resolveDeferred(cols []types.Column) []string {
	for cur := m; cur != nil; cur = cur.parent {
		if cur.explicit != nil {
			return append([]string(nil), cur.explicit...)
		}
	}
	var inferred []string
	for _, c := range cols {
		if c.PrimaryKey || !c.Kind.Deferrable() {
			continue
		}
		inferred = append(inferred, normalizeField(c.Name))
	}
	return inferred
}
