package testutil

import (
	"context"
	"database/sql"
	"sync"

	"github.com/arthur-debert/lazyrec/types"
)

// CountingStore wraps a Store and records every query and statement, for
// tests asserting how many round trips an operation issued. Column
// metadata reads go through the wrapped store directly and are not
// counted.
type CountingStore struct {
	types.Store

	mu      sync.Mutex
	queries []string
	execs   []string
}

// NewCountingStore wraps st.
func NewCountingStore(st types.Store) *CountingStore {
	return &CountingStore{Store: st}
}

// QueryContext records the query and delegates to the wrapped store.
func (c *CountingStore) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	c.queries = append(c.queries, query)
	c.mu.Unlock()
	return c.Store.QueryContext(ctx, query, args...)
}

// ExecContext records the statement and delegates to the wrapped store.
func (c *CountingStore) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	c.execs = append(c.execs, query)
	c.mu.Unlock()
	return c.Store.ExecContext(ctx, query, args...)
}

// Queries returns a copy of the recorded queries.
func (c *CountingStore) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

// QueryCount returns how many queries ran so far.
func (c *CountingStore) QueryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queries)
}

// ExecCount returns how many statements ran so far.
func (c *CountingStore) ExecCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.execs)
}

// Reset clears the recorded round trips.
func (c *CountingStore) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries = nil
	c.execs = nil
}
