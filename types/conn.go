package types

import (
	"context"
	"database/sql"
	"strings"
)

// Querier is implemented by *sql.DB, *sql.Tx, and any wrapper that can
// execute a query returning rows.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Execer is implemented by *sql.DB, *sql.Tx, and any wrapper that can
// execute a statement that does not return rows.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Conn can both query and execute. All mapper round trips go through it,
// always with parameterized arguments.
type Conn interface {
	Querier
	Execer
}

// Catalog enumerates column metadata for mapped tables. Implementations
// report columns in schema declaration order; the mapper caches the result
// per model until the model's metadata is reset.
type Catalog interface {
	Columns(ctx context.Context, table string) ([]Column, error)
}

// Quoter renders identifiers safely for the store's dialect. Values are
// never quoted by the mapper; they travel as query parameters.
type Quoter interface {
	QuoteIdent(name string) string
}

// QuoteIdent quotes a table or column identifier for the double-quote
// dialect SQLite uses. Embedded quote characters are doubled per the SQL
// standard.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Store is the full contract the mapper consumes from a backing row store.
// The store package provides the SQLite implementation; tests may wrap a
// Store to observe or fail round trips.
type Store interface {
	Conn
	Catalog
	Quoter
}
