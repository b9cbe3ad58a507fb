package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arthur-debert/lazyrec/types"
)

// Columns reports the columns of table in schema declaration order, with
// declared types classified via types.KindOf. It returns an error for a
// table the database does not know.
func (s *Store) Columns(ctx context.Context, table string) ([]types.Column, error) {
	// PRAGMA arguments cannot be parameterized; the identifier is quoted.
	query := fmt.Sprintf("PRAGMA table_info(%s)", s.QuoteIdent(table))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns for %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []types.Column
	for rows.Next() {
		var (
			cid      int
			name     string
			declared string
			notNull  int
			dflt     sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &declared, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column info for %s: %w", table, err)
		}
		cols = append(cols, types.Column{
			Name:       name,
			Declared:   declared,
			Kind:       types.KindOf(declared),
			NotNull:    notNull != 0,
			Default:    dflt.String,
			PrimaryKey: pk > 0,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns for %s: %w", table, err)
	}

	// PRAGMA table_info returns no rows, not an error, for unknown tables.
	if len(cols) == 0 {
		return nil, fmt.Errorf("no such table: %s", table)
	}

	return cols, nil
}
