package store

import (
	"context"
	"fmt"
)

// ApplySchema executes DDL statements in order under the store's schema
// lock. Statements are expected to be idempotent (CREATE TABLE IF NOT
// EXISTS and friends); ApplySchema stops at the first failure.
func (s *Store) ApplySchema(ctx context.Context, statements []string) error {
	return s.withSchemaLock(ctx, func() error {
		for _, stmt := range statements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		return nil
	})
}
