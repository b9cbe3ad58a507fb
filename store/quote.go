package store

import "github.com/arthur-debert/lazyrec/types"

// QuoteIdent quotes a table or column identifier for safe embedding in
// SQL. It delegates to types.QuoteIdent.
func (s *Store) QuoteIdent(name string) string {
	return types.QuoteIdent(name)
}
