// Package lazyrec provides a record mapper for SQLite whose models keep
// their large columns in the database until read. Default fetches select
// only the eager columns; reading a deferred field on a record triggers a
// single targeted fetch for it, and afterwards the field behaves like any
// other.
//
// Models declare which fields to defer, or let the package infer the set
// from column types (TEXT and BLOB columns defer, sized character columns
// stay eager). Derived models inherit the parent's declaration and may
// replace it without affecting the parent.
package lazyrec

import "github.com/arthur-debert/lazyrec/store"

// Open opens the SQLite database at path with the store package's
// defaults applied. It is shorthand for store.Open.
func Open(path string) (*store.Store, error) {
	return store.Open(path)
}
