package manifest

import (
	"context"
	"strings"

	"github.com/arthur-debert/lazyrec/store"
	"github.com/arthur-debert/lazyrec/types"
)

// DDL returns the CREATE TABLE statements for every model that declares
// columns, in manifest order. Tables are created with IF NOT EXISTS, so
// applying a manifest to an existing database adds missing tables and
// leaves the rest alone.
func (f *File) DDL() []string {
	var stmts []string
	for i := range f.Models {
		m := &f.Models[i]
		if len(m.Columns) == 0 {
			continue
		}
		stmts = append(stmts, m.createTable())
	}
	return stmts
}

// Apply executes the manifest's DDL against st under its schema lock.
func (f *File) Apply(ctx context.Context, st *store.Store) error {
	return st.ApplySchema(ctx, f.DDL())
}

func (m *ModelDef) createTable() string {
	defs := make([]string, len(m.Columns))
	for i := range m.Columns {
		defs[i] = m.Columns[i].render()
	}
	return "CREATE TABLE IF NOT EXISTS " + types.QuoteIdent(m.Table) +
		" (" + strings.Join(defs, ", ") + ")"
}

func (c *ColumnDef) render() string {
	var b strings.Builder
	b.WriteString(types.QuoteIdent(c.Name))
	if c.Type != "" {
		b.WriteString(" ")
		b.WriteString(c.Type)
	}
	if c.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(defaultLiteral(c.Default, c.Type))
	}
	return b.String()
}

// defaultLiteral renders a manifest default value. Numeric and boolean
// columns take the value as written; everything else becomes a quoted
// SQL string literal with embedded quotes doubled.
func defaultLiteral(value, declared string) string {
	switch types.KindOf(declared) {
	case types.KindInteger, types.KindFloat, types.KindNumeric, types.KindBoolean:
		return value
	default:
		return "'" + strings.ReplaceAll(value, "'", "''") + "'"
	}
}
