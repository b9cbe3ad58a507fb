package types

import "strings"

// ColumnKind classifies a column's declared SQL type into the semantic
// categories the mapper cares about. The split that matters for deferred
// loading is between short character data (KindString) and the large
// payload kinds (KindText, KindBlob).
type ColumnKind int

const (
	// KindUnknown is the zero value; no classification was possible.
	KindUnknown ColumnKind = iota
	// KindInteger covers all integer declarations (INT, INTEGER, BIGINT, ...)
	KindInteger
	// KindFloat covers floating point declarations (REAL, FLOAT, DOUBLE)
	KindFloat
	// KindNumeric covers exact numerics and anything SQLite would give
	// NUMERIC affinity (DECIMAL, NUMERIC, and unrecognized declarations)
	KindNumeric
	// KindBoolean covers BOOLEAN declarations
	KindBoolean
	// KindDatetime covers DATE, DATETIME and TIMESTAMP declarations
	KindDatetime
	// KindString covers short character data (CHAR, VARCHAR, NCHAR, ...)
	KindString
	// KindText covers large character data (TEXT, CLOB)
	KindText
	// KindBlob covers binary payloads (BLOB) and typeless columns
	KindBlob
)

// String returns the string representation of the ColumnKind
func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindDatetime:
		return "datetime"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Deferrable reports whether columns of this kind are excluded from default
// fetches when a model infers its deferred fields. Large character and
// binary payloads qualify; everything else is fetched eagerly.
func (k ColumnKind) Deferrable() bool {
	return k == KindText || k == KindBlob
}

// KindOf classifies a declared column type. It follows SQLite's type
// affinity rules, refined in two places: the TEXT affinity bucket is split
// into KindString (CHAR/VARCHAR) and KindText (TEXT/CLOB), and the NUMERIC
// bucket is split out for BOOLEAN and date/time declarations. Declarations
// are matched case-insensitively by substring, as SQLite itself does.
func KindOf(declared string) ColumnKind {
	d := strings.ToUpper(strings.TrimSpace(declared))

	switch {
	case strings.Contains(d, "INT"):
		return KindInteger
	case strings.Contains(d, "TEXT"), strings.Contains(d, "CLOB"):
		return KindText
	case strings.Contains(d, "CHAR"):
		return KindString
	case d == "", strings.Contains(d, "BLOB"):
		return KindBlob
	case strings.Contains(d, "REAL"), strings.Contains(d, "FLOA"), strings.Contains(d, "DOUB"):
		return KindFloat
	case strings.Contains(d, "BOOL"):
		return KindBoolean
	case strings.Contains(d, "DATE"), strings.Contains(d, "TIME"):
		return KindDatetime
	default:
		return KindNumeric
	}
}

// Column describes one column of a mapped table as reported by the store's
// catalog. Columns carry their catalog declaration order, which the default
// projection preserves.
type Column struct {
	// Name is the column name as the store reports it
	Name string

	// Declared is the raw declared type from the schema (may be empty)
	Declared string

	// Kind is the classification of Declared via KindOf
	Kind ColumnKind

	// NotNull reports whether the column carries a NOT NULL constraint
	NotNull bool

	// Default is the raw default expression from the schema, empty when none
	Default string

	// PrimaryKey reports whether the column is part of the primary key
	PrimaryKey bool
}

// ColumnNames returns the names of cols in order.
func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
