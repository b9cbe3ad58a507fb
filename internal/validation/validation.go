// Package validation checks model definitions and field values before
// they reach the database.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// MaxIdentifierLength bounds table and column names accepted from
// manifests.
const MaxIdentifierLength = 128

// ValidateIdentifier checks that name can serve as a table or column
// name: nonempty, within length, starting with a letter or underscore,
// and containing only letters, digits and underscores. kind labels the
// error ("table", "column", "model").
func ValidateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("%s name %q is too long: %d characters (maximum %d)", kind, name, len(name), MaxIdentifierLength)
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("%s name %q cannot start with a digit", kind, name)
			}
		default:
			return fmt.Errorf("%s name %q contains invalid character %q", kind, name, r)
		}
	}
	if IsSQLKeyword(name) {
		return fmt.Errorf("%q is a SQL keyword and cannot be used as a %s name", name, kind)
	}
	return nil
}

// IsSQLKeyword checks if a name collides with a SQL keyword. Keyword
// columns would corrupt the unquoted projection strings models expose.
func IsSQLKeyword(name string) bool {
	keywords := []string{
		"select", "from", "where", "order", "by", "group", "having",
		"insert", "update", "delete", "create", "drop", "alter",
		"table", "index", "join", "union", "and", "or", "not", "null",
		"primary", "key", "default", "values", "set", "as",
	}

	name = strings.ToLower(name)
	for _, keyword := range keywords {
		if name == keyword {
			return true
		}
	}

	return false
}

// ValidateValue ensures a field value can travel as a SQL parameter.
// nil, strings, bytes, numbers, bools and time.Time pass; composite
// values fail with an error naming the field.
func ValidateValue(field string, value any) error {
	if value == nil {
		return nil
	}

	switch value.(type) {
	case time.Time, []byte:
		return nil
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return ValidateValue(field, v.Elem().Interface())
	case reflect.Slice, reflect.Array:
		return fmt.Errorf("field %q cannot hold an array/slice value, got %T", field, value)
	case reflect.Map:
		return fmt.Errorf("field %q cannot hold a map value, got %T", field, value)
	default:
		return fmt.Errorf("field %q must hold a simple value (string, number, bool, bytes or time), got %T", field, value)
	}
}
