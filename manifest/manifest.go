// Package manifest loads YAML model manifests: file-driven declarations
// of tables, columns and deferred fields. A manifest can create the
// schema for a fresh database and define every model in one step, which
// is how the CLI and the example apps bootstrap themselves.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/lazyrec/internal/validation"
)

// File is a parsed manifest.
type File struct {
	// Version of the manifest format. Defaults to "1".
	Version string `yaml:"version,omitempty"`

	// Models declared by the manifest, in file order. A model extending
	// another must appear after its parent.
	Models []ModelDef `yaml:"models"`
}

// ModelDef declares one model and, optionally, the schema of its table.
type ModelDef struct {
	// Name of the model. Required, unique within the file.
	Name string `yaml:"name"`

	// Table the model maps. Defaults to Name, or to the parent's table
	// when Extends is set.
	Table string `yaml:"table,omitempty"`

	// PrimaryKey column. Defaults to "id", or to the parent's key when
	// Extends is set.
	PrimaryKey string `yaml:"primary_key,omitempty"`

	// Deferred lists the fields excluded from default fetches. Empty
	// means infer from column types, or inherit when Extends is set.
	Deferred []string `yaml:"deferred,omitempty"`

	// Extends names an earlier model in the file to derive from.
	Extends string `yaml:"extends,omitempty"`

	// Columns declare the table schema for DDL generation. Models
	// mapping existing tables leave it empty.
	Columns []ColumnDef `yaml:"columns,omitempty"`
}

// ColumnDef declares one column for DDL generation.
type ColumnDef struct {
	// Name of the column. Required.
	Name string `yaml:"name"`

	// Type is the declared SQL type (TEXT, VARCHAR(80), BLOB, INTEGER).
	// Empty declares a typeless column, which SQLite treats as BLOB
	// affinity.
	Type string `yaml:"type,omitempty"`

	// PrimaryKey marks the table's key column. At most one per model.
	PrimaryKey bool `yaml:"primary_key,omitempty"`

	// NotNull adds a NOT NULL constraint.
	NotNull bool `yaml:"not_null,omitempty"`

	// Default is rendered as a literal: quoted for textual columns,
	// as written for numeric and boolean ones.
	Default string `yaml:"default,omitempty"`
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates manifest YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}
	applyDefaults(&f)
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// applyDefaults fills the optional fields that do not depend on a parent
// model. Extending models resolve table and key at definition time.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
	for i := range f.Models {
		m := &f.Models[i]
		if m.Table == "" && m.Extends == "" {
			m.Table = m.Name
		}
	}
}

// Validate checks the manifest for structural problems: missing or
// duplicate names, invalid identifiers, unknown or out-of-order parents,
// and multiple primary key columns.
func (f *File) Validate() error {
	if len(f.Models) == 0 {
		return fmt.Errorf("manifest declares no models")
	}
	seen := make(map[string]struct{}, len(f.Models))
	for i := range f.Models {
		m := &f.Models[i]
		if err := validation.ValidateIdentifier("model", m.Name); err != nil {
			return err
		}
		if _, dup := seen[m.Name]; dup {
			return fmt.Errorf("duplicate model name %q", m.Name)
		}
		if m.Extends != "" {
			if _, ok := seen[m.Extends]; !ok {
				return fmt.Errorf("model %q extends %q, which is not declared earlier in the file", m.Name, m.Extends)
			}
		}
		seen[m.Name] = struct{}{}

		if m.Table != "" {
			if err := validation.ValidateIdentifier("table", m.Table); err != nil {
				return fmt.Errorf("model %q: %w", m.Name, err)
			}
		}
		if m.PrimaryKey != "" {
			if err := validation.ValidateIdentifier("column", m.PrimaryKey); err != nil {
				return fmt.Errorf("model %q: %w", m.Name, err)
			}
		}
		for _, d := range m.Deferred {
			if err := validation.ValidateIdentifier("column", d); err != nil {
				return fmt.Errorf("model %q deferred list: %w", m.Name, err)
			}
		}

		pks := 0
		for _, c := range m.Columns {
			if err := validation.ValidateIdentifier("column", c.Name); err != nil {
				return fmt.Errorf("model %q: %w", m.Name, err)
			}
			if c.PrimaryKey {
				pks++
			}
		}
		if pks > 1 {
			return fmt.Errorf("model %q declares %d primary key columns", m.Name, pks)
		}
	}
	return nil
}

// Model returns the declaration with the given name, or nil.
func (f *File) Model(name string) *ModelDef {
	for i := range f.Models {
		if f.Models[i].Name == name {
			return &f.Models[i]
		}
	}
	return nil
}
