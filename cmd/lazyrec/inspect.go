// Part of the lazyrec CLI - this file implements the 'lazyrec inspect'
// subcommand.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/lazyrec/lazyrec"
)

// inspectReport is the payload inspect renders, in either format.
type inspectReport struct {
	Table      string          `yaml:"table"`
	Columns    []inspectColumn `yaml:"columns"`
	Deferred   []string        `yaml:"deferred"`
	Projection string          `yaml:"projection"`
	Qualified  string          `yaml:"qualified_projection"`
}

type inspectColumn struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type,omitempty"`
	Kind       string `yaml:"kind"`
	NotNull    bool   `yaml:"not_null,omitempty"`
	Default    string `yaml:"default,omitempty"`
	PrimaryKey bool   `yaml:"primary_key,omitempty"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <table>",
	Short: "Show a table's columns and how the mapper treats them",
	Long: `Inspect reads a table's column metadata and reports each column's
declared type and kind, the fields the mapper would defer, and the
default projection fetches would use.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		ctx := context.Background()
		model, err := lazyrec.Define(st, lazyrec.ModelConfig{Table: args[0]})
		if err != nil {
			return err
		}

		cols, err := model.ColumnsContext(ctx)
		if err != nil {
			return err
		}
		deferred, err := model.DeferredFieldsContext(ctx)
		if err != nil {
			return err
		}
		projection, err := model.DefaultProjectionContext(ctx, false)
		if err != nil {
			return err
		}
		qualified, err := model.DefaultProjectionContext(ctx, true)
		if err != nil {
			return err
		}

		report := inspectReport{
			Table:      model.Table(),
			Deferred:   deferred,
			Projection: projection,
			Qualified:  qualified,
		}
		for _, c := range cols {
			report.Columns = append(report.Columns, inspectColumn{
				Name:       c.Name,
				Type:       c.Declared,
				Kind:       c.Kind.String(),
				NotNull:    c.NotNull,
				Default:    c.Default,
				PrimaryKey: c.PrimaryKey,
			})
		}

		if format == "yaml" {
			return printYAML(report)
		}
		printInspectTable(report)
		return nil
	},
}

func printInspectTable(r inspectReport) {
	fmt.Printf("Table: %s\n\n", r.Table)
	fmt.Printf("%-20s %-16s %-10s %-6s %-4s %s\n", "COLUMN", "TYPE", "KIND", "NULL", "PK", "DEFAULT")
	for _, c := range r.Columns {
		null := "yes"
		if c.NotNull {
			null = "no"
		}
		pk := ""
		if c.PrimaryKey {
			pk = "pk"
		}
		fmt.Printf("%-20s %-16s %-10s %-6s %-4s %s\n", c.Name, c.Type, c.Kind, null, pk, c.Default)
	}
	fmt.Printf("\nDeferred fields:    %s\n", strings.Join(r.Deferred, ", "))
	fmt.Printf("Default projection: %s\n", r.Projection)
	fmt.Printf("Qualified:          %s\n", r.Qualified)
}
