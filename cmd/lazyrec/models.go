// Part of the lazyrec CLI - this file implements the 'lazyrec models'
// subcommand.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/lazyrec/lazyrec"
)

// modelReport is one row of the models listing.
type modelReport struct {
	Name       string   `yaml:"name"`
	Table      string   `yaml:"table"`
	PrimaryKey string   `yaml:"primary_key"`
	Extends    string   `yaml:"extends,omitempty"`
	Deferred   []string `yaml:"deferred"`
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models a manifest declares",
	Long: `Models lists every model in the manifest with its table, key and
deferred fields. With --db the models are defined against the database,
so inferred and inherited deferred sets resolve to actual column names;
without it the listing shows the declarations as written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadManifest()
		if err != nil {
			return err
		}

		var defined map[string]*lazyrec.Model
		if dbPath != "" {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			if defined, err = f.Define(st); err != nil {
				return err
			}
		}

		reports := make([]modelReport, 0, len(f.Models))
		for i := range f.Models {
			def := &f.Models[i]
			r := modelReport{
				Name:       def.Name,
				Table:      def.Table,
				PrimaryKey: def.PrimaryKey,
				Extends:    def.Extends,
				Deferred:   def.Deferred,
			}
			if defined != nil {
				m := defined[def.Name]
				r.Table = m.Table()
				r.PrimaryKey = m.PrimaryKey()
				if r.Deferred, err = m.DeferredFields(); err != nil {
					return fmt.Errorf("failed to resolve deferred fields for %s: %w", def.Name, err)
				}
			}
			reports = append(reports, r)
		}

		if format == "yaml" {
			return printYAML(reports)
		}
		printModelsTable(reports)
		return nil
	},
}

func printModelsTable(reports []modelReport) {
	fmt.Printf("%-20s %-20s %-10s %-16s %s\n", "NAME", "TABLE", "KEY", "EXTENDS", "DEFERRED")
	for _, r := range reports {
		deferred := strings.Join(r.Deferred, ", ")
		if deferred == "" {
			deferred = "(inferred)"
		}
		fmt.Printf("%-20s %-20s %-10s %-16s %s\n", r.Name, r.Table, r.PrimaryKey, r.Extends, deferred)
	}
}
