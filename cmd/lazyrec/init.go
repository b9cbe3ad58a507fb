// Part of the lazyrec CLI - this file implements the 'lazyrec init'
// subcommand.
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the tables a manifest declares",
	Long: `Init applies the manifest's CREATE TABLE statements to the database.
Statements use IF NOT EXISTS, so init is safe to run against a database
that already has some of the tables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadManifest()
		if err != nil {
			return err
		}
		stmts := f.DDL()
		if len(stmts) == 0 {
			fmt.Println("Manifest declares no columns; nothing to create.")
			return nil
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := f.Apply(context.Background(), st); err != nil {
			return fmt.Errorf("failed to apply manifest: %w", err)
		}
		fmt.Printf("Applied %d schema statement(s) to %s\n", len(stmts), st.Path())
		return nil
	},
}
