// Part of the lazyrec CLI - this file wires the root command, the global
// flags, and viper configuration.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/lazyrec/manifest"
	"github.com/arthur-debert/lazyrec/store"
)

var (
	dbPath       string
	manifestPath string
	format       string
)

var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "lazyrec",
	Short: "Lazyrec CLI - deferred-field record mapping for SQLite",
	Long: `Lazyrec maps SQLite rows to records that keep their large columns in
the database until read. This CLI inspects tables the way the mapper
sees them and bootstraps databases from YAML model manifests.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (LAZYREC_*)
3. Configuration files (custom path or default locations)

Configuration File Discovery:
  LAZYREC_CONFIG=/path/to/config.yaml  # Custom config file path
  ./lazyrec.yaml                       # Current directory
  ~/.lazyrec/lazyrec.yaml              # User directory
  /etc/lazyrec/lazyrec.yaml            # System directory

Examples:
  # Show a table's columns, kinds, deferred set and projections
  lazyrec --db evidence.db inspect reports

  # Create the tables a manifest declares
  lazyrec --db evidence.db --manifest models.yaml init

  # List the models a manifest declares
  lazyrec --manifest models.yaml models`,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return bindConfig()
	}
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "database file path")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "model manifest path")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table|yaml")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(modelsCmd)

	setupConfig()
}

// setupConfig configures viper with environment variables and config
// file discovery.
func setupConfig() {
	if configFile := os.Getenv("LAZYREC_CONFIG"); configFile != "" {
		cfg.SetConfigFile(configFile)
	} else {
		cfg.SetConfigName("lazyrec")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")
		cfg.AddConfigPath("$HOME/.lazyrec")
		cfg.AddConfigPath("/etc/lazyrec")
	}

	cfg.AutomaticEnv()
	cfg.SetEnvPrefix("LAZYREC")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// A missing config file is fine; flags and env still apply.
	_ = cfg.ReadInConfig()
}

// bindConfig merges flags, environment and config file values, with
// flags winning.
func bindConfig() error {
	if err := cfg.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return err
	}
	dbPath = cfg.GetString("db")
	manifestPath = cfg.GetString("manifest")
	if v := cfg.GetString("format"); v != "" {
		format = v
	}
	return nil
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required (--db, LAZYREC_DB, or config file)")
	}
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	return store.Open(absPath)
}

// loadManifest loads the configured manifest file.
func loadManifest() (*manifest.File, error) {
	if manifestPath == "" {
		return nil, fmt.Errorf("manifest path is required (--manifest, LAZYREC_MANIFEST, or config file)")
	}
	return manifest.LoadFile(manifestPath)
}

// printYAML renders v to stdout as YAML.
func printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render yaml: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
