// This is the main entry point for the lazyrec CLI.
// Build with: go build -o bin/lazyrec ./cmd/lazyrec
// Usage: lazyrec <command> [options]
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
