// Package main is the entry point for the quote-pricing CLI.
package main

import (
	"os"

	"quote-pricing/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
