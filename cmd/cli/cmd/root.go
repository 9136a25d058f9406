// Package cmd provides the CLI commands for quote-pricing.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"quote-pricing/internal/config"
	"quote-pricing/internal/logging"
)

// Version is the build version, overridable at link time.
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "quote-pricing",
	Short: "Price service requests against configured rules",
	Long: `quote-pricing is a deterministic pricing engine for service quotes.

It evaluates a customer's intake (form answers, extracted signals, and
free-text description) against per-service pricing rules and produces a
priced quote with a line-item breakdown and an evaluation trace.

Examples:
  quote-pricing quote --rules rules.hcl --intake request.json
  quote-pricing quote --rules rules.hcl --intake request.json --format json
  quote-pricing rules validate rules.hcl`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.quote-pricing.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quote-pricing version %s\n", Version)
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		path := cfgFile
		if path == "" {
			path = "(defaults)"
		}
		fmt.Printf("Config source: %s\n", path)
		fmt.Printf("Default currency: %s\n", cfg.Quotes.DefaultCurrency)
		fmt.Printf("Rules path: %s\n", cfg.Quotes.RulesPath)
		fmt.Printf("Validate on load: %v\n", cfg.Quotes.ValidateOnLoad)
		fmt.Printf("Output format: %s\n", cfg.Output.DefaultFormat)
		return nil
	},
}
