// Package cmd - quote command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quote-pricing/adapters/intake"
	"quote-pricing/adapters/rules"
	"quote-pricing/core/engine"
	"quote-pricing/core/estimate"
	"quote-pricing/core/output"
	"quote-pricing/internal/config"
	"quote-pricing/internal/errors"
	"quote-pricing/internal/logging"
)

var (
	rulesPath    string
	intakePath   string
	serviceID    string
	outputFormat string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a customer intake against a rules file",
	Long: `Price one customer request against its service's configured rules.

The intake file names the requested service; --service overrides it.
If the intake references another configured service, a lower-confidence
cross-service estimate is attached to the quote.

Examples:
  quote-pricing quote --rules rules.hcl --intake request.json
  quote-pricing quote --rules rules.hcl --intake request.json --format json
  quote-pricing quote --rules rules.hcl --intake request.json --service lawn-care`,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "rules file (defaults to the configured rules path)")
	quoteCmd.Flags().StringVarP(&intakePath, "intake", "i", "", "intake JSON file (required)")
	quoteCmd.Flags().StringVarP(&serviceID, "service", "s", "", "service to price (defaults to the intake's service)")
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	quoteCmd.MarkFlagRequired("intake")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	path := rulesPath
	if path == "" {
		path = cfg.Quotes.RulesPath
	}

	file, err := rules.Load(path)
	if err != nil {
		return err
	}
	if cfg.Quotes.ValidateOnLoad {
		if issues := rules.Validate(file); len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintf(os.Stderr, "rules: %s\n", issue)
			}
			return errors.Newf(errors.TypeValidation, "rules file %s has %d issues", path, len(issues))
		}
	}

	req, err := intake.Load(intakePath)
	if err != nil {
		return err
	}

	id := serviceID
	if id == "" {
		id = req.Service
	}
	if id == "" {
		return errors.New(errors.TypeIntake, "intake names no service and --service not given")
	}
	svc, ok := file.Services[id]
	if !ok {
		return errors.NotFound("service", id)
	}

	currency := svc.Currency
	if currency == "" {
		currency = cfg.Quotes.DefaultCurrency
	}
	in := req.Input(svc.Tax, currency)

	logging.Debug("pricing request",
		zap.String("service", id),
		zap.String("rules", path),
		zap.Int("answers", len(in.Answers)),
		zap.Int("signals", len(in.Signals)))

	result, trace := engine.Calculate(svc.Rules, in)

	record, err := output.NewQuoteRecord(id, result, trace, Version)
	if err != nil {
		return errors.Internal("failed to assemble quote record", err)
	}
	if !cfg.Output.ShowTrace {
		record.Trace = nil
	}

	if req.CrossServiceRef != "" && req.CrossServiceRef != id {
		est, _ := estimate.CrossService(file.Source(), req.CrossServiceRef, in)
		if est == nil {
			logging.Warn("cross-service reference not configured",
				zap.String("ref", req.CrossServiceRef))
		}
		record.Estimate = est
	}

	format := output.Format(outputFormat)
	if outputFormat == "" {
		format = output.Format(cfg.Output.DefaultFormat)
	}
	formatter, ok := output.NewRegistry().Get(format)
	if !ok {
		return errors.Newf(errors.TypeConfig, "unknown output format %q", format)
	}
	return formatter.Render(os.Stdout, record)
}
