// Package output - Terminal rendering
package output

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"quote-pricing/core/types"
)

// CLIFormatter renders a human-readable quote table
type CLIFormatter struct{}

// Format returns the format type
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the quote as a boxed terminal table
func (f *CLIFormatter) Render(w io.Writer, record *QuoteRecord) error {
	result := record.Result

	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────────────────────┐")
	fmt.Fprintf(w, "│ %-55s %15s │\n", "QUOTE: "+record.ServiceID, string(record.QuoteID))
	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")

	for _, line := range result.Breakdown {
		label := line.Label
		if line.AutoRecommended {
			label += " *"
		}
		fmt.Fprintf(w, "│ %-55s %15s │\n", truncate(label, 55), money(line.Amount, result.Currency))
	}

	fmt.Fprintln(w, "├─────────────────────────────────────────────────────────────────────────┤")
	fmt.Fprintf(w, "│ %-55s %15s │\n", "Subtotal", money(result.Subtotal, result.Currency))
	if result.TaxRate != nil {
		taxLabel := fmt.Sprintf("%s (%s%%)", result.TaxLabel, result.TaxRate.String())
		fmt.Fprintf(w, "│ %-55s %15s │\n", taxLabel, money(result.TaxAmount, result.Currency))
	}
	fmt.Fprintf(w, "│ %-55s %15s │\n", "TOTAL", money(result.Total, result.Currency))
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────────────────────┘")

	if len(result.RecommendedAddons) > 0 {
		fmt.Fprintln(w, "\n* recommended from the project description")
	}
	if result.Notes != "" {
		fmt.Fprintf(w, "\nNotes: %s\n", result.Notes)
	}

	if record.Estimate != nil {
		est := record.Estimate
		fmt.Fprintf(w, "\nAdditional service estimate (confidence %.0f%%): %s\n",
			est.Confidence*100, money(est.Total, est.Currency))
		if est.Notes != "" {
			fmt.Fprintf(w, "  %s\n", est.Notes)
		}
	}

	if record.Trace != nil {
		s := record.Trace.Summary
		fmt.Fprintf(w, "\nTrace: base %s, work steps %s, multipliers %s, minimum applied: %v\n",
			s.BaseFee.StringFixed(2), s.WorkStepsTotal.StringFixed(2),
			s.MultiplierAdjustment.StringFixed(2), s.MinimumApplied)
	}

	return nil
}

func money(amount decimal.Decimal, currency types.Currency) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
