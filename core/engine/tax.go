// Package engine - Tax calculation
package engine

import (
	"quote-pricing/core/types"
)

// applyTax fills the tax fields of a result from its final subtotal.
// Disabled tax leaves the label and rate absent entirely, with the total
// equal to the subtotal.
func applyTax(result *types.PricingResult, cfg types.TaxConfig) {
	if !cfg.Enabled {
		return
	}

	result.TaxLabel = cfg.Label
	rate := cfg.Rate
	result.TaxRate = &rate
	result.TaxAmount = types.PercentOf(result.Subtotal, cfg.Rate)
	result.Total = types.Round2(result.Subtotal.Add(result.TaxAmount))
}
