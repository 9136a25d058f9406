// Package types - Priced result and audit trace
package types

import "github.com/shopspring/decimal"

// BreakdownLine is a single labeled amount in the quote breakdown.
// A line is never emitted with an amount of exactly zero.
type BreakdownLine struct {
	// Label is the customer-facing description
	Label string `json:"label"`

	// Amount is the signed line amount, rounded to 2 decimal places
	Amount decimal.Decimal `json:"amount"`

	// AutoRecommended marks lines added by add-on detection
	AutoRecommended bool `json:"auto_recommended,omitempty"`

	// RecommendationReason explains why an auto-recommended line was added
	RecommendationReason string `json:"recommendation_reason,omitempty"`
}

// PricingResult is the itemized outcome of one calculation
type PricingResult struct {
	// Currency is the quote currency
	Currency Currency `json:"currency"`

	// Subtotal is the pre-tax amount after all adjustments
	Subtotal decimal.Decimal `json:"subtotal"`

	// TaxLabel names the applied tax; empty when tax is disabled
	TaxLabel string `json:"tax_label,omitempty"`

	// TaxRate is the applied percentage rate; nil when tax is disabled
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty"`

	// TaxAmount is the computed tax, zero when disabled
	TaxAmount decimal.Decimal `json:"tax_amount"`

	// Total is Subtotal plus TaxAmount
	Total decimal.Decimal `json:"total"`

	// Breakdown lists every contributing line in emission order
	Breakdown []BreakdownLine `json:"breakdown"`

	// Notes carries optional free-text remarks
	Notes string `json:"notes,omitempty"`

	// RecommendedAddons lists detected add-on labels. It is nil, not an
	// empty list, when detection found nothing or never ran; callers
	// rely on that absence convention.
	RecommendedAddons []string `json:"recommended_addons,omitempty"`

	// IsEstimate marks secondary cross-service estimates
	IsEstimate bool `json:"is_estimate,omitempty"`

	// Confidence is set for estimates only (0.0 to 1.0)
	Confidence float64 `json:"confidence,omitempty"`
}

// TraceSummary aggregates the monetary effect of each pipeline stage
type TraceSummary struct {
	// BaseFee is the configured base fee as charged
	BaseFee decimal.Decimal `json:"base_fee"`

	// WorkStepsTotal sums all included work step amounts, before
	// add-ons and multipliers
	WorkStepsTotal decimal.Decimal `json:"work_steps_total"`

	// MultiplierAdjustment is the net monetary effect of the chain
	MultiplierAdjustment decimal.Decimal `json:"multiplier_adjustment"`

	// MinimumApplied is true when the minimum charge replaced the subtotal
	MinimumApplied bool `json:"minimum_applied"`
}

// Trace is the audit side channel for one calculation. It exists for
// explainability and debugging and never influences the computed price.
type Trace struct {
	// Summary aggregates per-stage effects
	Summary TraceSummary `json:"summary"`

	// Fired records which rules fired, in application order
	Fired []string `json:"fired,omitempty"`
}
