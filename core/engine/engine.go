// Package engine implements the deterministic pricing pipeline: configured
// rules plus a customer's answers and extracted signals in, an itemized
// price and an audit trace out.
//
// Calculate is pure and total. It performs no I/O, holds no state, never
// mutates its inputs, and never returns an error: malformed input degrades
// per coercion rules instead of aborting. Identical inputs always produce
// identical results, so calls may run concurrently without locking.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"quote-pricing/core/addons"
	"quote-pricing/core/condition"
	"quote-pricing/core/types"
)

// Input carries everything a single calculation reads
type Input struct {
	// Answers maps form field identifiers to submitted values
	Answers map[string]interface{}

	// Signals maps AI-extracted signal keys to their values
	Signals map[string]interface{}

	// ProjectDescription is the customer's free-text description; add-on
	// detection is skipped entirely when it is empty
	ProjectDescription string

	// Tax configures tax application; the rate is in percentage form
	Tax types.TaxConfig

	// Currency is the quote currency
	Currency types.Currency
}

// Calculate prices one service request against its configured rules
func Calculate(rules *types.PricingRules, in Input) (*types.PricingResult, *types.Trace) {
	set := condition.NewAnswerSet(in.Answers, in.Signals)
	trace := &types.Trace{}
	var breakdown []types.BreakdownLine

	baseFee := types.Round2(rules.BaseFee)
	trace.Summary.BaseFee = baseFee
	subtotal := baseFee
	if !baseFee.IsZero() {
		breakdown = append(breakdown, types.BreakdownLine{Label: "Base fee", Amount: baseFee})
	}

	stepLines, stepsTotal, stepFired := resolveWorkSteps(rules.WorkSteps, set)
	breakdown = append(breakdown, stepLines...)
	subtotal = subtotal.Add(stepsTotal)
	trace.Summary.WorkStepsTotal = stepsTotal
	trace.Fired = append(trace.Fired, stepFired...)

	var recommended []string
	for _, m := range addons.Detect(in.ProjectDescription, rules.Addons) {
		recommended = append(recommended, m.Addon.Label)
		trace.Fired = append(trace.Fired, "addon:"+m.Addon.ID)

		// A zero-price add-on is still recommended; only its line is
		// dropped, since zero amounts never enter the breakdown.
		price := types.Round2(m.Addon.Price)
		if price.IsZero() {
			continue
		}
		breakdown = append(breakdown, types.BreakdownLine{
			Label:                m.Addon.Label,
			Amount:               price,
			AutoRecommended:      true,
			RecommendationReason: fmt.Sprintf("mentioned %q in the project description", m.Keyword),
		})
		subtotal = subtotal.Add(price)
	}

	subtotal = types.Round2(subtotal)
	beforeMultipliers := subtotal

	subtotal, multiplierLines, multiplierFired := applyMultipliers(subtotal, rules.Multipliers, set)
	breakdown = append(breakdown, multiplierLines...)
	trace.Fired = append(trace.Fired, multiplierFired...)
	trace.Summary.MultiplierAdjustment = subtotal.Sub(beforeMultipliers)

	// Minimum charge overrides the subtotal without a breakdown line;
	// only the trace flag and the final figure reveal it.
	minimum := types.Round2(rules.MinimumCharge)
	if subtotal.LessThan(minimum) {
		subtotal = minimum
		trace.Summary.MinimumApplied = true
		trace.Fired = append(trace.Fired, "minimum_charge")
	}

	result := &types.PricingResult{
		Currency:  in.Currency,
		Subtotal:  subtotal,
		TaxAmount: decimal.Zero,
		Total:     subtotal,
		Breakdown: breakdown,
	}
	if len(recommended) > 0 {
		result.RecommendedAddons = recommended
	}
	applyTax(result, in.Tax)

	return result, trace
}
