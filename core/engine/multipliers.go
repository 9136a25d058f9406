// Package engine - Multiplier chain
package engine

import (
	"github.com/shopspring/decimal"

	"quote-pricing/core/condition"
	"quote-pricing/core/types"
)

// applyMultipliers folds the ordered multiplier chain over the running
// subtotal. Each fired multiplier compounds multiplicatively and emits a
// breakdown line carrying the signed delta it caused; emission order
// matches configuration order.
func applyMultipliers(subtotal decimal.Decimal, multipliers []types.Multiplier, set *condition.AnswerSet) (decimal.Decimal, []types.BreakdownLine, []string) {
	var lines []types.BreakdownLine
	var fired []string

	for _, m := range multipliers {
		if !condition.Evaluate(m.When, set) {
			continue
		}

		next := types.Round2(subtotal.Mul(m.Factor))
		delta := next.Sub(subtotal)
		if !delta.IsZero() {
			lines = append(lines, types.BreakdownLine{Label: m.Label, Amount: delta})
		}
		subtotal = next
		fired = append(fired, "multiplier:"+m.Label)
	}

	return subtotal, lines, fired
}
