// Package engine - Work-step resolution
package engine

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"quote-pricing/core/condition"
	"quote-pricing/core/types"
)

// resolveWorkSteps walks the configured steps in declared order, gates
// optional ones on their trigger condition, resolves quantities, and
// returns the emitted lines, their sum, and the fired-rule records.
func resolveWorkSteps(steps []types.WorkStep, set *condition.AnswerSet) ([]types.BreakdownLine, decimal.Decimal, []string) {
	var lines []types.BreakdownLine
	total := decimal.Zero
	var fired []string

	for _, step := range steps {
		if step.Optional {
			if step.Trigger == nil || !condition.Evaluate(*step.Trigger, set) {
				continue
			}
		}

		var amount, quantity decimal.Decimal
		switch step.CostType {
		case types.CostFixed:
			amount = types.Round2(step.DefaultCost)
		case types.CostPerUnit, types.CostPerHour:
			quantity = resolveQuantity(step, set)
			amount = types.MulRound2(step.DefaultCost, quantity)
		default:
			continue
		}

		// Zero-amount steps are dropped from the breakdown entirely.
		if amount.IsZero() {
			continue
		}

		lines = append(lines, types.BreakdownLine{
			Label:  stepLabel(step, quantity),
			Amount: amount,
		})
		total = total.Add(amount)
		fired = append(fired, "work_step:"+step.ID)
	}

	return lines, total, fired
}

// resolveQuantity resolves a per-unit/per-hour step's quantity from its
// configured source. Unresolved per-hour quantities default to 1 so a
// labor step never silently vanishes; unresolved per-unit quantities are
// 0, which drops the step.
func resolveQuantity(step types.WorkStep, set *condition.AnswerSet) decimal.Decimal {
	fallback := decimal.Zero
	if step.CostType == types.CostPerHour {
		fallback = decimal.NewFromInt(1)
	}

	src := step.Quantity
	if src == nil {
		return fallback
	}

	switch src.Kind {
	case types.QuantityConstant:
		return src.Value
	case types.QuantityFromField:
		if n, ok := set.Answer(src.Field).AsNumber(); ok {
			return decimal.NewFromFloat(n)
		}
	case types.QuantityFromSignal:
		if n, ok := set.Signal(src.SignalKey).AsNumber(); ok {
			return decimal.NewFromFloat(n)
		}
	}

	return fallback
}

// stepLabel formats the breakdown label. Unit and hourly steps carry the
// rate, quantity, and capitalized unit label.
func stepLabel(step types.WorkStep, quantity decimal.Decimal) string {
	switch step.CostType {
	case types.CostPerUnit, types.CostPerHour:
		return fmt.Sprintf("%s  %s x %s(%s)",
			step.Name, step.DefaultCost.String(), quantity.String(), unitLabel(step))
	default:
		return step.Name
	}
}

// unitLabel falls back to the cost type's natural measure when the step
// does not name one.
func unitLabel(step types.WorkStep) string {
	label := step.UnitLabel
	if label == "" {
		if step.CostType == types.CostPerHour {
			label = "hour"
		} else {
			label = "unit"
		}
	}
	return capitalize(label)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
