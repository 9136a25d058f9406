// Package rules - Load-time validation
// The engine itself is total and silently treats malformed rules as
// non-firing, so mis-specified rule files must be caught here, at the
// edge, where failing loudly is cheap.
package rules

import (
	"fmt"

	"quote-pricing/core/types"
)

// Issue is a single validation finding
type Issue struct {
	// ServiceID is the service the issue belongs to
	ServiceID string

	// Subject names the offending rule element
	Subject string

	// Message describes the problem
	Message string
}

// String renders the issue for CLI output
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.ServiceID, i.Subject, i.Message)
}

// Validate lints a parsed rules file. An empty result means the file is
// safe to price with.
func Validate(file *File) []Issue {
	var issues []Issue
	for _, id := range file.Order {
		issues = append(issues, validateService(id, file.Services[id])...)
	}
	return issues
}

func validateService(id string, svc *Service) []Issue {
	var issues []Issue
	add := func(subject, format string, args ...interface{}) {
		issues = append(issues, Issue{ServiceID: id, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	rules := svc.Rules
	if rules.BaseFee.IsNegative() {
		add("base_fee", "must not be negative, got %s", rules.BaseFee)
	}
	if rules.MinimumCharge.IsNegative() {
		add("minimum_charge", "must not be negative, got %s", rules.MinimumCharge)
	}

	seenSteps := make(map[string]bool)
	for _, step := range rules.WorkSteps {
		subject := "work_step " + step.ID
		if seenSteps[step.ID] {
			add(subject, "duplicate id")
		}
		seenSteps[step.ID] = true

		switch step.CostType {
		case types.CostFixed, types.CostPerUnit, types.CostPerHour:
		default:
			add(subject, "unknown cost_type %q", step.CostType)
		}
		if step.DefaultCost.IsNegative() {
			add(subject, "default_cost must not be negative, got %s", step.DefaultCost)
		}
		if step.Optional && step.Trigger == nil {
			add(subject, "optional step has no trigger condition and can never apply")
		}
		if !step.Optional && step.Trigger != nil {
			add(subject, "trigger condition is ignored on non-optional steps")
		}
		if step.Trigger != nil {
			issues = append(issues, validateCondition(id, subject, *step.Trigger)...)
		}
		if step.Quantity != nil {
			issues = append(issues, validateQuantity(id, subject, step)...)
		}
		if step.CostType != types.CostFixed && step.Quantity == nil {
			add(subject, "%s step has no quantity source; quantity will fall back to its default", step.CostType)
		}
	}

	seenAddons := make(map[string]bool)
	for _, addon := range rules.Addons {
		subject := "addon " + addon.ID
		if seenAddons[addon.ID] {
			add(subject, "duplicate id")
		}
		seenAddons[addon.ID] = true

		if len(addon.Keywords) == 0 {
			add(subject, "has no trigger keywords and can never be detected")
		}
		if addon.Price.IsNegative() {
			add(subject, "price must not be negative, got %s", addon.Price)
		}
	}

	for i, mult := range rules.Multipliers {
		subject := fmt.Sprintf("multiplier[%d] %s", i, mult.Label)
		if !mult.Factor.IsPositive() {
			add(subject, "factor must be positive, got %s", mult.Factor)
		}
		issues = append(issues, validateCondition(id, subject, mult.When)...)
	}

	if svc.Tax.Enabled {
		if svc.Tax.Rate.IsNegative() {
			add("tax", "rate must not be negative, got %s", svc.Tax.Rate)
		}
		if svc.Tax.Label == "" {
			add("tax", "enabled tax has no label")
		}
	}

	return issues
}

func validateCondition(serviceID, subject string, cond types.Condition) []Issue {
	var issues []Issue
	if cond.Field == "" {
		issues = append(issues, Issue{ServiceID: serviceID, Subject: subject, Message: "condition has no field"})
	}
	if !cond.Op.Known() {
		issues = append(issues, Issue{ServiceID: serviceID, Subject: subject,
			Message: fmt.Sprintf("unknown operator %q", cond.Op)})
	}
	needsValue := cond.Op != types.OpExists && cond.Op != types.OpNotExists
	if needsValue && cond.Op.Known() && cond.Value == nil {
		issues = append(issues, Issue{ServiceID: serviceID, Subject: subject,
			Message: fmt.Sprintf("operator %q requires a comparison value", cond.Op)})
	}
	return issues
}

func validateQuantity(serviceID, subject string, step types.WorkStep) []Issue {
	var issues []Issue
	add := func(format string, args ...interface{}) {
		issues = append(issues, Issue{ServiceID: serviceID, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	src := step.Quantity
	switch src.Kind {
	case types.QuantityFromField:
		if src.Field == "" {
			add("form_field quantity has no field")
		}
	case types.QuantityFromSignal:
		if src.SignalKey == "" {
			add("ai_signal quantity has no signal key")
		}
	case types.QuantityConstant:
		if src.Value.IsNegative() {
			add("constant quantity must not be negative, got %s", src.Value)
		}
	default:
		add("unknown quantity source %q", src.Kind)
	}
	return issues
}
