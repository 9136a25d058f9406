// Package types - Pricing rules configuration
package types

import "github.com/shopspring/decimal"

// CostType determines how a work step's amount is computed
type CostType string

const (
	// CostFixed bills the step at its default cost regardless of quantity
	CostFixed CostType = "fixed"

	// CostPerUnit bills the default cost per resolved unit
	CostPerUnit CostType = "per_unit"

	// CostPerHour bills the default cost per resolved hour
	CostPerHour CostType = "per_hour"
)

// QuantitySourceKind identifies where a work step's quantity comes from
type QuantitySourceKind string

const (
	// QuantityFromField reads a numeric customer form answer
	QuantityFromField QuantitySourceKind = "form_field"

	// QuantityConstant uses a configured literal
	QuantityConstant QuantitySourceKind = "constant"

	// QuantityFromSignal reads an AI-extracted structured signal
	QuantityFromSignal QuantitySourceKind = "ai_signal"
)

// QuantitySource resolves the quantity for per-unit and per-hour steps
type QuantitySource struct {
	// Kind selects the resolution mechanism
	Kind QuantitySourceKind `json:"kind"`

	// Field is the form answer key (form_field)
	Field string `json:"field,omitempty"`

	// SignalKey is the extracted signal key (ai_signal)
	SignalKey string `json:"signal_key,omitempty"`

	// Value is the literal quantity (constant)
	Value decimal.Decimal `json:"value,omitempty"`
}

// Operator names a comparison applied by a condition
type Operator string

const (
	OpEquals         Operator = "equals"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
	OpExists         Operator = "exists"
	OpNotExists      Operator = "not_exists"
	OpContains       Operator = "contains"
)

// Known reports whether the operator is one the evaluator understands.
// Rules files are rejected at load time when an operator is unknown, so
// an unrecognized name never silently evaluates to false in production.
func (o Operator) Known() bool {
	switch o {
	case OpEquals, OpGreaterThan, OpGreaterOrEqual, OpLessThan,
		OpLessOrEqual, OpExists, OpNotExists, OpContains:
		return true
	default:
		return false
	}
}

// Condition is a single named comparison against the answer set
type Condition struct {
	// Field is the answer or signal key to inspect
	Field string `json:"field"`

	// Op is the comparison operator
	Op Operator `json:"op"`

	// Value is the comparison target; absent for exists/not_exists
	Value interface{} `json:"value,omitempty"`
}

// WorkStep is a single billable line of work
type WorkStep struct {
	// ID uniquely identifies the step within its service
	ID string `json:"id"`

	// Name is the customer-facing display name
	Name string `json:"name"`

	// Description provides additional context
	Description string `json:"description,omitempty"`

	// CostType selects the cost model
	CostType CostType `json:"cost_type"`

	// DefaultCost is the fixed amount or per-unit/per-hour rate
	DefaultCost decimal.Decimal `json:"default_cost"`

	// Optional steps apply only when their trigger condition holds
	Optional bool `json:"optional,omitempty"`

	// Quantity resolves the multiplier for per_unit/per_hour steps
	Quantity *QuantitySource `json:"quantity,omitempty"`

	// UnitLabel names the billing unit in line labels (e.g. "window")
	UnitLabel string `json:"unit_label,omitempty"`

	// Trigger gates the step; present only when Optional is set
	Trigger *Condition `json:"trigger,omitempty"`
}

// Addon is an optional priced extra detected from free text
type Addon struct {
	// ID uniquely identifies the add-on within its service
	ID string `json:"id"`

	// Label is the customer-facing name
	Label string `json:"label"`

	// Price is the fixed add-on price
	Price decimal.Decimal `json:"price"`

	// Keywords trigger the add-on when found in the project description
	Keywords []string `json:"keywords"`
}

// Multiplier is a conditional proportional adjustment to the subtotal.
// Position in the configured list is the application order.
type Multiplier struct {
	// When gates the multiplier
	When Condition `json:"when"`

	// Factor scales the running subtotal when the condition holds
	Factor decimal.Decimal `json:"factor"`

	// Label names the adjustment in the breakdown
	Label string `json:"label"`
}

// TaxConfig describes how tax is applied to the final subtotal
type TaxConfig struct {
	// Enabled turns tax calculation on
	Enabled bool `json:"enabled"`

	// Label is the customer-facing tax name (e.g. "VAT")
	Label string `json:"label,omitempty"`

	// Rate is in percentage form: 20 means 20%
	Rate decimal.Decimal `json:"rate,omitempty"`
}

// PricingRules is the complete configured rule set for one service.
// It is immutable per calculation; the engine never mutates it.
type PricingRules struct {
	// ServiceID identifies the service these rules price
	ServiceID string `json:"service_id"`

	// BaseFee is charged on every quote
	BaseFee decimal.Decimal `json:"base_fee"`

	// MinimumCharge floors the subtotal after all adjustments
	MinimumCharge decimal.Decimal `json:"minimum_charge"`

	// WorkSteps apply in declared order
	WorkSteps []WorkStep `json:"work_steps,omitempty"`

	// Addons are detectable optional extras
	Addons []Addon `json:"addons,omitempty"`

	// Multipliers apply in declared order
	Multipliers []Multiplier `json:"multipliers,omitempty"`
}
