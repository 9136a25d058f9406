// Package rules loads per-service pricing rules from HCL files.
//
// A rules file holds one or more service blocks:
//
//	service "window-cleaning" {
//	  currency       = "GBP"
//	  base_fee       = 25
//	  minimum_charge = 75
//
//	  work_step "frames" {
//	    name         = "Window frames"
//	    cost_type    = "per_unit"
//	    default_cost = 35
//	    unit_label   = "window"
//	    quantity {
//	      source = "form_field"
//	      field  = "window_count"
//	    }
//	  }
//
//	  addon "gutter" {
//	    label    = "Gutter clean"
//	    price    = 40
//	    keywords = ["gutter", "downpipe"]
//	  }
//
//	  multiplier {
//	    label  = "Repeat customer discount"
//	    factor = 0.9
//	    when {
//	      field = "repeat_customer"
//	      op    = "equals"
//	      value = true
//	    }
//	  }
//
//	  tax {
//	    enabled = true
//	    label   = "VAT"
//	    rate    = 20
//	  }
//	}
package rules

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"quote-pricing/core/estimate"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Service bundles everything a rules file configures for one service
type Service struct {
	// Rules is the engine-facing rule set
	Rules *types.PricingRules

	// Tax is the service's tax configuration
	Tax types.TaxConfig

	// Currency is the service's quote currency
	Currency types.Currency
}

// File is a parsed rules file
type File struct {
	// Services maps service IDs to their configuration
	Services map[string]*Service

	// Order preserves declaration order of the service blocks
	Order []string
}

// Source exposes the file as a rules source for cross-service estimation.
// Each service carries its own tax and currency so estimates are never
// priced under another service's configuration.
func (f *File) Source() estimate.StaticSource {
	src := make(estimate.StaticSource, len(f.Services))
	for id, svc := range f.Services {
		src[id] = estimate.ServiceConfig{
			Rules:    svc.Rules,
			Tax:      svc.Tax,
			Currency: svc.Currency,
		}
	}
	return src
}

// Load reads and parses a rules file from disk
func Load(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeRules, "failed to read rules file", err)
	}
	return Parse(src, path)
}

// Parse parses rules file content
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeRules, "failed to parse rules file", diags)
	}

	content, _, diags := hclFile.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "service", LabelNames: []string{"id"}},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeRules, "malformed rules file", diags)
	}

	file := &File{Services: make(map[string]*Service)}
	for _, block := range content.Blocks {
		if len(block.Labels) != 1 {
			continue
		}
		id := block.Labels[0]
		svc, err := parseService(id, block.Body)
		if err != nil {
			return nil, err
		}
		if _, dup := file.Services[id]; dup {
			return nil, errors.Newf(errors.TypeRules, "duplicate service %q in %s", id, filename)
		}
		file.Services[id] = svc
		file.Order = append(file.Order, id)
	}

	if len(file.Services) == 0 {
		return nil, errors.Newf(errors.TypeRules, "no service blocks in %s", filename)
	}
	return file, nil
}

func parseService(id string, body hcl.Body) (*Service, error) {
	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "currency"},
			{Name: "base_fee"},
			{Name: "minimum_charge"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "work_step", LabelNames: []string{"id"}},
			{Type: "addon", LabelNames: []string{"id"}},
			{Type: "multiplier"},
			{Type: "tax"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed service %q", id)
	}

	svc := &Service{
		Rules:    &types.PricingRules{ServiceID: id},
		Currency: types.CurrencyUSD,
	}
	if s := attrString(content.Attributes, "currency"); s != "" {
		svc.Currency = types.Currency(s)
	}
	svc.Rules.BaseFee = attrDecimal(content.Attributes, "base_fee")
	svc.Rules.MinimumCharge = attrDecimal(content.Attributes, "minimum_charge")

	for _, block := range content.Blocks {
		switch block.Type {
		case "work_step":
			step, err := parseWorkStep(block)
			if err != nil {
				return nil, err
			}
			svc.Rules.WorkSteps = append(svc.Rules.WorkSteps, *step)
		case "addon":
			addon, err := parseAddon(block)
			if err != nil {
				return nil, err
			}
			svc.Rules.Addons = append(svc.Rules.Addons, *addon)
		case "multiplier":
			mult, err := parseMultiplier(id, block.Body)
			if err != nil {
				return nil, err
			}
			svc.Rules.Multipliers = append(svc.Rules.Multipliers, *mult)
		case "tax":
			tax, err := parseTax(id, block.Body)
			if err != nil {
				return nil, err
			}
			svc.Tax = *tax
		}
	}

	return svc, nil
}

func parseWorkStep(block *hcl.Block) (*types.WorkStep, error) {
	id := block.Labels[0]
	content, _, diags := block.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "name"},
			{Name: "description"},
			{Name: "cost_type"},
			{Name: "default_cost"},
			{Name: "optional"},
			{Name: "unit_label"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "quantity"},
			{Type: "trigger"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed work_step %q", id)
	}

	step := &types.WorkStep{
		ID:          id,
		Name:        attrString(content.Attributes, "name"),
		Description: attrString(content.Attributes, "description"),
		CostType:    types.CostType(attrString(content.Attributes, "cost_type")),
		DefaultCost: attrDecimal(content.Attributes, "default_cost"),
		Optional:    attrBool(content.Attributes, "optional"),
		UnitLabel:   attrString(content.Attributes, "unit_label"),
	}
	if step.Name == "" {
		step.Name = id
	}
	if step.CostType == "" {
		step.CostType = types.CostFixed
	}

	for _, inner := range content.Blocks {
		switch inner.Type {
		case "quantity":
			qty, err := parseQuantity(id, inner.Body)
			if err != nil {
				return nil, err
			}
			step.Quantity = qty
		case "trigger":
			cond, err := parseCondition(id, inner.Body)
			if err != nil {
				return nil, err
			}
			step.Trigger = cond
		}
	}

	return step, nil
}

func parseQuantity(stepID string, body hcl.Body) (*types.QuantitySource, error) {
	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "source"},
			{Name: "field"},
			{Name: "signal"},
			{Name: "value"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed quantity block in work_step %q", stepID)
	}

	return &types.QuantitySource{
		Kind:      types.QuantitySourceKind(attrString(content.Attributes, "source")),
		Field:     attrString(content.Attributes, "field"),
		SignalKey: attrString(content.Attributes, "signal"),
		Value:     attrDecimal(content.Attributes, "value"),
	}, nil
}

func parseCondition(owner string, body hcl.Body) (*types.Condition, error) {
	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "field"},
			{Name: "op"},
			{Name: "value"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed condition in %q", owner)
	}

	cond := &types.Condition{
		Field: attrString(content.Attributes, "field"),
		Op:    types.Operator(attrString(content.Attributes, "op")),
	}
	if attr, ok := content.Attributes["value"]; ok {
		val, _ := attr.Expr.Value(nil)
		cond.Value = ctyToGo(val)
	}
	return cond, nil
}

func parseAddon(block *hcl.Block) (*types.Addon, error) {
	id := block.Labels[0]
	content, _, diags := block.Body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "label"},
			{Name: "price"},
			{Name: "keywords"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed addon %q", id)
	}

	addon := &types.Addon{
		ID:    id,
		Label: attrString(content.Attributes, "label"),
		Price: attrDecimal(content.Attributes, "price"),
	}
	if addon.Label == "" {
		addon.Label = id
	}
	if attr, ok := content.Attributes["keywords"]; ok {
		val, _ := attr.Expr.Value(nil)
		addon.Keywords = ctyToStrings(val)
	}
	return addon, nil
}

func parseMultiplier(serviceID string, body hcl.Body) (*types.Multiplier, error) {
	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "label"},
			{Name: "factor"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "when"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed multiplier in service %q", serviceID)
	}

	mult := &types.Multiplier{
		Label:  attrString(content.Attributes, "label"),
		Factor: attrDecimal(content.Attributes, "factor"),
	}
	for _, inner := range content.Blocks {
		if inner.Type == "when" {
			cond, err := parseCondition("multiplier "+mult.Label, inner.Body)
			if err != nil {
				return nil, err
			}
			mult.When = *cond
		}
	}
	return mult, nil
}

func parseTax(serviceID string, body hcl.Body) (*types.TaxConfig, error) {
	content, _, diags := body.PartialContent(&hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "enabled"},
			{Name: "label"},
			{Name: "rate"},
		},
	})
	if diags.HasErrors() {
		return nil, errors.Wrapf(errors.TypeRules, diags, "malformed tax block in service %q", serviceID)
	}

	// The engine expects percentage form; a fractional rate like 0.2
	// written in a rules file means 20%.
	rate := attrDecimal(content.Attributes, "rate")
	if rate.IsPositive() && rate.LessThan(decimal.NewFromInt(1)) {
		rate = rate.Mul(decimal.NewFromInt(100))
	}

	return &types.TaxConfig{
		Enabled: attrBool(content.Attributes, "enabled"),
		Label:   attrString(content.Attributes, "label"),
		Rate:    rate,
	}, nil
}

func attrString(attrs hcl.Attributes, name string) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}
	val, _ := attr.Expr.Value(nil)
	if s, ok := ctyToGo(val).(string); ok {
		return s
	}
	return ""
}

func attrBool(attrs hcl.Attributes, name string) bool {
	attr, ok := attrs[name]
	if !ok {
		return false
	}
	val, _ := attr.Expr.Value(nil)
	if b, ok := ctyToGo(val).(bool); ok {
		return b
	}
	return false
}

func attrDecimal(attrs hcl.Attributes, name string) decimal.Decimal {
	attr, ok := attrs[name]
	if !ok {
		return decimal.Zero
	}
	val, _ := attr.Expr.Value(nil)
	if d, ok := ctyToDecimal(val); ok {
		return d
	}
	return decimal.Zero
}
