package rules

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"quote-pricing/core/types"
)

const fixtureHCL = `
service "window-cleaning" {
  currency       = "GBP"
  base_fee       = 25
  minimum_charge = 75

  work_step "frames" {
    name         = "Window frames"
    cost_type    = "per_unit"
    default_cost = 35
    unit_label   = "window"
    quantity {
      source = "form_field"
      field  = "window_count"
    }
  }

  work_step "interior" {
    name         = "Interior panes"
    cost_type    = "per_hour"
    default_cost = 45
    optional     = true
    quantity {
      source = "ai_signal"
      signal = "estimated_hours"
    }
    trigger {
      field = "include_interior"
      op    = "equals"
      value = true
    }
  }

  work_step "ladder" {
    name         = "Ladder setup"
    default_cost = 65
  }

  addon "gutter" {
    label    = "Gutter clean"
    price    = 40
    keywords = ["gutter", "downpipe"]
  }

  multiplier {
    label  = "Repeat customer discount"
    factor = 0.9
    when {
      field = "repeat_customer"
      op    = "equals"
      value = true
    }
  }

  tax {
    enabled = true
    label   = "VAT"
    rate    = 20
  }
}

service "lawn-care" {
  base_fee = 15
}
`

// TestParseFixture verifies the full rules file shape survives parsing.
func TestParseFixture(t *testing.T) {
	file, err := Parse([]byte(fixtureHCL), "fixture.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(file.Order) != 2 || file.Order[0] != "window-cleaning" || file.Order[1] != "lawn-care" {
		t.Fatalf("unexpected service order: %v", file.Order)
	}

	svc := file.Services["window-cleaning"]
	if svc.Currency != types.CurrencyGBP {
		t.Errorf("currency = %q, want GBP", svc.Currency)
	}
	if !svc.Rules.BaseFee.Equal(decimal.NewFromInt(25)) {
		t.Errorf("base fee = %s, want 25", svc.Rules.BaseFee)
	}
	if !svc.Rules.MinimumCharge.Equal(decimal.NewFromInt(75)) {
		t.Errorf("minimum charge = %s, want 75", svc.Rules.MinimumCharge)
	}

	if len(svc.Rules.WorkSteps) != 3 {
		t.Fatalf("work steps = %d, want 3", len(svc.Rules.WorkSteps))
	}
	frames := svc.Rules.WorkSteps[0]
	if frames.CostType != types.CostPerUnit || frames.UnitLabel != "window" {
		t.Errorf("frames step parsed wrong: %+v", frames)
	}
	if frames.Quantity == nil || frames.Quantity.Kind != types.QuantityFromField || frames.Quantity.Field != "window_count" {
		t.Errorf("frames quantity parsed wrong: %+v", frames.Quantity)
	}

	interior := svc.Rules.WorkSteps[1]
	if !interior.Optional || interior.Trigger == nil {
		t.Fatalf("interior step lost optional/trigger: %+v", interior)
	}
	if interior.Trigger.Op != types.OpEquals || interior.Trigger.Value != true {
		t.Errorf("interior trigger parsed wrong: %+v", interior.Trigger)
	}
	if interior.Quantity == nil || interior.Quantity.SignalKey != "estimated_hours" {
		t.Errorf("interior quantity parsed wrong: %+v", interior.Quantity)
	}

	ladder := svc.Rules.WorkSteps[2]
	if ladder.CostType != types.CostFixed {
		t.Errorf("cost_type should default to fixed, got %q", ladder.CostType)
	}
	if ladder.Name != "Ladder setup" {
		t.Errorf("ladder name = %q", ladder.Name)
	}

	if len(svc.Rules.Addons) != 1 {
		t.Fatalf("addons = %d, want 1", len(svc.Rules.Addons))
	}
	gutter := svc.Rules.Addons[0]
	if gutter.Label != "Gutter clean" || len(gutter.Keywords) != 2 || gutter.Keywords[1] != "downpipe" {
		t.Errorf("gutter addon parsed wrong: %+v", gutter)
	}

	if len(svc.Rules.Multipliers) != 1 {
		t.Fatalf("multipliers = %d, want 1", len(svc.Rules.Multipliers))
	}
	mult := svc.Rules.Multipliers[0]
	if !mult.Factor.Equal(decimal.RequireFromString("0.9")) {
		t.Errorf("multiplier factor = %s, want 0.9", mult.Factor)
	}
	if mult.When.Field != "repeat_customer" {
		t.Errorf("multiplier condition parsed wrong: %+v", mult.When)
	}

	if !svc.Tax.Enabled || svc.Tax.Label != "VAT" || !svc.Tax.Rate.Equal(decimal.NewFromInt(20)) {
		t.Errorf("tax parsed wrong: %+v", svc.Tax)
	}
}

// TestParseDefaults verifies optional attributes fall back sensibly.
func TestParseDefaults(t *testing.T) {
	file, err := Parse([]byte(fixtureHCL), "fixture.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	lawn := file.Services["lawn-care"]
	if lawn.Currency != types.CurrencyUSD {
		t.Errorf("currency should default to USD, got %q", lawn.Currency)
	}
	if lawn.Tax.Enabled {
		t.Error("tax should default to disabled")
	}
	if !lawn.Rules.MinimumCharge.IsZero() {
		t.Errorf("minimum charge should default to zero, got %s", lawn.Rules.MinimumCharge)
	}
}

// TestParseFractionalTaxRate verifies fractional rates normalize to
// percentage form.
func TestParseFractionalTaxRate(t *testing.T) {
	const src = `
service "x" {
  base_fee = 10
  tax {
    enabled = true
    label   = "VAT"
    rate    = 0.2
  }
}
`
	file, err := Parse([]byte(src), "frac.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := file.Services["x"].Tax.Rate; !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("rate = %s, want 20", got)
	}
}

// TestParseErrors covers the failure modes a bad file can hit.
func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"syntax error", `service "x" {`, "parse"},
		{"no services", `# empty file`, "no service blocks"},
		{"duplicate service", `
service "x" { base_fee = 1 }
service "x" { base_fee = 2 }
`, "duplicate service"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "bad.hcl")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

// TestSource verifies the parsed file works as an estimation source.
func TestSource(t *testing.T) {
	file, err := Parse([]byte(fixtureHCL), "fixture.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	src := file.Source()
	svc, ok := src.ConfigFor("window-cleaning")
	if !ok || svc.Rules == nil || svc.Rules.ServiceID != "window-cleaning" {
		t.Fatalf("ConfigFor(window-cleaning) = %+v, %v", svc, ok)
	}
	if svc.Currency != types.CurrencyGBP {
		t.Errorf("source lost service currency: %q", svc.Currency)
	}
	if !svc.Tax.Enabled || svc.Tax.Label != "VAT" {
		t.Errorf("source lost service tax config: %+v", svc.Tax)
	}
	if missing, ok := src.ConfigFor("missing"); ok || missing.Rules != nil {
		t.Errorf("ConfigFor(missing) = %+v, %v, want zero value, false", missing, ok)
	}
}

// TestValidateCleanFile verifies the fixture passes validation.
func TestValidateCleanFile(t *testing.T) {
	file, err := Parse([]byte(fixtureHCL), "fixture.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if issues := Validate(file); len(issues) != 0 {
		t.Errorf("unexpected issues: %v", issues)
	}
}

// TestValidateFindings covers the lint rules on a deliberately broken file.
func TestValidateFindings(t *testing.T) {
	const brokenHCL = `
service "broken" {
  base_fee       = -5
  minimum_charge = 10

  work_step "lonely" {
    cost_type    = "per_unit"
    default_cost = 10
    optional     = true
  }

  work_step "weird" {
    cost_type    = "hourly"
    default_cost = 10
  }

  addon "silent" {
    price = 20
  }

  multiplier {
    label  = "Broken rush"
    factor = 0
    when {
      field = "rush"
      op    = "matches"
      value = true
    }
  }

  tax {
    enabled = true
    rate    = 20
  }
}
`
	file, err := Parse([]byte(brokenHCL), "broken.hcl")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	issues := Validate(file)
	wants := []string{
		"base_fee",
		"optional step has no trigger",
		"quantity will fall back",
		`unknown cost_type "hourly"`,
		"no trigger keywords",
		"factor must be positive",
		`unknown operator "matches"`,
		"enabled tax has no label",
	}
	for _, want := range wants {
		found := false
		for _, issue := range issues {
			if strings.Contains(issue.String(), want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no issue mentioning %q in %v", want, issues)
		}
	}
}
