// Package estimate produces secondary, lower-confidence estimates when a
// customer's text references a different configured service. Estimation
// re-enters the same pricing pipeline against that service's own rules;
// a missing or unresolvable reference degrades to an omitted estimate
// rather than an error.
package estimate

import (
	"quote-pricing/core/engine"
	"quote-pricing/core/types"
)

// CrossServiceConfidence is assigned to every cross-service estimate.
// These are priced from whatever signals happen to be available rather
// than a completed intake, so they carry reduced confidence.
const CrossServiceConfidence = 0.6

// crossServiceNote is attached to every cross-service estimate.
const crossServiceNote = "Preliminary estimate for an additional service; subject to confirmation."

// ServiceConfig is everything pricing a service needs: its rules plus
// the tax and currency configured alongside them.
type ServiceConfig struct {
	// Rules is the engine-facing rule set
	Rules *types.PricingRules

	// Tax is the service's own tax configuration
	Tax types.TaxConfig

	// Currency is the service's quote currency
	Currency types.Currency
}

// RulesSource resolves the configuration for a service
type RulesSource interface {
	// ConfigFor returns the configuration for serviceID, reporting whether
	// the service is configured
	ConfigFor(serviceID string) (ServiceConfig, bool)
}

// CrossService prices a referenced service with whatever answers and
// signals are available. The referenced service is priced under its own
// tax and currency, never the primary quote's. The returned result is
// tagged as an estimate; an unknown service yields nil results and no
// error.
func CrossService(src RulesSource, serviceID string, in engine.Input) (*types.PricingResult, *types.Trace) {
	if src == nil || serviceID == "" {
		return nil, nil
	}
	svc, ok := src.ConfigFor(serviceID)
	if !ok || svc.Rules == nil {
		return nil, nil
	}

	in.Tax = svc.Tax
	if svc.Currency != "" {
		in.Currency = svc.Currency
	}

	result, trace := engine.Calculate(svc.Rules, in)
	result.IsEstimate = true
	result.Confidence = CrossServiceConfidence
	if result.Notes == "" {
		result.Notes = crossServiceNote
	}
	return result, trace
}

// StaticSource is a RulesSource over an in-memory map, as produced by a
// loaded rules file
type StaticSource map[string]ServiceConfig

// ConfigFor implements RulesSource
func (s StaticSource) ConfigFor(serviceID string) (ServiceConfig, bool) {
	svc, ok := s[serviceID]
	return svc, ok
}
