// Package intake loads customer intake documents from JSON.
//
// An intake document carries the submitted form answers, AI-extracted
// signals, and the customer's free-text project description:
//
//	{
//	  "service": "window-cleaning",
//	  "answers": {
//	    "window_count": 4,
//	    "include_interior": true,
//	    "repeat_customer": "yes"
//	  },
//	  "signals": {
//	    "estimated_hours": {"value": 2, "confidence": 0.8, "source": "transcript"}
//	  },
//	  "project_description": "please also clean the gutters",
//	  "cross_service_ref": "lawn-care"
//	}
//
// Signals may be plain values or wrapped objects with value/confidence/
// source fields; wrapped signals are unwrapped to their value so the
// engine sees the same shapes either way.
package intake

import (
	"encoding/json"
	"os"

	"quote-pricing/core/engine"
	"quote-pricing/core/types"
	"quote-pricing/internal/errors"
)

// Intake is a customer's pricing request as submitted
type Intake struct {
	// Service is the requested service's ID
	Service string `json:"service"`

	// Answers maps form field identifiers to submitted values
	Answers map[string]interface{} `json:"answers"`

	// Signals maps AI-extracted signal keys to values, possibly wrapped
	Signals map[string]interface{} `json:"signals"`

	// ProjectDescription is the customer's free-text description
	ProjectDescription string `json:"project_description"`

	// CrossServiceRef names another configured service the customer also
	// asked about, if any
	CrossServiceRef string `json:"cross_service_ref,omitempty"`
}

// Load reads and parses an intake document from disk
func Load(path string) (*Intake, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypeIntake, "failed to read intake file", err)
	}
	return Parse(data)
}

// Parse parses intake document content
func Parse(data []byte) (*Intake, error) {
	var in Intake
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.TypeIntake, "failed to parse intake file", err)
	}
	in.Signals = unwrapSignals(in.Signals)
	return &in, nil
}

// Input assembles the engine input for this intake under a service's tax
// and currency configuration.
func (in *Intake) Input(tax types.TaxConfig, currency types.Currency) engine.Input {
	return engine.Input{
		Answers:            in.Answers,
		Signals:            in.Signals,
		ProjectDescription: in.ProjectDescription,
		Tax:                tax,
		Currency:           currency,
	}
}

// unwrapSignals reduces wrapped signal objects to their inner value.
// A map is treated as a wrapper only when it has a "value" key; other
// maps pass through untouched.
func unwrapSignals(signals map[string]interface{}) map[string]interface{} {
	if signals == nil {
		return nil
	}
	out := make(map[string]interface{}, len(signals))
	for key, raw := range signals {
		if wrapper, ok := raw.(map[string]interface{}); ok {
			if inner, ok := wrapper["value"]; ok {
				out[key] = inner
				continue
			}
		}
		out[key] = raw
	}
	return out
}
