// Package output renders quote records for humans and machines.
package output

import (
	"encoding/json"
	"io"

	"quote-pricing/core/determinism"
	"quote-pricing/core/types"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable terminal table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the quote record
	Render(w io.Writer, record *QuoteRecord) error
}

// QuoteRecord is the complete output envelope for one priced request
type QuoteRecord struct {
	// QuoteID is a stable content-derived identifier
	QuoteID determinism.StableID `json:"quote_id"`

	// ServiceID identifies the priced service
	ServiceID string `json:"service_id"`

	// Result is the itemized price
	Result *types.PricingResult `json:"result"`

	// Trace is the audit side channel
	Trace *types.Trace `json:"trace,omitempty"`

	// Estimate is an optional cross-service estimate
	Estimate *types.PricingResult `json:"estimate,omitempty"`

	// Version is the engine version that produced the record
	Version string `json:"version"`
}

var quoteIDs = determinism.NewIDGenerator("quote")

// NewQuoteRecord assembles a record with a deterministic quote ID derived
// from the priced content, so re-running identical inputs reproduces the
// same record bytes.
func NewQuoteRecord(serviceID string, result *types.PricingResult, trace *types.Trace, version string) (*QuoteRecord, error) {
	content, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	hash := determinism.ComputeHash(content)

	return &QuoteRecord{
		QuoteID:   quoteIDs.Generate(serviceID, hash.Hex()),
		ServiceID: serviceID,
		Result:    result,
		Trace:     trace,
		Version:   version,
	}, nil
}

// Registry maps format names to formatters
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry creates a registry with the built-in formatters
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	r.Register(&CLIFormatter{})
	r.Register(&JSONFormatter{})
	return r
}

// Register adds a formatter
func (r *Registry) Register(f Formatter) {
	r.formatters[f.Format()] = f
}

// Get returns the formatter for a format
func (r *Registry) Get(format Format) (Formatter, bool) {
	f, ok := r.formatters[format]
	return f, ok
}
