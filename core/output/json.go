// Package output - JSON rendering
package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders the machine-readable quote record
type JSONFormatter struct{}

// Format returns the format type
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the record as indented JSON
func (f *JSONFormatter) Render(w io.Writer, record *QuoteRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(record)
}
