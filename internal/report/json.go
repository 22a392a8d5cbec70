package report

import "encoding/json"

// Generate writes the run report as JSON.
func (r *JSONReporter) Generate(data Data) error {
	enc := json.NewEncoder(r.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
