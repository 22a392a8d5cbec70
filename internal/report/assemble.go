package report

import (
	"encoding/json"
	"fmt"
)

const documentIndent = "    "

// Documents is the serialized output of a run. Detail is nil for general
// statistics runs, which produce a single document.
type Documents struct {
	General []byte
	Detail  []byte
}

// HasDetail reports whether the run produced a detail document.
func (d Documents) HasDetail() bool {
	return d.Detail != nil
}

// Payloads returns the documents in submission order.
func (d Documents) Payloads() []string {
	out := []string{string(d.General)}
	if d.HasDetail() {
		out = append(out, string(d.Detail))
	}
	return out
}

// Assemble serializes the country records and their category details.
func Assemble(general, detail any) (Documents, error) {
	g, err := marshal("general", general)
	if err != nil {
		return Documents{}, err
	}
	d, err := marshal("detail", detail)
	if err != nil {
		return Documents{}, err
	}
	return Documents{General: g, Detail: d}, nil
}

// AssembleGeneral serializes a general statistics record as the only document.
func AssembleGeneral(general any) (Documents, error) {
	g, err := marshal("general", general)
	if err != nil {
		return Documents{}, err
	}
	return Documents{General: g}, nil
}

func marshal(name string, v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", documentIndent)
	if err != nil {
		return nil, fmt.Errorf("assemble %s document: %w", name, err)
	}
	return b, nil
}
