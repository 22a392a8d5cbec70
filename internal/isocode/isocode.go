// Package isocode resolves free-text country names to ISO 3166 alpha-2 codes.
package isocode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biter777/countries"
)

// ErrLookup is returned when a country name cannot be mapped to a code.
var ErrLookup = errors.New("unresolvable country name")

const usPrefix = "US:"

// Overrides covers names the ISO 3166 table does not carry under the
// spelling used by the measures dataset.
var Overrides = map[string]string{
	"Vietnam":        "VN",
	"South Korea":    "KR",
	"Taiwan":         "TW",
	"Macau":          "MO",
	"European Union": "EU",
	"North Korea":    "KP",
	"Moldova":        "MD",
	"Macedonia":      "MK",
	"Vatican City":   "VA",
	"Kosovo":         "XK",
	"Iran":           "IR",
	"Russia":         "RU",
	"Palestine":      "PS",
}

// LookupFunc maps a country name to an ISO 3166 alpha-2 code.
type LookupFunc func(name string) (string, bool)

// Resolver maps free-text country names to two-letter codes.
type Resolver struct {
	lookup    LookupFunc
	overrides map[string]string
}

// New creates a Resolver backed by the ISO 3166 table and the default overrides.
func New() *Resolver {
	return &Resolver{lookup: StandardLookup, overrides: Overrides}
}

// NewWithLookup creates a Resolver with a custom standard lookup.
func NewWithLookup(lookup LookupFunc, overrides map[string]string) *Resolver {
	return &Resolver{lookup: lookup, overrides: overrides}
}

// Resolve returns the uppercase alpha-2 code for name.
func (r *Resolver) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, usPrefix) {
		return "US", nil
	}
	if r.lookup != nil {
		if code, ok := r.lookup(name); ok {
			return code, nil
		}
	}
	if code, ok := r.overrides[name]; ok {
		return code, nil
	}
	return "", fmt.Errorf("%w: %q", ErrLookup, name)
}

// StandardLookup resolves name against the ISO 3166 country table.
func StandardLookup(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	c := countries.ByName(name)
	if c == countries.Unknown {
		return "", false
	}
	code := c.Alpha2()
	if len(code) != 2 {
		return "", false
	}
	return strings.ToUpper(code), true
}
