// Package filter selects and orders country groups according to a menu filter.
package filter

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrNotImplemented is returned for a filter ID or name that has no strategy.
var ErrNotImplemented = errors.New("filter not implemented")

// DefaultTopN is the number of countries kept by top and bottom filters.
const DefaultTopN = 10

// Kind is the selection behavior of a strategy.
type Kind int

const (
	Unfiltered Kind = iota
	Top
	Bottom
	General
)

func (k Kind) String() string {
	switch k {
	case Unfiltered:
		return "unfiltered"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case General:
		return "general"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Strategy describes one menu filter.
type Strategy struct {
	ID     int
	Name   string
	Label  string
	Kind   Kind
	Metric string
}

// DisplayLabel returns the menu label with the top-N count filled in.
func (s Strategy) DisplayLabel(n int) string {
	if strings.Contains(s.Label, "%d") {
		return fmt.Sprintf(s.Label, n)
	}
	return s.Label
}

// Table is the closed set of filters available for one dataset, in menu order.
type Table []Strategy

// Lookup returns the strategy with the given 1-based menu ID.
func (t Table) Lookup(id int) (Strategy, error) {
	for _, s := range t {
		if s.ID == id {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: option %d", ErrNotImplemented, id)
}

// ByName returns the strategy with the given name, case-insensitively.
func (t Table) ByName(name string) (Strategy, error) {
	for _, s := range t {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %q", ErrNotImplemented, name)
}

// Parse resolves either a numeric menu ID or a filter name.
func (t Table) Parse(v string) (Strategy, error) {
	v = strings.TrimSpace(v)
	if id, err := strconv.Atoi(v); err == nil {
		return t.Lookup(id)
	}
	return t.ByName(v)
}

// Group is a country aggregate that can be ranked.
type Group interface {
	Key() string
	// Metric returns the named value; ok is false when the value is null.
	Metric(name string) (value float64, ok bool, err error)
}

// Select applies s to groups and returns the selection in output order.
// The input slice is never reordered.
func Select[G Group](groups []G, s Strategy, n int) ([]G, error) {
	switch s.Kind {
	case Unfiltered:
		return append([]G(nil), groups...), nil
	case Top, Bottom:
	case General:
		return nil, fmt.Errorf("filter %s computes dataset statistics, not a selection", s.Name)
	default:
		return nil, fmt.Errorf("%w: kind %s", ErrNotImplemented, s.Kind)
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid top count %d", n)
	}

	entries := make([]entry[G], len(groups))
	for i, g := range groups {
		v, ok, err := g.Metric(s.Metric)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", s.Name, err)
		}
		entries[i] = entry[G]{group: g, key: g.Key(), value: v, ok: ok}
	}

	desc := s.Kind == Top
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok
		}
		if a.ok && a.value != b.value {
			if desc {
				return a.value > b.value
			}
			return a.value < b.value
		}
		return a.key < b.key
	})

	if n > len(entries) {
		n = len(entries)
	}
	out := make([]G, n)
	for i := range out {
		out[i] = entries[i].group
	}
	return out, nil
}

type entry[G Group] struct {
	group G
	key   string
	value float64
	ok    bool
}
