package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInputNotFound is returned when the dataset file does not exist.
	ErrInputNotFound = errors.New("input dataset not found")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMissingValue is returned when a required cell is empty.
	ErrMissingValue = errors.New("missing value")
)

// Table is a loaded dataset with named columns.
type Table struct {
	Source  string
	Columns []string
	Rows    []Row
}

// Row is a single data row. Line is the 1-based line in the source, header included.
type Row struct {
	Line   int
	values map[string]string
}

// NewRow builds a row from column/value pairs.
func NewRow(line int, values map[string]string) Row {
	return Row{Line: line, values: values}
}

// Require checks that every column in cols is present in the header.
func (t *Table) Require(cols ...string) error {
	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	var missing []string
	for _, c := range cols {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", t.Source, ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Head returns a table holding at most the first n rows. n <= 0 keeps all rows.
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Source: t.Source, Columns: t.Columns, Rows: t.Rows[:n]}
}

// Get returns the trimmed cell value, or "" when absent.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r.values[col])
}

// Required returns the cell value or ErrMissingValue when it is empty.
func (r Row) Required(col string) (string, error) {
	v := r.Get(col)
	if v == "" {
		return "", r.errorf(col, ErrMissingValue)
	}
	return v, nil
}

// Float parses a required numeric cell.
func (r Row) Float(col string) (float64, error) {
	v, err := r.Required(col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, r.errorf(col, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, r.errorf(col, fmt.Errorf("non-finite value %q", v))
	}
	return f, nil
}

// Int parses a required integer cell. Integral floats such as "2018.0" are accepted.
func (r Row) Int(col string) (int, error) {
	f, err := r.Float(col)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, r.errorf(col, fmt.Errorf("not an integer: %v", f))
	}
	return int(f), nil
}

// OptionalInt parses an integer cell that may be empty.
func (r Row) OptionalInt(col string) (*int, error) {
	if r.Get(col) == "" {
		return nil, nil
	}
	n, err := r.Int(col)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r Row) errorf(col string, err error) error {
	return fmt.Errorf("line %d: column %q: %w", r.Line, col, err)
}
