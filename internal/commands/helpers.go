package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/covidetl/internal/dataset"
	"github.com/ppiankov/covidetl/internal/filter"
	"github.com/ppiankov/covidetl/internal/isocode"
)

// enhanceError wraps an error with context and suggestions for common input issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case errors.Is(err, dataset.ErrInputNotFound):
		hint = "Check the dataset path: pass --data, set COVIDETL_BEDS_DATA/COVIDETL_MEASURES_DATA, or edit .covidetl.yaml"
	case errors.Is(err, dataset.ErrMissingColumn):
		hint = "The file does not have the expected header row. Make sure the right dataset was chosen"
	case errors.Is(err, isocode.ErrLookup):
		hint = "Country names must be ISO 3166 names; add unusual spellings to the isocode override table"
	case errors.Is(err, filter.ErrNotImplemented):
		hint = "Run 'covidetl menu' to list the available filters"
	case strings.Contains(msg, "no such host") || strings.Contains(msg, "connection refused"):
		hint = "The API endpoint is unreachable. Check --endpoint or COVIDETL_BEDS_URL/COVIDETL_MEASURES_URL"
	case strings.Contains(msg, "permission denied"):
		hint = "Check write permissions for the export directory"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}
