// Package export persists assembled documents under named output slots.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// Placeholder is replaced by the slot name in a path template.
const Placeholder = "#"

// DefaultDir is the export root used when none is configured.
const DefaultDir = "export"

// Slot suffixes appended to the filter name.
const (
	SuffixGeneral  = "_GENERAL"
	SuffixTypes    = "_TYPES"
	SuffixMeasures = "_MEASURES"
)

// Writer writes documents to paths derived from a template such as
// "export/beds/#.json".
type Writer struct {
	Template string
}

// NewWriter returns a Writer rooted at dir/dataset.
func NewWriter(dir, dataset string) (*Writer, error) {
	if dir == "" {
		dir = DefaultDir
	}
	return NewTemplateWriter(filepath.Join(dir, dataset, Placeholder+".json"))
}

// NewTemplateWriter returns a Writer for an explicit path template.
func NewTemplateWriter(template string) (*Writer, error) {
	if !strings.Contains(template, Placeholder) {
		return nil, fmt.Errorf("export template %q has no %q placeholder", template, Placeholder)
	}
	return &Writer{Template: template}, nil
}

// Slot returns the path for the named slot.
func (w *Writer) Slot(name string) string {
	return strings.Replace(w.Template, Placeholder, name, 1)
}

// Write stores data under the named slot, creating parent directories.
func (w *Writer) Write(name string, data []byte) (string, error) {
	if name == "" {
		return "", errors.New("export slot name is empty")
	}
	path := w.Slot(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"component": "export",
		"path":      path,
		"bytes":     len(data),
	}).Debug("wrote export file")
	return path, nil
}
