package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// Load reads a CSV or XLSX file into a Table, detected by extension.
func Load(path string) (*Table, error) {
	log := logrus.WithFields(logrus.Fields{"component": "dataset", "path": path})

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		t   *Table
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		t, err = loadXLSX(path)
	default:
		t, err = loadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"rows": len(t.Rows), "columns": len(t.Columns)}).Debug("dataset loaded")
	return t, nil
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f, path)
}

// ReadCSV parses CSV data with a header row.
func ReadCSV(r io.Reader, source string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file", source)
		}
		return nil, fmt.Errorf("%s: read header: %w", source, err)
	}

	t := &Table{Source: source, Columns: cleanHeader(header)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		line, _ := cr.FieldPos(0)
		t.Rows = append(t.Rows, buildRow(line, t.Columns, rec))
	}
	return t, nil
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%s: read rows: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty sheet %q", path, sheets[0])
	}

	t := &Table{Source: path, Columns: cleanHeader(rows[0])}
	for i, rec := range rows[1:] {
		t.Rows = append(t.Rows, buildRow(i+2, t.Columns, rec))
	}
	return t, nil
}

// cleanHeader trims whitespace, quotes and a UTF-8 byte order mark from column names.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ReplaceAll(h, `"`, "")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func buildRow(line int, columns, rec []string) Row {
	values := make(map[string]string, len(columns))
	for i, c := range columns {
		if i < len(rec) {
			values[c] = rec[i]
		}
	}
	return Row{Line: line, values: values}
}
