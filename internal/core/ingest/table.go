// Package ingest turns loosely structured tabular data into ServiceRecords.
// Nothing here fails on bad cell data: unknown headers, blank cells and
// garbage values all degrade to empty strings or zero.
package ingest

import (
	"path/filepath"
	"strings"

	"github.com/sutram/service-registry/internal/core/domain"
)

// Format is an accepted upload format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename maps a file name to its format by extension,
// case-insensitively. ok is false for anything outside csv, xls and xlsx.
func FormatFromFilename(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, true
	case ".xls":
		return FormatXLS, true
	case ".xlsx":
		return FormatXLSX, true
	default:
		return "", false
	}
}

// Table is a decoded upload: one header row and the data rows beneath it.
// Cells hold string, float64, int or time.Time values, or nil for blanks.
// Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]any
}

// Records resolves the header once and coerces every row into a record.
func (t *Table) Records() []domain.ServiceRecord {
	cols := ResolveColumns(t.Header)
	out := make([]domain.ServiceRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, cols.Record(row))
	}
	return out
}
