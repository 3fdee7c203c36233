// Package spreadsheet decodes uploaded CSV and Excel files into ingest tables
// and encodes records back out for download.
package spreadsheet

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
)

// Reader decodes uploads. It satisfies ports.TableReader.
type Reader struct {
	log zerolog.Logger
}

// NewReader returns a Reader that logs decode fallbacks to log.
func NewReader(log zerolog.Logger) *Reader {
	return &Reader{log: log}
}

// Read decodes data according to format. Every failure wraps
// domain.ErrUnreadableFile.
func (r *Reader) Read(format ingest.Format, data []byte) (*ingest.Table, error) {
	var (
		t   *ingest.Table
		err error
	)
	switch format {
	case ingest.FormatCSV:
		t, err = r.readCSV(data)
	case ingest.FormatXLSX:
		t, err = readXLSX(data)
	case ingest.FormatXLS:
		t, err = readXLS(data)
	default:
		return nil, fmt.Errorf("read %q: %w", format, domain.ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %v", format, domain.ErrUnreadableFile, err)
	}
	return t, nil
}

// newTable splits the first row off as the header.
func newTable(rows [][]any) (*ingest.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := make([]string, len(rows[0]))
	for i, v := range rows[0] {
		header[i] = ingest.String(v)
	}
	return &ingest.Table{Header: header, Rows: rows[1:]}, nil
}

func blankRow(row []any) bool {
	for _, v := range row {
		if ingest.String(v) != "" {
			return false
		}
	}
	return true
}
