package ports

import (
	"context"
	"io"
	"time"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
)

// TableReader decodes an uploaded file. Decode failures wrap
// domain.ErrUnreadableFile.
type TableReader interface {
	Read(format ingest.Format, data []byte) (*ingest.Table, error)
}

// RecordExporter encodes records for download.
type RecordExporter interface {
	WriteCSV(w io.Writer, records []domain.ServiceRecord) error
	WriteXLSX(w io.Writer, records []domain.ServiceRecord) error
}

// ImportResult summarizes a completed import.
type ImportResult struct {
	Format   ingest.Format
	Rows     int
	Duration time.Duration
}

// ImportService runs the ingestion pipeline for one uploaded file.
type ImportService interface {
	Import(ctx context.Context, filename string, data []byte) (*ImportResult, error)
}
