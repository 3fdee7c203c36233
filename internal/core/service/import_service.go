package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
	"github.com/sutram/service-registry/internal/core/ports"
)

// ImportService runs uploads through decode, column resolution and coercion,
// then stores every row in one transaction.
type ImportService struct {
	reader ports.TableReader
	repo   ports.RecordRepository
	logger zerolog.Logger
}

func NewImportService(reader ports.TableReader, repo ports.RecordRepository, logger zerolog.Logger) *ImportService {
	return &ImportService{reader: reader, repo: repo, logger: logger}
}

// Import fails with domain.ErrUnsupportedFormat or domain.ErrUnreadableFile
// before anything is written. Bad cell values never fail an import.
func (s *ImportService) Import(ctx context.Context, filename string, data []byte) (*ports.ImportResult, error) {
	format, ok := ingest.FormatFromFilename(filename)
	if !ok {
		return nil, fmt.Errorf("import %q: %w", filename, domain.ErrUnsupportedFormat)
	}

	start := time.Now()
	table, err := s.reader.Read(format, data)
	if err != nil {
		s.logger.Warn().Err(err).Str("filename", filename).Msg("import rejected: unreadable file")
		return nil, err
	}

	records := table.Records()
	if err := s.repo.InsertMany(ctx, records); err != nil {
		return nil, fmt.Errorf("import %q: %w", filename, err)
	}

	res := &ports.ImportResult{
		Format:   format,
		Rows:     len(records),
		Duration: time.Since(start),
	}
	s.logger.Info().
		Str("filename", filename).
		Str("format", string(format)).
		Int("rows", res.Rows).
		Dur("duration", res.Duration).
		Msg("import completed")
	return res, nil
}
