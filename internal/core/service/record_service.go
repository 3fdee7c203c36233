package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ingest"
	"github.com/sutram/service-registry/internal/core/ports"
)

type RecordService struct {
	repo   ports.RecordRepository
	logger zerolog.Logger
}

func NewRecordService(repo ports.RecordRepository, logger zerolog.Logger) *RecordService {
	return &RecordService{repo: repo, logger: logger}
}

// Create stores a manually entered record. The date and quantity go through
// the same coercion as imported cells.
func (s *RecordService) Create(ctx context.Context, input ports.RecordInput) (*domain.ServiceRecord, error) {
	qty := ingest.Int(input.Quantidade, 0)
	if qty < 0 {
		qty = 0
	}
	r := domain.ServiceRecord{
		Registro:    strings.TrimSpace(input.Registro),
		DataEntrada: ingest.Date(input.DataEntrada),
		Solicitante: strings.TrimSpace(input.Solicitante),
		Endereco:    strings.TrimSpace(input.Endereco),
		Zona:        strings.TrimSpace(input.Zona),
		Objeto:      strings.TrimSpace(input.Objeto),
		Quantidade:  qty,
		Mes:         strings.TrimSpace(input.Mes),
		Status:      strings.TrimSpace(input.Status),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return &r, nil
}

func (s *RecordService) List(ctx context.Context) ([]domain.ServiceRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ServiceRecord{}
	}
	return records, nil
}

func (s *RecordService) Suggestions(ctx context.Context, field string) ([]string, error) {
	f, ok := domain.SuggestionField(field)
	if !ok {
		return []string{}, nil
	}
	values, err := s.repo.Distinct(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("suggestions for %s: %w", f, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (s *RecordService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	s.logger.Warn().Int64("deleted", n).Msg("all records deleted")
	return n, nil
}
