package ports

import (
	"context"

	"github.com/sutram/service-registry/internal/core/domain"
)

// RecordInput carries the raw form values of a manually entered record.
type RecordInput struct {
	Registro    string
	DataEntrada string
	Solicitante string
	Endereco    string
	Zona        string
	Objeto      string
	Quantidade  string
	Mes         string
	Status      string
}

// RecordService defines use-case operations for service records.
type RecordService interface {
	Create(ctx context.Context, input RecordInput) (*domain.ServiceRecord, error)
	List(ctx context.Context) ([]domain.ServiceRecord, error)
	// Suggestions returns autocomplete values for a field name. Unknown
	// fields yield an empty, non-nil slice.
	Suggestions(ctx context.Context, field string) ([]string, error)
	DeleteAll(ctx context.Context) (int64, error)
}
