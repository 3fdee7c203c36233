package ports

import (
	"context"

	"github.com/sutram/service-registry/internal/core/domain"
)

// RecordRepository defines persistence operations for service records.
type RecordRepository interface {
	Create(ctx context.Context, r domain.ServiceRecord) error
	// InsertMany stores all records in one transaction; either every record
	// is written or none is.
	InsertMany(ctx context.Context, records []domain.ServiceRecord) error
	// List returns every record, newest first, with nulls coalesced.
	List(ctx context.Context) ([]domain.ServiceRecord, error)
	// Distinct returns the distinct non-blank values of field, ordered
	// case-insensitively.
	Distinct(ctx context.Context, field domain.Field) ([]string, error)
	DeleteAll(ctx context.Context) (int64, error)
}
