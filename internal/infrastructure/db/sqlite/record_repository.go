package sqlite

import (
	"context"
	"fmt"

	"github.com/sutram/service-registry/internal/core/domain"
)

const insertRecord = `
	INSERT INTO servicos (registro, data_entrada, solicitante, endereco, zona, objeto, quantidade, mes, status)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// RecordRepository implements ports.RecordRepository on the servicos table.
type RecordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Create(ctx context.Context, rec domain.ServiceRecord) error {
	if _, err := r.db.ExecContext(ctx, insertRecord, rec.Values()...); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// InsertMany writes every record in one transaction.
func (r *RecordRepository) InsertMany(ctx context.Context, records []domain.ServiceRecord) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx, rec.Values()...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// List returns all records, newest first. Nulls left by older deployments
// come back as empty strings and zero.
func (r *RecordRepository) List(ctx context.Context) ([]domain.ServiceRecord, error) {
	query := `
		SELECT
			COALESCE(registro, ''),
			COALESCE(data_entrada, ''),
			COALESCE(solicitante, ''),
			COALESCE(endereco, ''),
			COALESCE(zona, ''),
			COALESCE(objeto, ''),
			COALESCE(quantidade, 0),
			COALESCE(mes, ''),
			COALESCE(status, '')
		FROM servicos
		ORDER BY rowid DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	records := []domain.ServiceRecord{}
	for rows.Next() {
		var rec domain.ServiceRecord
		if err := rows.Scan(
			&rec.Registro,
			&rec.DataEntrada,
			&rec.Solicitante,
			&rec.Endereco,
			&rec.Zona,
			&rec.Objeto,
			&rec.Quantidade,
			&rec.Mes,
			&rec.Status,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Distinct returns the distinct non-blank values of a column, ordered
// case-insensitively.
func (r *RecordRepository) Distinct(ctx context.Context, field domain.Field) ([]string, error) {
	if !isColumn(field) {
		return nil, fmt.Errorf("distinct: unknown field %q", field)
	}
	col := string(field)
	query := fmt.Sprintf(`
		SELECT DISTINCT %[1]s
		FROM servicos
		WHERE %[1]s IS NOT NULL AND TRIM(%[1]s) <> ''
		ORDER BY %[1]s COLLATE NOCASE
	`, col)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", col, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s: %w", col, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *RecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM servicos`)
	if err != nil {
		return 0, fmt.Errorf("delete records: %w", err)
	}
	return res.RowsAffected()
}

// isColumn guards identifiers interpolated into SQL.
func isColumn(field domain.Field) bool {
	for _, f := range domain.CanonicalFields {
		if f == field {
			return true
		}
	}
	return false
}
