package sqlite

import (
	"context"
	"fmt"
)

// Column describes one column of a table.
type Column struct {
	Name    string
	Type    string
	NotNull bool
	PK      bool
}

// Table describes a user table and its columns.
type Table struct {
	Name    string
	Columns []Column
}

// Inspect lists every user table with its columns, in name order.
func (db *DB) Inspect(ctx context.Context) ([]Table, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(names))
	for _, n := range names {
		cols, err := db.columns(ctx, n)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Name: n, Columns: cols})
	}
	return tables, nil
}

// columns reads a table's columns via the pragma_table_info table-valued
// function so the table name can be bound as a parameter.
func (db *DB) columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, type, "notnull", pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			c       Column
			notNull int
			pk      int
		)
		if err := rows.Scan(&c.Name, &c.Type, &notNull, &pk); err != nil {
			return nil, fmt.Errorf("scan column of %s: %w", table, err)
		}
		c.NotNull, c.PK = notNull != 0, pk != 0
		cols = append(cols, c)
	}
	return cols, rows.Err()
}
