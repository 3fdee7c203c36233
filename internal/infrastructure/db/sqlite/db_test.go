package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated database in a temporary directory.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db := openTestDB(t)
	require.NoError(t, db.Migrate(context.Background(), zerolog.Nop()), "failed to run migrations")
	return db
}

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "sutram.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func tableNames(t *testing.T, db *DB) []string {
	t.Helper()

	tables, err := db.Inspect(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(tables))
	for _, tbl := range tables {
		names = append(names, tbl.Name)
	}
	return names
}

func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	names := tableNames(t, db)
	require.Contains(t, names, "servicos")
	require.Contains(t, names, "usuarios")
	require.Contains(t, names, "goose_db_version")
}

func TestMigrations_Idempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.Migrate(context.Background(), zerolog.Nop()))
}

func TestMigrations_AdoptLegacyDatabase(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `
		CREATE TABLE usuarios (id INTEGER PRIMARY KEY AUTOINCREMENT, usuario TEXT UNIQUE, senha TEXT);
		INSERT INTO usuarios (usuario, senha) VALUES ('velho', 'segredo');
	`)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(ctx, zerolog.Nop()))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&n))
	require.Equal(t, 1, n, "legacy rows must survive migration")

	schema, err := NewUserRepository(db).CredentialSchema(ctx)
	require.NoError(t, err)
	require.True(t, schema.Plaintext)
	require.False(t, schema.Hashed)
}

func TestInspect(t *testing.T) {
	db := NewTestDB(t)

	tables, err := db.Inspect(context.Background())
	require.NoError(t, err)

	var servicos *Table
	for i := range tables {
		if tables[i].Name == "servicos" {
			servicos = &tables[i]
		}
	}
	require.NotNil(t, servicos)
	require.Len(t, servicos.Columns, 10)
	require.Equal(t, "id", servicos.Columns[0].Name)
	require.True(t, servicos.Columns[0].PK)
	require.Equal(t, "quantidade", servicos.Columns[7].Name)
	require.Equal(t, "INTEGER", servicos.Columns[7].Type)
}
