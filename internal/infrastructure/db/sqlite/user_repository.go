package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sutram/service-registry/internal/core/domain"
)

const (
	usersTable   = "usuarios"
	colPlaintext = "senha"
	colHash      = "senha_hash"
)

// UserRepository implements ports.UserRepository on the usuarios table.
// Which credential columns exist is read from the schema on every call,
// since the table may be shared with older deployments.
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CredentialSchema(ctx context.Context) (domain.CredentialSchema, error) {
	cols, err := r.db.columns(ctx, usersTable)
	if err != nil {
		return domain.CredentialSchema{}, err
	}
	var schema domain.CredentialSchema
	for _, c := range cols {
		switch c.Name {
		case colHash:
			schema.Hashed = true
		case colPlaintext:
			schema.Plaintext = true
		}
	}
	return schema, nil
}

// AddHashColumn is a no-op when the column already exists.
func (r *UserRepository) AddHashColumn(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `ALTER TABLE usuarios ADD COLUMN senha_hash TEXT`)
	if err != nil && !isDuplicateColumn(err) {
		return fmt.Errorf("add hash column: %w", err)
	}
	return nil
}

// FindByUsername selects only the credential columns present and resolves
// them into one domain.Credential.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	schema, err := r.CredentialSchema(ctx)
	if err != nil {
		return nil, err
	}

	fields := []string{"id", "usuario"}
	if schema.Plaintext {
		fields = append(fields, "COALESCE(senha, '')")
	}
	if schema.Hashed {
		fields = append(fields, "COALESCE(senha_hash, '')")
	}
	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE usuario = ?`, strings.Join(fields, ", "))

	var (
		u           domain.User
		plain, hash string
	)
	dest := []any{&u.ID, &u.Username}
	if schema.Plaintext {
		dest = append(dest, &plain)
	}
	if schema.Hashed {
		dest = append(dest, &hash)
	}

	err = r.db.QueryRowContext(ctx, query, username).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.Credential = domain.ResolveCredential(hash, plain)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, username string, cred domain.Credential) (*domain.User, error) {
	var (
		col    string
		secret string
	)
	switch c := cred.(type) {
	case domain.Hashed:
		col, secret = colHash, c.Hash
	case domain.Plaintext:
		col, secret = colPlaintext, c.Secret
	default:
		return nil, fmt.Errorf("create user: unsupported credential %T", cred)
	}

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO usuarios (usuario, %s) VALUES (?, ?)`, col),
		username, secret,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user id: %w", err)
	}
	return &domain.User{ID: id, Username: username, Credential: cred}, nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, usuario FROM usuarios ORDER BY usuario ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// LegacyPlaintext returns rows with a non-blank plaintext secret and no hash.
func (r *UserRepository) LegacyPlaintext(ctx context.Context) ([]domain.LegacyCredential, error) {
	schema, err := r.CredentialSchema(ctx)
	if err != nil {
		return nil, err
	}
	if !schema.Plaintext {
		return nil, nil
	}

	query := `SELECT id, usuario, senha FROM usuarios WHERE TRIM(COALESCE(senha, '')) <> ''`
	if schema.Hashed {
		query += ` AND TRIM(COALESCE(senha_hash, '')) = ''`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list legacy credentials: %w", err)
	}
	defer rows.Close()

	var out []domain.LegacyCredential
	for rows.Next() {
		var lc domain.LegacyCredential
		if err := rows.Scan(&lc.UserID, &lc.Username, &lc.Secret); err != nil {
			return nil, fmt.Errorf("scan legacy credential: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (r *UserRepository) SetHash(ctx context.Context, userID int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE usuarios SET senha_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("set hash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set hash: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
