package sqlite

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/service"
)

func TestUserRepository_SchemaStartsWithoutCredentialColumn(t *testing.T) {
	repo := NewUserRepository(NewTestDB(t))
	ctx := context.Background()

	schema, err := repo.CredentialSchema(ctx)
	require.NoError(t, err)
	require.True(t, schema.Empty())

	require.NoError(t, repo.AddHashColumn(ctx))
	require.NoError(t, repo.AddHashColumn(ctx), "adding twice is harmless")

	schema, err = repo.CredentialSchema(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.CredentialSchema{Hashed: true}, schema)
}

func TestUserRepository_CreateFindAndDuplicate(t *testing.T) {
	repo := NewUserRepository(NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.AddHashColumn(ctx))

	h, err := domain.HashPassword("pw")
	require.NoError(t, err)

	created, err := repo.Create(ctx, "ana", h)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)
	require.IsType(t, domain.Hashed{}, found.Credential)
	require.True(t, found.Credential.Verify("pw"))

	_, err = repo.Create(ctx, "ana", h)
	require.ErrorIs(t, err, domain.ErrUserExists)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = repo.FindByUsername(ctx, "Ana")
	require.ErrorIs(t, err, domain.ErrUserNotFound, "usernames are case-sensitive")
}

func TestUserRepository_HashWinsOverPlaintext(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `ALTER TABLE usuarios ADD COLUMN senha TEXT`)
	require.NoError(t, err)
	require.NoError(t, repo.AddHashColumn(ctx))

	h, err := domain.HashPassword("novo")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO usuarios (usuario, senha, senha_hash) VALUES ('ambos', 'velho', ?), ('legado', ' velho ', ''), ('vazio', NULL, NULL)`,
		h.Hash)
	require.NoError(t, err)

	ambos, err := repo.FindByUsername(ctx, "ambos")
	require.NoError(t, err)
	require.True(t, ambos.Credential.Verify("novo"))
	require.False(t, ambos.Credential.Verify("velho"))

	legado, err := repo.FindByUsername(ctx, "legado")
	require.NoError(t, err)
	require.Equal(t, domain.Plaintext{Secret: "velho"}, legado.Credential)

	vazio, err := repo.FindByUsername(ctx, "vazio")
	require.NoError(t, err)
	require.Nil(t, vazio.Credential)
}

func TestUserRepository_LegacyPlaintextAndSetHash(t *testing.T) {
	db := NewTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `ALTER TABLE usuarios ADD COLUMN senha TEXT`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO usuarios (usuario, senha) VALUES ('a', 'um'), ('b', ''), ('c', 'tres')`)
	require.NoError(t, err)

	legacy, err := repo.LegacyPlaintext(ctx)
	require.NoError(t, err)
	require.Len(t, legacy, 2)
	require.Equal(t, "a", legacy[0].Username)

	require.NoError(t, repo.AddHashColumn(ctx))
	require.NoError(t, repo.SetHash(ctx, legacy[0].UserID, "$2a$10$placeholder"))

	legacy, err = repo.LegacyPlaintext(ctx)
	require.NoError(t, err)
	require.Len(t, legacy, 1)
	require.Equal(t, "c", legacy[0].Username)

	require.ErrorIs(t, repo.SetHash(ctx, 999, "x"), domain.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	repo := NewUserRepository(NewTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.AddHashColumn(ctx))

	for _, name := range []string{"zeca", "ana", "Bruno"} {
		_, err := repo.Create(ctx, name, domain.Hashed{Hash: "$2a$10$x"})
		require.NoError(t, err)
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "Bruno", users[0].Username)
	require.Equal(t, "ana", users[1].Username)
	require.Nil(t, users[0].Credential)
}

func TestAuthServiceOnSQLite(t *testing.T) {
	db := NewTestDB(t)
	svc := service.NewAuthService(NewUserRepository(db), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.Bootstrap(ctx))
	require.NoError(t, svc.Bootstrap(ctx), "bootstrap is idempotent")

	user, err := svc.Authenticate(ctx, "admin", "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)

	_, err = svc.Authenticate(ctx, "admin", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.CreateUser(ctx, "admin", "other")
	require.ErrorIs(t, err, domain.ErrUserExists)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}
