package ports

import (
	"context"

	"github.com/sutram/service-registry/internal/core/domain"
)

// UserRepository defines account persistence. The account table may carry a
// plaintext column, a hash column, or both; implementations inspect the
// schema rather than assume it.
type UserRepository interface {
	// FindByUsername loads an account with its credential resolved. Returns
	// domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	CredentialSchema(ctx context.Context) (domain.CredentialSchema, error)
	AddHashColumn(ctx context.Context) error
	// Create inserts an account storing cred in its matching column. Returns
	// domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, username string, cred domain.Credential) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	// List returns every account ordered by username, without credentials.
	List(ctx context.Context) ([]domain.User, error)
	// LegacyPlaintext returns accounts with a plaintext secret and no hash.
	LegacyPlaintext(ctx context.Context) ([]domain.LegacyCredential, error)
	SetHash(ctx context.Context, userID int64, hash string) error
}
