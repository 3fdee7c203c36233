package ports

import (
	"context"

	"github.com/sutram/service-registry/internal/core/domain"
)

type AuthService interface {
	Bootstrap(ctx context.Context) error
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	MigrateLegacyPasswords(ctx context.Context) (int, error)
}
