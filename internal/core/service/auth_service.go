package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sutram/service-registry/internal/core/domain"
	"github.com/sutram/service-registry/internal/core/ports"
)

// AuthService implements account bootstrap, login verification and account
// creation over a table whose credential columns vary between deployments.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Bootstrap guarantees a credential column and seeds the default
// administrator into an empty account table.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	schema, err := s.ensureSchema(ctx)
	if err != nil {
		return err
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := s.create(ctx, schema, domain.DefaultAdminUsername, domain.DefaultAdminPassword); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	s.logger.Warn().Str("username", domain.DefaultAdminUsername).Msg("seeded default administrator, change its password")
	return nil
}

// Authenticate returns the account when password matches. Unknown users and
// wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Info().Str("username", username).Msg("login rejected: unknown user")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if user.Credential == nil || !user.Credential.Verify(password) {
		s.logger.Info().Str("username", username).Msg("login rejected: bad password")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("login accepted")
	return user, nil
}

// CreateUser adds an account. The password is hashed when the table has a
// hash column and stored as legacy plaintext only when it does not.
func (s *AuthService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	schema, err := s.ensureSchema(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.create(ctx, schema, username, password)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user created")
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

// MigrateLegacyPasswords hashes every plaintext secret whose row has no hash
// yet, adding the hash column first when needed. Rows that already carry a
// hash are left alone, as are secrets too long for bcrypt. Returns the number
// of rows migrated.
func (s *AuthService) MigrateLegacyPasswords(ctx context.Context) (int, error) {
	schema, err := s.repo.CredentialSchema(ctx)
	if err != nil {
		return 0, fmt.Errorf("inspect credential schema: %w", err)
	}
	if !schema.Hashed {
		if err := s.repo.AddHashColumn(ctx); err != nil {
			return 0, fmt.Errorf("add hash column: %w", err)
		}
		s.logger.Info().Msg("added hash column to account table")
	}

	legacy, err := s.repo.LegacyPlaintext(ctx)
	if err != nil {
		return 0, fmt.Errorf("load legacy credentials: %w", err)
	}

	migrated, skipped := 0, 0
	for _, lc := range legacy {
		secret := strings.TrimSpace(lc.Secret)
		if secret == "" {
			continue
		}
		h, err := domain.HashPassword(secret)
		if errors.Is(err, domain.ErrPasswordTooLong) {
			s.logger.Warn().Int64("user_id", lc.UserID).Str("username", lc.Username).Msg("password too long to hash, left as plaintext")
			skipped++
			continue
		}
		if err != nil {
			return migrated, fmt.Errorf("hash password for %q: %w", lc.Username, err)
		}
		if err := s.repo.SetHash(ctx, lc.UserID, h.Hash); err != nil {
			return migrated, fmt.Errorf("store hash for %q: %w", lc.Username, err)
		}
		migrated++
	}

	s.logger.Info().Int("migrated", migrated).Int("skipped", skipped).Msg("legacy passwords migrated")
	return migrated, nil
}

// ensureSchema adds the hash column when the table has no credential
// column at all.
func (s *AuthService) ensureSchema(ctx context.Context) (domain.CredentialSchema, error) {
	schema, err := s.repo.CredentialSchema(ctx)
	if err != nil {
		return schema, fmt.Errorf("inspect credential schema: %w", err)
	}
	if schema.Empty() {
		if err := s.repo.AddHashColumn(ctx); err != nil {
			return schema, fmt.Errorf("add hash column: %w", err)
		}
		schema.Hashed = true
		s.logger.Info().Msg("account table had no credential column, added hash column")
	}
	return schema, nil
}

func (s *AuthService) create(ctx context.Context, schema domain.CredentialSchema, username, password string) (*domain.User, error) {
	var cred domain.Credential = domain.Plaintext{Secret: password}
	if schema.Hashed {
		h, err := domain.HashPassword(password)
		if err != nil {
			return nil, err
		}
		cred = h
	}
	return s.repo.Create(ctx, username, cred)
}
