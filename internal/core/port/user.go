package port

import (
	"context"

	"loginapp/internal/core/domain"
)

// UserRepository is the full storage contract of a backend. Every backend
// also serves as the engine's CredentialStore and TokenPersister.
type UserRepository interface {
	CredentialStore
	TokenPersister

	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}
