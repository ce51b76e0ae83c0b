package port

import (
	"context"

	"loginapp/internal/core/domain"
)

// CredentialStore resolves an email to a user record. A missing user is
// reported with found == false and a nil error.
type CredentialStore interface {
	LoadByEmail(ctx context.Context, email string) (record domain.UserRecord, found bool, err error)
}

type PasswordVerifier interface {
	Compare(plaintext, hash string) (bool, error)
}

type TokenIssuer interface {
	Generate(ctx context.Context, userID domain.UserID) (domain.AccessToken, error)
}

type TokenPersister interface {
	UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error
}

type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (domain.AuthOutcome, error)
}

type RegistrationService interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
}

type CredentialStoreFunc func(ctx context.Context, email string) (domain.UserRecord, bool, error)

func (f CredentialStoreFunc) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	return f(ctx, email)
}

type PasswordVerifierFunc func(plaintext, hash string) (bool, error)

func (f PasswordVerifierFunc) Compare(plaintext, hash string) (bool, error) {
	return f(plaintext, hash)
}

type TokenIssuerFunc func(ctx context.Context, userID domain.UserID) (domain.AccessToken, error)

func (f TokenIssuerFunc) Generate(ctx context.Context, userID domain.UserID) (domain.AccessToken, error) {
	return f(ctx, userID)
}

type TokenPersisterFunc func(ctx context.Context, userID domain.UserID, token domain.AccessToken) error

func (f TokenPersisterFunc) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	return f(ctx, userID, token)
}
