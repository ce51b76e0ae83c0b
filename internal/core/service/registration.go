package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
)

type RegistrationService struct {
	repo   port.UserRepository
	hasher port.PasswordHasher
	err    error
}

func NewRegistrationService(repo port.UserRepository, hasher port.PasswordHasher) *RegistrationService {
	svc := &RegistrationService{repo: repo, hasher: hasher}

	var missing []string

	if port.IsMissing(repo) {
		missing = append(missing, "user repository")
	}

	if port.IsMissing(hasher) {
		missing = append(missing, "password hasher")
	}

	if len(missing) > 0 {
		svc.err = &domain.ConfigurationError{Component: "registration service", Missing: missing}
	}

	return svc
}

func (rs *RegistrationService) Err() error {
	return rs.err
}

func (rs *RegistrationService) Register(ctx context.Context, email, password string) (domain.User, error) {
	if rs.err != nil {
		return domain.User{}, rs.err
	}

	if email == "" {
		return domain.User{}, domain.NewMissingParamError("email")
	}

	if password == "" {
		return domain.User{}, domain.NewMissingParamError("password")
	}

	_, found, err := rs.repo.LoadByEmail(ctx, email)

	if err != nil {
		return domain.User{}, err
	}

	if found {
		return domain.User{}, domain.ErrUserAlreadyExists
	}

	encrypted, err := rs.hasher.Hash(password)

	if err != nil {
		return domain.User{}, fmt.Errorf("error creating encrypted password: %w", err)
	}

	now := time.Now().UTC()

	user := domain.User{
		UUID:              uuid.New(),
		Email:             email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	return rs.repo.Create(ctx, user)
}
