package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
	tel "loginapp/internal/core/telemetry"
)

const authServiceName = "auth"

type AuthDeps struct {
	Store     port.CredentialStore
	Verifier  port.PasswordVerifier
	Issuer    port.TokenIssuer
	Persister port.TokenPersister
	Telemetry port.Telemetry
}

type AuthService struct {
	store     port.CredentialStore
	verifier  port.PasswordVerifier
	issuer    port.TokenIssuer
	persister port.TokenPersister
	telemetry port.Telemetry
	err       error
}

// NewAuthService checks the collaborators once. A service built with missing
// collaborators is still returned, but Err reports the fault and every call
// to Authenticate fails with it.
func NewAuthService(deps AuthDeps) *AuthService {
	telemetry := deps.Telemetry

	if port.IsMissing(telemetry) {
		telemetry = tel.NewNoOpProbe()
	}

	svc := &AuthService{
		store:     deps.Store,
		verifier:  deps.Verifier,
		issuer:    deps.Issuer,
		persister: deps.Persister,
		telemetry: telemetry,
	}

	var missing []string

	if port.IsMissing(deps.Store) {
		missing = append(missing, "credential store")
	}

	if port.IsMissing(deps.Verifier) {
		missing = append(missing, "password verifier")
	}

	if port.IsMissing(deps.Issuer) {
		missing = append(missing, "token issuer")
	}

	if port.IsMissing(deps.Persister) {
		missing = append(missing, "token persister")
	}

	if len(missing) > 0 {
		svc.err = &domain.ConfigurationError{Component: "auth service", Missing: missing}
	}

	return svc
}

func (as *AuthService) Err() error {
	return as.err
}

func (as *AuthService) Authenticate(ctx context.Context, email, password string) (domain.AuthOutcome, error) {
	if as.err != nil {
		return domain.Denied(), as.err
	}

	start := time.Now()

	ctx, span := as.telemetry.StartServiceSpan(ctx, authServiceName, "authenticate", nil)
	defer span.End()

	outcome, err := as.authenticate(ctx, email, password)

	as.telemetry.RecordServiceOperation(ctx, authServiceName, "authenticate", outcomeLabel(outcome, err), time.Since(start), err)

	return outcome, err
}

func (as *AuthService) authenticate(ctx context.Context, email, password string) (domain.AuthOutcome, error) {
	if email == "" {
		return domain.Denied(), domain.NewMissingParamError("email")
	}

	if password == "" {
		return domain.Denied(), domain.NewMissingParamError("password")
	}

	user, found, err := as.store.LoadByEmail(ctx, email)

	if err != nil {
		return domain.Denied(), err
	}

	if !found {
		zap.L().Debug("Auth#Authenticate", zap.String("result", "unknown_email"))
		return domain.Denied(), nil
	}

	valid, err := as.verifier.Compare(password, user.EncryptedPassword)

	if err != nil {
		return domain.Denied(), err
	}

	if !valid {
		zap.L().Debug("Auth#Authenticate", zap.String("result", "password_mismatch"), zap.Int("user_id", int(user.ID)))
		return domain.Denied(), nil
	}

	token, err := as.issuer.Generate(ctx, user.ID)

	if err != nil {
		return domain.Denied(), err
	}

	if err := as.persister.UpdateAccessToken(ctx, user.ID, token); err != nil {
		return domain.Denied(), err
	}

	return domain.Granted(token), nil
}

func outcomeLabel(outcome domain.AuthOutcome, err error) string {
	switch {
	case domain.IsValidationError(err):
		return "invalid"
	case err != nil:
		return "error"
	case outcome.IsDenied():
		return "denied"
	default:
		return "granted"
	}
}
