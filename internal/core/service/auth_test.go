package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/port"
	"loginapp/internal/core/service"
)

type storeSpy struct {
	email  string
	calls  int
	record domain.UserRecord
	found  bool
	err    error
}

func (s *storeSpy) LoadByEmail(ctx context.Context, email string) (domain.UserRecord, bool, error) {
	s.calls++
	s.email = email
	return s.record, s.found, s.err
}

type verifierSpy struct {
	plaintext string
	hash      string
	calls     int
	valid     bool
	err       error
}

func (v *verifierSpy) Compare(plaintext, hash string) (bool, error) {
	v.calls++
	v.plaintext = plaintext
	v.hash = hash
	return v.valid, v.err
}

type issuerSpy struct {
	userIDs []domain.UserID
	token   domain.AccessToken
	err     error
}

func (i *issuerSpy) Generate(ctx context.Context, userID domain.UserID) (domain.AccessToken, error) {
	i.userIDs = append(i.userIDs, userID)
	return i.token, i.err
}

type persisterWrite struct {
	userID domain.UserID
	token  domain.AccessToken
}

type persisterSpy struct {
	writes []persisterWrite
	err    error
}

func (p *persisterSpy) UpdateAccessToken(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
	p.writes = append(p.writes, persisterWrite{userID: userID, token: token})
	return p.err
}

type AuthServiceTestSuite struct {
	suite.Suite
	store     *storeSpy
	verifier  *verifierSpy
	issuer    *issuerSpy
	persister *persisterSpy
	sut       *service.AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	RegisterTestingT(s.T())

	s.store = &storeSpy{
		record: domain.UserRecord{ID: 7, EncryptedPassword: "hashed_password"},
		found:  true,
	}
	s.verifier = &verifierSpy{valid: true}
	s.issuer = &issuerSpy{token: "any_token"}
	s.persister = &persisterSpy{}

	s.sut = service.NewAuthService(service.AuthDeps{
		Store:     s.store,
		Verifier:  s.verifier,
		Issuer:    s.issuer,
		Persister: s.persister,
	})
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestAuthenticate_MissingEmail() {
	_, err := s.sut.Authenticate(context.Background(), "", "any_password")

	var missing *domain.MissingParamError
	Expect(errors.As(err, &missing)).To(BeTrue())
	Expect(missing.Param).To(Equal("email"))
	Expect(s.store.calls).To(BeZero())
}

func (s *AuthServiceTestSuite) TestAuthenticate_MissingPassword() {
	_, err := s.sut.Authenticate(context.Background(), "any_email@mail.com", "")

	var missing *domain.MissingParamError
	Expect(errors.As(err, &missing)).To(BeTrue())
	Expect(missing.Param).To(Equal("password"))
	Expect(s.store.calls).To(BeZero())
}

func (s *AuthServiceTestSuite) TestAuthenticate_LoadsUserWithEmail() {
	_, err := s.sut.Authenticate(context.Background(), "any_email@mail.com", "any_password")

	assert.NoError(s.T(), err)
	Expect(s.store.email).To(Equal("any_email@mail.com"))
}

func (s *AuthServiceTestSuite) TestAuthenticate_UnknownEmailIsDenied() {
	s.store.found = false
	s.store.record = domain.UserRecord{}

	outcome, err := s.sut.Authenticate(context.Background(), "invalid_email@mail.com", "any_password")

	assert.NoError(s.T(), err)
	Expect(outcome.IsDenied()).To(BeTrue())
	Expect(s.verifier.calls).To(BeZero())
	Expect(s.issuer.userIDs).To(BeEmpty())
	Expect(s.persister.writes).To(BeEmpty())
}

func (s *AuthServiceTestSuite) TestAuthenticate_WrongPasswordIsDenied() {
	s.verifier.valid = false

	outcome, err := s.sut.Authenticate(context.Background(), "any_email@mail.com", "wrong_password")

	assert.NoError(s.T(), err)
	Expect(outcome.IsDenied()).To(BeTrue())
	Expect(s.verifier.plaintext).To(Equal("wrong_password"))
	Expect(s.verifier.hash).To(Equal("hashed_password"))
	Expect(s.issuer.userIDs).To(BeEmpty())
	Expect(s.persister.writes).To(BeEmpty())
}

func (s *AuthServiceTestSuite) TestAuthenticate_RepeatedDenialHasNoSideEffects() {
	s.verifier.valid = false

	for range 3 {
		outcome, err := s.sut.Authenticate(context.Background(), "any_email@mail.com", "wrong_password")

		assert.NoError(s.T(), err)
		Expect(outcome.IsDenied()).To(BeTrue())
	}

	Expect(s.verifier.calls).To(Equal(3))
	Expect(s.persister.writes).To(BeEmpty())
}

func (s *AuthServiceTestSuite) TestAuthenticate_Success() {
	outcome, err := s.sut.Authenticate(context.Background(), "valid_email@mail.com", "valid_password")

	assert.NoError(s.T(), err)

	token, ok := outcome.Token()
	Expect(ok).To(BeTrue())
	Expect(token).To(Equal(domain.AccessToken("any_token")))

	Expect(s.verifier.plaintext).To(Equal("valid_password"))
	Expect(s.issuer.userIDs).To(Equal([]domain.UserID{7}))
	Expect(s.persister.writes).To(Equal([]persisterWrite{{userID: 7, token: "any_token"}}))
}

func (s *AuthServiceTestSuite) TestAuthenticate_CollaboratorErrorsPropagateUnchanged() {
	boom := errors.New("boom")

	cases := map[string]func(){
		"store":     func() { s.store.err = boom },
		"verifier":  func() { s.verifier.err = boom },
		"issuer":    func() { s.issuer.err = boom },
		"persister": func() { s.persister.err = boom },
	}

	for name, arrange := range cases {
		s.Run(name, func() {
			s.SetupTest()
			arrange()

			g := NewWithT(s.T())

			outcome, err := s.sut.Authenticate(context.Background(), "valid_email@mail.com", "valid_password")

			g.Expect(err).To(BeIdenticalTo(boom))
			g.Expect(outcome.IsDenied()).To(BeTrue())
		})
	}
}

func (s *AuthServiceTestSuite) TestAuthenticate_IssuerFailureSkipsPersistence() {
	s.issuer.err = errors.New("boom")

	_, err := s.sut.Authenticate(context.Background(), "valid_email@mail.com", "valid_password")

	assert.Error(s.T(), err)
	Expect(s.persister.writes).To(BeEmpty())
}

func TestNewAuthService_MissingCollaborators(t *testing.T) {
	store := &storeSpy{found: true}
	verifier := &verifierSpy{valid: true}
	issuer := &issuerSpy{token: "t"}
	persister := &persisterSpy{}

	var nilStore *storeSpy

	cases := []struct {
		name    string
		deps    service.AuthDeps
		missing []string
	}{
		{
			name:    "no collaborators",
			deps:    service.AuthDeps{},
			missing: []string{"credential store", "password verifier", "token issuer", "token persister"},
		},
		{
			name:    "missing store",
			deps:    service.AuthDeps{Verifier: verifier, Issuer: issuer, Persister: persister},
			missing: []string{"credential store"},
		},
		{
			name:    "typed nil store",
			deps:    service.AuthDeps{Store: nilStore, Verifier: verifier, Issuer: issuer, Persister: persister},
			missing: []string{"credential store"},
		},
		{
			name:    "missing verifier",
			deps:    service.AuthDeps{Store: store, Issuer: issuer, Persister: persister},
			missing: []string{"password verifier"},
		},
		{
			name:    "verifier without operation",
			deps:    service.AuthDeps{Store: store, Verifier: port.PasswordVerifierFunc(nil), Issuer: issuer, Persister: persister},
			missing: []string{"password verifier"},
		},
		{
			name:    "missing issuer",
			deps:    service.AuthDeps{Store: store, Verifier: verifier, Persister: persister},
			missing: []string{"token issuer"},
		},
		{
			name:    "issuer without operation",
			deps:    service.AuthDeps{Store: store, Verifier: verifier, Issuer: port.TokenIssuerFunc(nil), Persister: persister},
			missing: []string{"token issuer"},
		},
		{
			name:    "missing persister",
			deps:    service.AuthDeps{Store: store, Verifier: verifier, Issuer: issuer},
			missing: []string{"token persister"},
		},
		{
			name:    "issuer and persister",
			deps:    service.AuthDeps{Store: store, Verifier: verifier},
			missing: []string{"token issuer", "token persister"},
		},
		{
			name:    "store and verifier",
			deps:    service.AuthDeps{Store: port.CredentialStoreFunc(nil), Issuer: issuer, Persister: persister},
			missing: []string{"credential store", "password verifier"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)

			sut := service.NewAuthService(tc.deps)

			var cfgErr *domain.ConfigurationError
			g.Expect(errors.As(sut.Err(), &cfgErr)).To(BeTrue())
			g.Expect(cfgErr.Missing).To(Equal(tc.missing))

			for range 2 {
				outcome, err := sut.Authenticate(context.Background(), "valid_email@mail.com", "valid_password")

				g.Expect(err).To(BeIdenticalTo(sut.Err()))
				g.Expect(outcome.IsDenied()).To(BeTrue())
			}

			g.Expect(store.calls).To(BeZero())
			g.Expect(persister.writes).To(BeEmpty())
		})
	}
}

func TestNewAuthService_FuncAdapters(t *testing.T) {
	RegisterTestingT(t)

	var persisted domain.AccessToken

	sut := service.NewAuthService(service.AuthDeps{
		Store: port.CredentialStoreFunc(func(ctx context.Context, email string) (domain.UserRecord, bool, error) {
			return domain.UserRecord{ID: 1, EncryptedPassword: "h"}, true, nil
		}),
		Verifier: port.PasswordVerifierFunc(func(plaintext, hash string) (bool, error) {
			return plaintext == "p" && hash == "h", nil
		}),
		Issuer: port.TokenIssuerFunc(func(ctx context.Context, userID domain.UserID) (domain.AccessToken, error) {
			return "abc", nil
		}),
		Persister: port.TokenPersisterFunc(func(ctx context.Context, userID domain.UserID, token domain.AccessToken) error {
			persisted = token
			return nil
		}),
	})

	Expect(sut.Err()).NotTo(HaveOccurred())

	outcome, err := sut.Authenticate(context.Background(), "e@x.com", "p")

	Expect(err).NotTo(HaveOccurred())

	token, ok := outcome.Token()
	Expect(ok).To(BeTrue())
	Expect(token).To(Equal(domain.AccessToken("abc")))
	Expect(persisted).To(Equal(token))
}
