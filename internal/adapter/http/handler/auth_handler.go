package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loginapp/internal/adapter/http/helper"
	"loginapp/internal/core/domain"
	"loginapp/internal/core/model/request"
	"loginapp/internal/core/model/response"
	"loginapp/internal/core/port"
)

type AuthHandler struct {
	svc            port.AuthService
	emailValidator port.EmailValidator
	logger         *zap.Logger
}

// NewAuthHandler builds the login adapter. emailValidator may be nil, in
// which case the email shape check is skipped.
func NewAuthHandler(svc port.AuthService, emailValidator port.EmailValidator, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Typed nils would pass an interface nil check and panic on first call.
	if port.IsMissing(svc) {
		svc = nil
	}

	if port.IsMissing(emailValidator) {
		emailValidator = nil
	}

	return &AuthHandler{
		svc:            svc,
		emailValidator: emailValidator,
		logger:         logger,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var params request.LoginRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		a.logger.Error("Error reading login request", zap.Error(err))
		helper.Send(c, helper.ServerError())
		return
	}

	helper.Send(c, a.Route(c.Request.Context(), &params))
}

// Route maps a login request to its HTTP response. Faults of any kind
// become a 500 and are only logged.
func (a *AuthHandler) Route(ctx context.Context, req *request.LoginRequest) (resp response.HTTPResponse) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Recovered from panic while authenticating", zap.Any("panic", r))
			resp = helper.ServerError()
		}
	}()

	if req == nil {
		a.logger.Error("Login request without body")
		return helper.ServerError()
	}

	if req.Email == "" {
		return helper.BadRequest(domain.NewMissingParamError("email"))
	}

	if a.emailValidator != nil && !a.emailValidator.IsValid(req.Email) {
		return helper.BadRequest(domain.NewInvalidParamError("email"))
	}

	if req.Password == "" {
		return helper.BadRequest(domain.NewMissingParamError("password"))
	}

	if a.svc == nil {
		a.logger.Error("Login handler has no auth service")
		return helper.ServerError()
	}

	outcome, err := a.svc.Authenticate(ctx, req.Email, req.Password)

	if err != nil {
		return a.fromError(err)
	}

	token, granted := outcome.Token()

	if !granted {
		return helper.Unauthorized()
	}

	return helper.OK(token)
}

func (a *AuthHandler) fromError(err error) response.HTTPResponse {
	if domain.IsValidationError(err) {
		return helper.BadRequest(err)
	}

	a.logger.Error("Error authenticating user", zap.Error(err))

	return helper.ServerError()
}
