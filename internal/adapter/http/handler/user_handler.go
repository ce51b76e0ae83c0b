package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"loginapp/internal/adapter/http/helper"
	"loginapp/internal/core/domain"
	"loginapp/internal/core/model/request"
	"loginapp/internal/core/model/response"
	"loginapp/internal/core/port"
)

type UserHandler struct {
	svc       port.RegistrationService
	validator port.StructValidator
	logger    *zap.Logger
}

func NewUserHandler(svc port.RegistrationService, validator port.StructValidator, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if port.IsMissing(svc) {
		svc = nil
	}

	if port.IsMissing(validator) {
		validator = nil
	}

	return &UserHandler{
		svc:       svc,
		validator: validator,
		logger:    logger,
	}
}

func (h *UserHandler) SignUp(c *gin.Context) {
	var params request.SignUpRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		h.logger.Error("Error reading signup request", zap.Error(err))
		helper.Send(c, helper.ServerError())
		return
	}

	if h.validator != nil {
		if err := h.validator.ValidateStruct(params); err != nil {
			helper.Send(c, helper.BadRequest(err))
			return
		}
	}

	if h.svc == nil {
		h.logger.Error("Signup handler has no registration service")
		helper.Send(c, helper.ServerError())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), params.Email, params.Password)

	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		helper.Send(c, helper.Conflict(err))
		return
	case domain.IsValidationError(err):
		helper.Send(c, helper.BadRequest(err))
		return
	case err != nil:
		h.logger.Error("Error creating user", zap.Error(err))
		helper.Send(c, helper.ServerError())
		return
	}

	helper.Send(c, helper.Created(response.UserResponse{
		UUID:      user.UUID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}))
}
