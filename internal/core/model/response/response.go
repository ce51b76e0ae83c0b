package response

import (
	"time"

	"github.com/google/uuid"
)

type HTTPResponse struct {
	StatusCode int
	Body       any
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	UUID      uuid.UUID `json:"uuid"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
