package helper

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loginapp/internal/core/domain"
	"loginapp/internal/core/model/response"
)

const (
	unauthorizedMessage = "unauthorized"
	serverErrorMessage  = "internal server error"
)

func BadRequest(err error) response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusBadRequest,
		Body:       response.ErrorResponse{Error: err.Error()},
	}
}

func Unauthorized() response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusUnauthorized,
		Body:       response.ErrorResponse{Error: unauthorizedMessage},
	}
}

// ServerError never carries the underlying fault.
func ServerError() response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       response.ErrorResponse{Error: serverErrorMessage},
	}
}

func Conflict(err error) response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusConflict,
		Body:       response.ErrorResponse{Error: err.Error()},
	}
}

func OK(token domain.AccessToken) response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusOK,
		Body:       response.TokenResponse{Token: token.String()},
	}
}

func Created(body any) response.HTTPResponse {
	return response.HTTPResponse{
		StatusCode: http.StatusCreated,
		Body:       body,
	}
}

func Send(c *gin.Context, resp response.HTTPResponse) {
	c.JSON(resp.StatusCode, resp.Body)
}
