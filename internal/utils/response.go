// internal/utils/response.go
package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eshopdev/eshop-backend/internal/apperrors"
)

// ErrorBody is the error envelope returned by every endpoint.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func NoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{
		StatusCode: statusCode,
		Error:      http.StatusText(statusCode),
		Message:    message,
	})
}

// RespondError maps a service-layer error onto the HTTP error envelope.
func RespondError(c *gin.Context, err error) {
	ErrorResponse(c, apperrors.HTTPStatus(err), apperrors.Message(err))
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	messages := make([]string, 0, len(errors))
	for _, e := range errors {
		messages = append(messages, e.Message)
	}
	ErrorResponse(c, http.StatusBadRequest, strings.Join(messages, "; "))
}
