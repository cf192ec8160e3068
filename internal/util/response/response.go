package response

import (
	"errors"
	"net/http"

	"taskhive/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func Success(ctx *gin.Context, statusCode int, message string, data any) {
	ctx.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Fail(ctx *gin.Context, statusCode int, message string) {
	ctx.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
	})
}

func FailWithErrors(ctx *gin.Context, statusCode int, message string, errs []string) {
	ctx.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// Error maps a service error onto the envelope using its kind.
func Error(ctx *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		Fail(ctx, apperrors.HTTPStatus(err), appErr.Message())
		return
	}

	Fail(ctx, http.StatusInternalServerError, err.Error())
}
