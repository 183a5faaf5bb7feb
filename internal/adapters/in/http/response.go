package http

import (
	"errors"
	"net/http"

	"restaurant/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every API answer.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(ctx echo.Context, code int, data any, message string) error {
	return ctx.JSON(code, Response{Success: true, Data: data, Message: message})
}

func fail(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Response{Success: false, Message: message})
}

// StatusCode maps an application error to its HTTP status. Validation,
// conflict and capacity errors are the client's to fix and map to 400.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrCapacity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders errors that escape a handler in the envelope. Echo's
// own errors (unknown route, bad method, rate limit) keep their status.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, isString := he.Message.(string); isString {
			message = m
		}
		_ = fail(ctx, he.Code, message)
		return
	}

	code := StatusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		message = "internal server error"
	}
	_ = fail(ctx, code, message)
}
