package http

import (
	"errors"
	"net/http"

	"lendcircle-backend/internal/domain/apperr"

	"github.com/labstack/echo/v4"
)

var statusByCode = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ACCESS_DENIED":        http.StatusForbidden,
	"INSUFFICIENT_ROLE":    http.StatusForbidden,
	"INVALID_AMOUNT":       http.StatusBadRequest,
	"ALREADY_ACCEPTED":     http.StatusConflict,
	"ALREADY_REVIEWED":     http.StatusConflict,
	"LOAN_FULLY_FUNDED":    http.StatusConflict,
	"DUPLICATE_INVITATION": http.StatusConflict,
	"DUPLICATE_PAYMENT":    http.StatusConflict,
	"VALIDATION_ERROR":     http.StatusBadRequest,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"EMAIL_EXISTS":         http.StatusConflict,
	"DATABASE_ERROR":       http.StatusInternalServerError,
}

// respondError maps coded business errors to HTTP statuses. Anything
// without a code is a 500 with a generic message.
func respondError(c echo.Context, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status, ok := statusByCode[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, ErrorResponse{Error: appErr.Code, Message: err.Error()})
	}
	c.Logger().Errorf("unhandled error: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL_ERROR", Message: "internal server error"})
}
