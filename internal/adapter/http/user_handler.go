package http

import (
	"net/http"

	"lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/usecase/user"

	"github.com/labstack/echo/v4"
)

type UserHandler struct{ uc *user.Usecase }

func NewUserHandler(uc *user.Usecase) *UserHandler { return &UserHandler{uc: uc} }

func (h *UserHandler) Profile(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	profile, err := h.uc.Profile(c.Request().Context(), ident.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) Dashboard(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	dash, err := h.uc.Dashboard(c.Request().Context(), ident.UserID, ident.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *UserHandler) Portfolio(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	pf, err := h.uc.Portfolio(c.Request().Context(), ident.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pf)
}
