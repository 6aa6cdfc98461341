package http

import (
	"net/http"

	"lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/usecase/lender"

	"github.com/labstack/echo/v4"
)

type LenderHandler struct{ uc *lender.Usecase }

func NewLenderHandler(uc *lender.Usecase) *LenderHandler { return &LenderHandler{uc: uc} }

type inviteLendersReq struct {
	Lenders []inviteEntryReq `json:"lenders" validate:"required,min=1,max=50,dive"`
}

// InviteLenders adds a batch of lenders to a pending loan owned by the
// caller.
func (h *LenderHandler) InviteLenders(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid loan_id"})
	}
	var req inviteLendersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY", Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := lender.InviteInput{LoanID: loanID, BorrowerID: ident.UserID, BorrowerEmail: ident.Email}
	for _, l := range req.Lenders {
		in.Lenders = append(in.Lenders, lender.InviteEntry(l))
	}

	res, err := h.uc.Invite(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *LenderHandler) PendingInvitations(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	views, err := h.uc.ListPending(c.Request().Context(), ident.UserID, ident.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"invitations": views, "count": len(views)})
}

type acceptInvitationReq struct {
	BankName            string `json:"bank_name"            validate:"required,min=2,max=100"`
	AccountType         string `json:"account_type"         validate:"required,oneof=checking savings"`
	RoutingNumber       string `json:"routing_number"       validate:"required,routing9"`
	AccountNumber       string `json:"account_number"       validate:"required,acctnum"`
	SpecialInstructions string `json:"special_instructions" validate:"omitempty,max=500"`
}

// AcceptInvitation records the lender's commitment together with the ACH
// details repayments will be sent to.
func (h *LenderHandler) AcceptInvitation(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid loan_id"})
	}
	var req acceptInvitationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_BODY", Message: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "VALIDATION_ERROR",
			Message: "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	res, err := h.uc.Accept(c.Request().Context(), lender.AcceptInput{
		LoanID:      loanID,
		LenderID:    ident.UserID,
		LenderEmail: ident.Email,
		ACH: lender.ACHInput{
			BankName:            req.BankName,
			AccountType:         req.AccountType,
			RoutingNumber:       req.RoutingNumber,
			AccountNumber:       req.AccountNumber,
			SpecialInstructions: req.SpecialInstructions,
		},
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *LenderHandler) DeclineInvitation(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid loan_id"})
	}
	res, err := h.uc.Decline(c.Request().Context(), loanID, ident.UserID, ident.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// SearchLenders lets a borrower look up lenders who have previously
// accepted invitations on the platform.
func (h *LenderHandler) SearchLenders(c echo.Context) error {
	if _, ok := middleware.IdentityFrom(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	views, err := h.uc.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"lenders": views, "count": len(views)})
}
