package http

import (
	"net/http"
	"strconv"
	"time"

	"lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/usecase/lender"
	"lendcircle-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type inviteEntryReq struct {
	Email              string  `json:"email"               validate:"required,email"`
	ContributionAmount float64 `json:"contribution_amount" validate:"required,gt=0,dec2"`
}

type createLoanReq struct {
	LoanName         string           `json:"loan_name"         validate:"omitempty,max=120"`
	Principal        float64          `json:"principal"         validate:"required,gt=0,dec2"`
	InterestRate     float64          `json:"interest_rate"     validate:"required,gte=0.1,lte=50"`
	Purpose          string           `json:"purpose"           validate:"required,max=100"`
	Description      string           `json:"description"       validate:"required,min=10"`
	PaymentFrequency string           `json:"payment_frequency" validate:"required,oneof=Weekly Bi-Weekly Monthly Quarterly Annually"`
	TermLength       int              `json:"term_length"       validate:"required,gte=1,lte=60"`
	StartDate        string           `json:"start_date"        validate:"required,datetime=2006-01-02"`
	Lenders          []inviteEntryReq `json:"lenders"           validate:"omitempty,dive"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	var req createLoanReq
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
	startDate, _ := time.Parse("2006-01-02", req.StartDate)

	in := loan.CreateLoanInput{
		BorrowerID:       ident.UserID,
		BorrowerEmail:    ident.Email,
		LoanName:         req.LoanName,
		Principal:        req.Principal,
		InterestRate:     req.InterestRate,
		Purpose:          req.Purpose,
		Description:      req.Description,
		PaymentFrequency: req.PaymentFrequency,
		TermLength:       req.TermLength,
		StartDate:        startDate,
	}
	for _, l := range req.Lenders {
		in.Lenders = append(in.Lenders, lender.InviteEntry(l))
	}

	res, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid loan_id"})
	}
	details, err := h.uc.GetDetails(c.Request().Context(), loanID, ident.UserID, ident.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

func (h *LoanHandler) MyLoans(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	res, err := h.uc.ListMyLoans(c.Request().Context(), ident.UserID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
