package http

import (
	"net/http"
	"time"

	"lendcircle-backend/internal/adapter/middleware"
	"lendcircle-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type submitPaymentReq struct {
	LoanID      string  `json:"loan_id"      validate:"required,hex32"`
	LenderID    string  `json:"lender_id"    validate:"required"`
	Amount      float64 `json:"amount"       validate:"required,gt=0,dec2"`
	PaymentDate string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Notes       string  `json:"notes"        validate:"omitempty,max=500"`
	ReceiptKey  string  `json:"receipt_key"  validate:"omitempty,max=512"`
}

// SubmitPayment records a borrower's repayment claim against one lender.
// It stays pending until that lender reviews it.
func (h *PaymentHandler) SubmitPayment(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	var req submitPaymentReq
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
	paymentDate, _ := time.Parse("2006-01-02", req.PaymentDate)

	dto, err := h.uc.Submit(c.Request().Context(), payment.SubmitInput{
		BorrowerID:  ident.UserID,
		LoanID:      req.LoanID,
		LenderID:    req.LenderID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
		ReceiptKey:  req.ReceiptKey,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type reviewPaymentReq struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Notes    string `json:"notes"    validate:"omitempty,max=500"`
}

// ReviewPayment applies the lender's approve/reject decision. Approval
// moves the participant's balance; a rejection needs a reason in notes.
func (h *PaymentHandler) ReviewPayment(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	paymentID := c.Param("payment_id")
	if !reUUID.MatchString(paymentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid payment_id"})
	}
	var req reviewPaymentReq
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

	dto, err := h.uc.Review(c.Request().Context(), payment.ReviewInput{
		ReviewerID: ident.UserID,
		PaymentID:  paymentID,
		Decision:   payment.Decision(req.Decision),
		Notes:      req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PaymentHandler) LoanPayments(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid loan_id"})
	}
	dtos, err := h.uc.ListByLoan(c.Request().Context(), ident.UserID, loanID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": dtos, "count": len(dtos)})
}

func (h *PaymentHandler) PendingReviews(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	views, err := h.uc.ListPendingReviews(c.Request().Context(), ident.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": views, "count": len(views)})
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	paymentID := c.Param("payment_id")
	if !reUUID.MatchString(paymentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid payment_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), ident.UserID, paymentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type uploadURLReq struct {
	LoanID   string `json:"loan_id"   validate:"required,hex32"`
	LenderID string `json:"lender_id" validate:"required"`
	FileName string `json:"file_name" validate:"required,max=255"`
	FileType string `json:"file_type" validate:"required,oneof=application/pdf image/jpeg image/png"`
}

// ReceiptUploadURL issues a short-lived presigned PUT for a repayment
// receipt. The returned payment_id links the upload to the later submit.
func (h *PaymentHandler) ReceiptUploadURL(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	var req uploadURLReq
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
	res, err := h.uc.ReceiptUploadURL(c.Request().Context(), payment.UploadURLInput{
		BorrowerID: ident.UserID,
		LoanID:     req.LoanID,
		LenderID:   req.LenderID,
		FileName:   req.FileName,
		FileType:   req.FileType,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) ReceiptViewURL(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED", Message: "authentication required"})
	}
	paymentID := c.Param("payment_id")
	if !reUUID.MatchString(paymentID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR", Message: "invalid payment_id"})
	}
	res, err := h.uc.ReceiptViewURL(c.Request().Context(), ident.UserID, paymentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
