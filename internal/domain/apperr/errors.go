package apperr

import "fmt"

// Error is a business-rule error with a stable machine-readable code.
// Handlers map codes to HTTP statuses; usecases wrap these with context
// via fmt.Errorf("...: %w", ...) so errors.Is/As still match.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code, message string) *Error { return &Error{Code: code, Message: message} }

// Wrap returns a copy of base carrying a more specific message.
// errors.Is(wrapped, base) holds because Is compares codes.
func Wrap(base *Error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), base)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrNotFound            = New("NOT_FOUND", "resource not found")
	ErrAccessDenied        = New("ACCESS_DENIED", "not authorized to access this resource")
	ErrInsufficientRole    = New("INSUFFICIENT_ROLE", "account lacks the required role")
	ErrInvalidAmount       = New("INVALID_AMOUNT", "amount violates a funding constraint")
	ErrAlreadyAccepted     = New("ALREADY_ACCEPTED", "invitation has already been responded to")
	ErrAlreadyReviewed     = New("ALREADY_REVIEWED", "payment has already been reviewed")
	ErrLoanFullyFunded     = New("LOAN_FULLY_FUNDED", "loan is already fully funded")
	ErrDuplicateInvitation = New("DUPLICATE_INVITATION", "lender is already invited to this loan")
	ErrDuplicatePayment    = New("DUPLICATE_PAYMENT", "a payment already exists for this receipt")
	ErrValidation          = New("VALIDATION_ERROR", "invalid input")
	ErrInvalidCredentials  = New("INVALID_CREDENTIALS", "invalid email or password")
	ErrEmailExists         = New("EMAIL_EXISTS", "an account with this email already exists")
	ErrDatabase            = New("DATABASE_ERROR", "persistence operation failed")
)
