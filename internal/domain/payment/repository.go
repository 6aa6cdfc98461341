package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	// GetByPaymentIDForUpdate locks the payment row so a review decision
	// is applied at most once.
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Payment, error)
	ListByLenderIDAndStatus(ctx context.Context, lenderID string, status Status) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
}
