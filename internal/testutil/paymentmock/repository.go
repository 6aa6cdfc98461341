package paymentmock

import (
	"context"

	domain "lendcircle-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*domain.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListByLoanIDFn            func(ctx context.Context, loanID string) ([]domain.Payment, error)
	ListByLenderIDAndStatusFn func(ctx context.Context, lenderID string, status domain.Status) ([]domain.Payment, error)
	SaveFn                    func(ctx context.Context, p *domain.Payment) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
func (m *Repo) ListByLenderIDAndStatus(ctx context.Context, lenderID string, status domain.Status) ([]domain.Payment, error) {
	if m.ListByLenderIDAndStatusFn != nil {
		return m.ListByLenderIDAndStatusFn(ctx, lenderID, status)
	}
	return nil, nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
