package participantmock

import (
	"context"

	domain "lendcircle-backend/internal/domain/participant"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, p *domain.Participant) error
	GetByLoanAndLenderFn      func(ctx context.Context, loanID, lenderID string) (*domain.Participant, error)
	GetByLoanAndEmailFn       func(ctx context.Context, loanID, email string) (*domain.Participant, error)
	ListByLoanIDFn            func(ctx context.Context, loanID string) ([]domain.Participant, error)
	ListByLenderIDFn          func(ctx context.Context, lenderID string) ([]domain.Participant, error)
	ListByLenderIDAndStatusFn func(ctx context.Context, lenderID string, status domain.Status) ([]domain.Participant, error)
	ListByStatusFn            func(ctx context.Context, status domain.Status) ([]domain.Participant, error)
	ReassignLenderFn          func(ctx context.Context, email, lenderID string) error
	SaveFn                    func(ctx context.Context, p *domain.Participant) error
	CreateACHFn               func(ctx context.Context, a *domain.ACHDetail) error
}

func (m *Repo) Create(ctx context.Context, p *domain.Participant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}
func (m *Repo) GetByLoanAndLender(ctx context.Context, loanID, lenderID string) (*domain.Participant, error) {
	if m.GetByLoanAndLenderFn != nil {
		return m.GetByLoanAndLenderFn(ctx, loanID, lenderID)
	}
	return nil, context.Canceled
}
func (m *Repo) GetByLoanAndEmail(ctx context.Context, loanID, email string) (*domain.Participant, error) {
	if m.GetByLoanAndEmailFn != nil {
		return m.GetByLoanAndEmailFn(ctx, loanID, email)
	}
	return nil, context.Canceled
}
func (m *Repo) ListByLoanID(ctx context.Context, loanID string) ([]domain.Participant, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
func (m *Repo) ListByLenderID(ctx context.Context, lenderID string) ([]domain.Participant, error) {
	if m.ListByLenderIDFn != nil {
		return m.ListByLenderIDFn(ctx, lenderID)
	}
	return nil, nil
}
func (m *Repo) ListByLenderIDAndStatus(ctx context.Context, lenderID string, status domain.Status) ([]domain.Participant, error) {
	if m.ListByLenderIDAndStatusFn != nil {
		return m.ListByLenderIDAndStatusFn(ctx, lenderID, status)
	}
	return nil, nil
}
func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Participant, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, nil
}
func (m *Repo) ReassignLender(ctx context.Context, email, lenderID string) error {
	if m.ReassignLenderFn != nil {
		return m.ReassignLenderFn(ctx, email, lenderID)
	}
	return nil
}
func (m *Repo) Save(ctx context.Context, p *domain.Participant) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}
func (m *Repo) CreateACH(ctx context.Context, a *domain.ACHDetail) error {
	if m.CreateACHFn != nil {
		return m.CreateACHFn(ctx, a)
	}
	return nil
}
