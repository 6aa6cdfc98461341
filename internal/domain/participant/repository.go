package participant

import "context"

type Repository interface {
	Create(ctx context.Context, p *Participant) error
	// GetByLoanAndLender matches on lender_id, which may be a user id or a
	// pending:<email> placeholder.
	GetByLoanAndLender(ctx context.Context, loanID, lenderID string) (*Participant, error)
	GetByLoanAndEmail(ctx context.Context, loanID, email string) (*Participant, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Participant, error)
	ListByLenderID(ctx context.Context, lenderID string) ([]Participant, error)
	ListByLenderIDAndStatus(ctx context.Context, lenderID string, status Status) ([]Participant, error)
	ListByStatus(ctx context.Context, status Status) ([]Participant, error)
	// ReassignLender re-keys pending:<email> records to a registered user
	// id. Used by the activation side channel; idempotent.
	ReassignLender(ctx context.Context, email, lenderID string) error
	Save(ctx context.Context, p *Participant) error

	CreateACH(ctx context.Context, a *ACHDetail) error
}
