package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// surrounding transaction. Funding aggregates are only ever mutated
	// through a row obtained this way.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	ListByBorrowerID(ctx context.Context, borrowerID string, limit, offset int) ([]Loan, int64, error)
	Save(ctx context.Context, l *Loan) error
}
