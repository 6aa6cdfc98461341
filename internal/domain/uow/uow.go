package uow

import (
	"context"

	"lendcircle-backend/internal/domain/invitation"
	"lendcircle-backend/internal/domain/loan"
	"lendcircle-backend/internal/domain/participant"
	"lendcircle-backend/internal/domain/payment"
	"lendcircle-backend/internal/domain/user"
)

type Repos struct {
	Users        user.Repository
	Loans        loan.Repository
	Participants participant.Repository
	Invitations  invitation.Repository
	Payments     payment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in. Every write
	// to a loan's funding aggregates goes through this.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
