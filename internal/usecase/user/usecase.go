package user

import (
	"context"
	"errors"
	"sort"
	"strings"

	"lendcircle-backend/internal/domain/apperr"
	domainLoan "lendcircle-backend/internal/domain/loan"
	domainParticipant "lendcircle-backend/internal/domain/participant"
	domainUser "lendcircle-backend/internal/domain/user"

	"gorm.io/gorm"
)

type Usecase struct {
	userRepo        domainUser.Repository
	loanRepo        domainLoan.Repository
	participantRepo domainParticipant.Repository
}

func NewUsecase(users domainUser.Repository, loans domainLoan.Repository, participants domainParticipant.Repository) *Usecase {
	return &Usecase{userRepo: users, loanRepo: loans, participantRepo: participants}
}

func (u *Usecase) Profile(ctx context.Context, userID string) (*Profile, error) {
	usr, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", userID)
		}
		return nil, err
	}
	p := toProfile(usr)
	return &p, nil
}

// Dashboard aggregates both sides of the marketplace for the caller:
// borrower stats always, lender stats only once they hold the role.
func (u *Usecase) Dashboard(ctx context.Context, userID, email string) (*Dashboard, error) {
	usr, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", userID)
		}
		return nil, err
	}

	dash := &Dashboard{Profile: toProfile(usr)}

	if usr.IsBorrower {
		stats, err := u.borrowerStats(ctx, userID)
		if err != nil {
			return nil, err
		}
		dash.Borrower = stats
	}
	if usr.IsLender {
		stats, err := u.lenderStats(ctx, userID, usr.Email)
		if err != nil {
			return nil, err
		}
		dash.Lender = stats
	}
	return dash, nil
}

// Portfolio lists the caller's accepted participations. Requires the
// lender role.
func (u *Usecase) Portfolio(ctx context.Context, userID string) (*Portfolio, error) {
	usr, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "user %s not found", userID)
		}
		return nil, err
	}
	if !usr.HasRole(domainUser.RoleLender) {
		return nil, apperr.Wrap(apperr.ErrInsufficientRole, "lender role required")
	}

	accepted, err := u.participantRepo.ListByLenderIDAndStatus(ctx, userID, domainParticipant.StatusAccepted)
	if err != nil {
		return nil, err
	}

	pf := &Portfolio{Entries: make([]PortfolioEntry, 0, len(accepted))}
	for i := range accepted {
		p := &accepted[i]
		entry := PortfolioEntry{
			LoanID:             p.LoanID,
			ContributionAmount: p.ContributionAmount,
			TotalPaid:          p.TotalPaid,
			RemainingBalance:   p.RemainingBalance,
			AcceptedAt:         p.RespondedAt,
		}
		if l, err := u.loanRepo.GetByLoanID(ctx, p.LoanID); err == nil {
			entry.LoanName = l.LoanName
			entry.LoanStatus = string(l.Status)
			entry.InterestRate = l.InterestRate
			entry.PaymentFrequency = l.PaymentFrequency
			entry.MaturityDate = l.MaturityDate
			if b, err := u.userRepo.GetByUserID(ctx, l.BorrowerID); err == nil {
				entry.BorrowerName = b.Name
			}
		}
		pf.TotalCommitted += p.ContributionAmount
		pf.TotalRepaid += p.TotalPaid
		pf.TotalOutstanding += p.RemainingBalance
		pf.Entries = append(pf.Entries, entry)
	}
	sort.Slice(pf.Entries, func(i, j int) bool {
		a, b := pf.Entries[i].AcceptedAt, pf.Entries[j].AcceptedAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	return pf, nil
}

func (u *Usecase) borrowerStats(ctx context.Context, userID string) (*BorrowerStats, error) {
	loans, _, err := u.loanRepo.ListByBorrowerID(ctx, userID, 1000, 0)
	if err != nil {
		return nil, err
	}
	stats := &BorrowerStats{}
	for i := range loans {
		l := &loans[i]
		stats.TotalLoans++
		switch l.Status {
		case domainLoan.StatusActive:
			stats.ActiveLoans++
		case domainLoan.StatusCompleted:
			stats.CompletedLoans++
		}
		stats.TotalBorrowed += l.TotalFunded
		if l.Status == domainLoan.StatusActive {
			participants, err := u.participantRepo.ListByLoanID(ctx, l.LoanID)
			if err != nil {
				return nil, err
			}
			for _, p := range participants {
				if p.Status == domainParticipant.StatusAccepted {
					stats.TotalOutstanding += p.RemainingBalance
				}
			}
		}
	}
	return stats, nil
}

func (u *Usecase) lenderStats(ctx context.Context, userID, email string) (*LenderStats, error) {
	byID, err := u.participantRepo.ListByLenderID(ctx, userID)
	if err != nil {
		return nil, err
	}
	pending, err := u.participantRepo.ListByLenderID(ctx, domainParticipant.PendingLenderID(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}

	stats := &LenderStats{}
	for _, p := range append(byID, pending...) {
		switch p.Status {
		case domainParticipant.StatusAccepted:
			stats.TotalInvestments++
			stats.TotalCommitted += p.ContributionAmount
			stats.TotalRepaid += p.TotalPaid
			stats.TotalOutstanding += p.RemainingBalance
		case domainParticipant.StatusPending:
			stats.PendingInvites++
		}
	}
	return stats, nil
}

func toProfile(usr *domainUser.User) Profile {
	roles := make([]string, 0, 2)
	for _, r := range usr.Roles() {
		roles = append(roles, string(r))
	}
	return Profile{
		UserID:     usr.UserID,
		Name:       usr.Name,
		Email:      usr.Email,
		IsBorrower: usr.IsBorrower,
		IsLender:   usr.IsLender,
		Roles:      roles,
		Status:     string(usr.Status),
		CreatedAt:  usr.CreatedAt,
	}
}
