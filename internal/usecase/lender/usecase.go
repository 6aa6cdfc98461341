package lender

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"lendcircle-backend/internal/domain/apperr"
	domainInvitation "lendcircle-backend/internal/domain/invitation"
	domainLoan "lendcircle-backend/internal/domain/loan"
	domainParticipant "lendcircle-backend/internal/domain/participant"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase is the invitation & acceptance engine: it owns the participant
// state machine and every mutation of the loan funding aggregates.
type Usecase struct {
	loanRepo        domainLoan.Repository
	participantRepo domainParticipant.Repository
	userRepo        domainUser.Repository
	uow             uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, participants domainParticipant.Repository, users domainUser.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loanRepo: loans, participantRepo: participants, userRepo: users, uow: tx}
}

// Invite adds a batch of lender invitations to a pending loan. The whole
// batch commits or none of it does; the overflow check runs against the
// locked loan row.
func (u *Usecase) Invite(ctx context.Context, in InviteInput) (*InviteResult, error) {
	if len(in.Lenders) == 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "no lenders provided")
	}

	var out *InviteResult
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.BorrowerID != in.BorrowerID {
			return apperr.Wrap(apperr.ErrAccessDenied, "only the loan creator can add lenders")
		}
		res, err := InviteBatchTx(ctx, r, l, in)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", in.LoanID)
		}
		return nil, err
	}
	return out, nil
}

// InviteBatchTx applies an invitation batch to a loan already loaded
// inside a transaction. Exposed so loan creation can invite the initial
// lender set in the same commit.
func InviteBatchTx(ctx context.Context, r uow.Repos, l *domainLoan.Loan, in InviteInput) (*InviteResult, error) {
	if !l.AcceptingInvitations() {
		return nil, apperr.Wrap(apperr.ErrValidation, "cannot add lenders to a %s loan", l.Status)
	}

	var batchSum float64
	seen := make(map[string]bool, len(in.Lenders))
	for _, entry := range in.Lenders {
		email := strings.ToLower(strings.TrimSpace(entry.Email))
		if entry.ContributionAmount <= 0 {
			return nil, apperr.Wrap(apperr.ErrInvalidAmount, "contribution for %s must be positive", email)
		}
		if email == strings.ToLower(in.BorrowerEmail) {
			return nil, apperr.Wrap(apperr.ErrValidation, "you cannot invite yourself as a lender to your own loan")
		}
		if seen[email] {
			return nil, apperr.Wrap(apperr.ErrDuplicateInvitation, "email %s appears twice in the batch", email)
		}
		seen[email] = true
		batchSum += entry.ContributionAmount
	}

	// Re-check against the locked row, not whatever the caller read
	// before entering the transaction.
	if l.TotalInvited+batchSum > l.Principal {
		return nil, apperr.Wrap(apperr.ErrInvalidAmount,
			"total invitations (%.2f) would exceed loan principal (%.2f), remaining available: %.2f",
			l.TotalInvited+batchSum, l.Principal, l.Principal-l.TotalInvited)
	}

	now := time.Now().UTC()
	result := &InviteResult{LoanID: l.LoanID, LendersAdded: len(in.Lenders)}

	for _, entry := range in.Lenders {
		email := strings.ToLower(strings.TrimSpace(entry.Email))

		if _, err := r.Participants.GetByLoanAndEmail(ctx, l.LoanID, email); err == nil {
			return nil, apperr.Wrap(apperr.ErrDuplicateInvitation, "lender %s is already invited to this loan", email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		p := &domainParticipant.Participant{
			ParticipantID:      id.NewID32(),
			LoanID:             l.LoanID,
			LenderEmail:        email,
			ContributionAmount: entry.ContributionAmount,
			Status:             domainParticipant.StatusPending,
			InvitedAt:          now,
		}

		invitee, err := r.Users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			p.LenderID = invitee.UserID
			if !invitee.HasRole(domainUser.RoleLender) {
				invitee.GrantLender()
				if err := r.Users.Save(ctx, invitee); err != nil {
					return nil, err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no account yet: key the participant by email and leave a
			// breadcrumb for the activation side channel
			p.LenderID = domainParticipant.PendingLenderID(email)
			inv := &domainInvitation.Invitation{
				InvitationID: id.NewID32(),
				InviteeEmail: email,
				InviterID:    in.BorrowerID,
				LoanID:       l.LoanID,
				Status:       domainInvitation.StatusPending,
			}
			if err := r.Invitations.Create(ctx, inv); err != nil {
				return nil, err
			}
			result.InvitationsCreated++
		default:
			return nil, err
		}

		if err := r.Participants.Create(ctx, p); err != nil {
			return nil, err
		}
		result.ParticipantsCreated++
	}

	l.TotalInvited += batchSum
	if err := r.Loans.Save(ctx, l); err != nil {
		return nil, err
	}

	result.TotalInvited = l.TotalInvited
	result.Remaining = l.Principal - l.TotalInvited
	result.IsFullyInvited = l.TotalInvited >= l.Principal
	return result, nil
}

// Accept flips a pending participant to ACCEPTED, stores the ACH details,
// bumps the loan's total_funded, and activates the loan if that closes
// the gap. All four effects share one transaction.
func (u *Usecase) Accept(ctx context.Context, in AcceptInput) (*AcceptResult, error) {
	var out *AcceptResult
	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		p, err := findParticipant(ctx, r, in.LoanID, in.LenderID, in.LenderEmail)
		if err != nil {
			return err
		}
		if p.Responded() {
			return apperr.Wrap(apperr.ErrAlreadyAccepted, "invitation is already %s", p.Status)
		}
		switch {
		case l.Status == domainLoan.StatusActive:
			return apperr.ErrLoanFullyFunded
		case !l.AcceptingInvitations():
			return apperr.Wrap(apperr.ErrValidation, "loan is no longer accepting lenders (%s)", l.Status)
		}
		// funded total is re-checked here against the locked row; a
		// concurrent acceptance that already filled the loan makes this
		// one fail instead of overfunding
		if l.TotalFunded+p.ContributionAmount > l.Principal {
			return apperr.Wrap(apperr.ErrLoanFullyFunded,
				"accepting %.2f would exceed principal %.2f", p.ContributionAmount, l.Principal)
		}

		now := time.Now().UTC()
		p.Accept(in.LenderID, now)
		if err := r.Participants.Save(ctx, p); err != nil {
			return err
		}

		ach := &domainParticipant.ACHDetail{
			UserID:              in.LenderID,
			LoanID:              in.LoanID,
			BankName:            in.ACH.BankName,
			AccountType:         in.ACH.AccountType,
			RoutingNumber:       in.ACH.RoutingNumber,
			AccountNumber:       in.ACH.AccountNumber,
			SpecialInstructions: in.ACH.SpecialInstructions,
		}
		if err := r.Participants.CreateACH(ctx, ach); err != nil {
			return err
		}

		l.TotalFunded += p.ContributionAmount
		if l.IsFullyFunded() {
			l.SetStatus(domainLoan.StatusActive, now)
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		out = &AcceptResult{
			LoanID:             l.LoanID,
			Status:             string(domainParticipant.StatusAccepted),
			LoanStatus:         string(l.Status),
			ContributionAmount: p.ContributionAmount,
			AcceptedAt:         now,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", in.LoanID)
		}
		return nil, err
	}
	return out, nil
}

// Decline marks a pending participant DECLINED. Terminal, no funding
// change; total_invited keeps the allocation reserved per the accept-only
// funding model.
func (u *Usecase) Decline(ctx context.Context, loanID, lenderID, lenderEmail string) (*DeclineResult, error) {
	var out *DeclineResult
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		p, err := findParticipant(ctx, r, loanID, lenderID, lenderEmail)
		if err != nil {
			return err
		}
		if p.Responded() {
			return apperr.Wrap(apperr.ErrAlreadyAccepted, "invitation is already %s", p.Status)
		}
		now := time.Now().UTC()
		p.Decline(now)
		if err := r.Participants.Save(ctx, p); err != nil {
			return err
		}
		out = &DeclineResult{LoanID: l.LoanID, Status: string(domainParticipant.StatusDeclined), DeclinedAt: now}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", loanID)
		}
		return nil, err
	}
	return out, nil
}

func findParticipant(ctx context.Context, r uow.Repos, loanID, lenderID, lenderEmail string) (*domainParticipant.Participant, error) {
	p, err := r.Participants.GetByLoanAndLender(ctx, loanID, lenderID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	// the invitee may still be keyed by email if activation hasn't
	// re-keyed the record yet
	p, err = r.Participants.GetByLoanAndLender(ctx, loanID, domainParticipant.PendingLenderID(lenderEmail))
	if err == nil {
		return p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "loan invitation not found")
	}
	return nil, err
}

// ListPending returns the lender's pending invitations joined with loan
// summaries, newest first.
func (u *Usecase) ListPending(ctx context.Context, lenderID, lenderEmail string) ([]InvitationView, error) {
	byID, err := u.participantRepo.ListByLenderIDAndStatus(ctx, lenderID, domainParticipant.StatusPending)
	if err != nil {
		return nil, err
	}
	byEmail, err := u.participantRepo.ListByLenderIDAndStatus(ctx, domainParticipant.PendingLenderID(lenderEmail), domainParticipant.StatusPending)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	views := make([]InvitationView, 0, len(byID)+len(byEmail))
	for _, p := range append(byID, byEmail...) {
		if seen[p.LoanID] {
			continue
		}
		seen[p.LoanID] = true

		l, err := u.loanRepo.GetByLoanID(ctx, p.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		borrowerName := "Unknown"
		if b, err := u.userRepo.GetByUserID(ctx, l.BorrowerID); err == nil {
			borrowerName = b.Name
		}
		views = append(views, InvitationView{
			LoanID:             p.LoanID,
			LoanName:           l.LoanName,
			LoanAmount:         l.Principal,
			LoanPurpose:        l.Purpose,
			LoanDescription:    l.Description,
			InterestRate:       l.InterestRate,
			BorrowerName:       borrowerName,
			ContributionAmount: p.ContributionAmount,
			InvitedAt:          p.InvitedAt,
			Status:             string(p.Status),
			LoanStatus:         string(l.Status),
			TotalFunded:        l.TotalFunded,
			FundingPercentage:  l.FundingPercentage(),
		})
	}

	sort.Slice(views, func(i, j int) bool { return views[i].InvitedAt.After(views[j].InvitedAt) })
	return views, nil
}

// ActivateForUser runs the registration/login side channel: pending
// email-keyed invitations matching the user's email flip the lender role,
// become ACTIVATED, and their participant records are re-keyed to the
// user id. Running it twice is a no-op.
func (u *Usecase) ActivateForUser(ctx context.Context, usr *domainUser.User) (int, error) {
	var activated int
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		pending, err := r.Invitations.ListPendingByEmail(ctx, usr.Email)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		now := time.Now().UTC()
		for i := range pending {
			pending[i].Activate(now)
			if err := r.Invitations.Save(ctx, &pending[i]); err != nil {
				return err
			}
		}
		if err := r.Participants.ReassignLender(ctx, usr.Email, usr.UserID); err != nil {
			return err
		}
		if !usr.HasRole(domainUser.RoleLender) {
			usr.GrantLender()
			if err := r.Users.Save(ctx, usr); err != nil {
				return err
			}
		}
		activated = len(pending)
		return nil
	})
	return activated, err
}

// Search lists lenders who have accepted participations, with aggregate
// stats, optionally filtered by a name/email substring.
func (u *Usecase) Search(ctx context.Context, query string) ([]LenderSearchView, error) {
	accepted, err := u.participantRepo.ListByStatus(ctx, domainParticipant.StatusAccepted)
	if err != nil {
		return nil, err
	}

	type agg struct {
		total float64
		count int
	}
	stats := make(map[string]*agg)
	for _, p := range accepted {
		if strings.HasPrefix(p.LenderID, domainParticipant.PendingLenderPrefix) {
			continue
		}
		a := stats[p.LenderID]
		if a == nil {
			a = &agg{}
			stats[p.LenderID] = a
		}
		a.total += p.ContributionAmount
		a.count++
	}

	query = strings.ToLower(strings.TrimSpace(query))
	views := make([]LenderSearchView, 0, len(stats))
	for lenderID, a := range stats {
		usr, err := u.userRepo.GetByUserID(ctx, lenderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(usr.Name), query) &&
			!strings.Contains(strings.ToLower(usr.Email), query) {
			continue
		}
		views = append(views, LenderSearchView{
			LenderID: lenderID,
			Name:     usr.Name,
			Email:    usr.Email,
			Stats: LenderSearchStats{
				InvestmentCount:   a.count,
				TotalInvested:     a.total,
				AverageInvestment: a.total / float64(a.count),
			},
		})
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].Stats.TotalInvested > views[j].Stats.TotalInvested
	})
	return views, nil
}
