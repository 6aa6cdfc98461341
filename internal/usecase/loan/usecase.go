package loan

import (
	"context"
	"errors"
	"strings"
	"time"

	"lendcircle-backend/internal/domain/apperr"
	domainLoan "lendcircle-backend/internal/domain/loan"
	domainParticipant "lendcircle-backend/internal/domain/participant"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/usecase/lender"
	"lendcircle-backend/pkg/id"
	"lendcircle-backend/pkg/schedule"

	"gorm.io/gorm"
)

const (
	MinInterestRate = 0.1
	MaxInterestRate = 50.0
	MinDescription  = 10
	defaultPageSize = 20
	maxPageSize     = 100
)

// Usecase is the loan lifecycle manager. Funding aggregates are read
// here but only mutated by the lender engine under the loan row lock.
type Usecase struct {
	loanRepo        domainLoan.Repository
	participantRepo domainParticipant.Repository
	userRepo        domainUser.Repository
	uow             uow.UnitOfWork
	maxPrincipal    float64
}

func NewUsecase(loans domainLoan.Repository, participants domainParticipant.Repository, users domainUser.Repository, tx uow.UnitOfWork, maxPrincipal float64) *Usecase {
	return &Usecase{loanRepo: loans, participantRepo: participants, userRepo: users, uow: tx, maxPrincipal: maxPrincipal}
}

// Create validates terms, derives maturity fields, and persists the loan
// in PENDING with zero funding. An initial lender batch, if present,
// lands in the same transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*CreateLoanResult, error) {
	if in.Principal <= 0 || in.Principal > u.maxPrincipal {
		return nil, apperr.Wrap(apperr.ErrInvalidAmount, "principal must be between 0 and %.2f", u.maxPrincipal)
	}
	if in.InterestRate < MinInterestRate || in.InterestRate > MaxInterestRate {
		return nil, apperr.Wrap(apperr.ErrValidation, "interest rate must be between %.1f and %.1f", MinInterestRate, MaxInterestRate)
	}
	if len(strings.TrimSpace(in.Description)) < MinDescription {
		return nil, apperr.Wrap(apperr.ErrValidation, "description must be at least %d characters", MinDescription)
	}
	if !schedule.ValidFrequency(in.PaymentFrequency) {
		return nil, apperr.Wrap(apperr.ErrValidation, "unknown payment frequency %q", in.PaymentFrequency)
	}
	if in.TermLength < 1 || in.TermLength > 60 {
		return nil, apperr.Wrap(apperr.ErrValidation, "term length must be between 1 and 60 months")
	}

	totalPayments, err := schedule.TotalPayments(in.PaymentFrequency, in.TermLength)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrValidation, "%v", err)
	}

	loanName := strings.TrimSpace(in.LoanName)
	if loanName == "" {
		loanName = in.Purpose + " Loan"
	}

	l := &domainLoan.Loan{
		LoanID:           id.NewID32(),
		BorrowerID:       in.BorrowerID,
		LoanName:         loanName,
		Principal:        in.Principal,
		InterestRate:     in.InterestRate,
		Purpose:          in.Purpose,
		Description:      in.Description,
		PaymentFrequency: in.PaymentFrequency,
		TermLength:       in.TermLength,
		StartDate:        in.StartDate,
		MaturityDate:     schedule.MaturityDate(in.StartDate, in.TermLength),
		TotalPayments:    totalPayments,
		Status:           domainLoan.StatusPending,
		StatusUpdatedAt:  time.Now().UTC(),
	}

	var inviteResult *lender.InviteResult
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if len(in.Lenders) == 0 {
			return nil
		}
		res, err := lender.InviteBatchTx(ctx, r, l, lender.InviteInput{
			LoanID:        l.LoanID,
			BorrowerID:    in.BorrowerID,
			BorrowerEmail: in.BorrowerEmail,
			Lenders:       in.Lenders,
		})
		if err != nil {
			return err
		}
		inviteResult = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateLoanResult{Loan: toDTO(l), Invitations: inviteResult}, nil
}

// GetDetails enforces the access contract: the borrower sees every
// participant; an invited lender sees aggregate funding plus their own
// entry only; anyone else gets ACCESS_DENIED.
func (u *Usecase) GetDetails(ctx context.Context, loanID, requesterID, requesterEmail string) (*LoanDetails, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", loanID)
		}
		return nil, err
	}

	participants, err := u.participantRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	isBorrower := l.BorrowerID == requesterID
	var own *domainParticipant.Participant
	email := strings.ToLower(requesterEmail)
	for i := range participants {
		p := &participants[i]
		if p.LenderID == requesterID || p.LenderEmail == email {
			own = p
			break
		}
	}
	if !isBorrower && own == nil {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "you do not have access to this loan")
	}

	details := &LoanDetails{
		LoanDTO: toDTO(l),
		Funding: progress(l),
	}

	if isBorrower {
		for i := range participants {
			details.Participants = append(details.Participants, u.borrowerView(ctx, &participants[i]))
		}
	} else {
		// privacy scope: other lenders' identities and amounts stay
		// hidden from a lender
		details.Participants = []ParticipantView{{
			ParticipantID:      own.ParticipantID,
			ContributionAmount: own.ContributionAmount,
			Status:             string(own.Status),
			InvitedAt:          own.InvitedAt,
			RespondedAt:        own.RespondedAt,
			TotalPaid:          own.TotalPaid,
			RemainingBalance:   own.RemainingBalance,
		}}
	}
	return details, nil
}

func (u *Usecase) borrowerView(ctx context.Context, p *domainParticipant.Participant) ParticipantView {
	view := ParticipantView{
		ParticipantID:      p.ParticipantID,
		LenderEmail:        p.LenderEmail,
		ContributionAmount: p.ContributionAmount,
		Status:             string(p.Status),
		InvitedAt:          p.InvitedAt,
		RespondedAt:        p.RespondedAt,
		TotalPaid:          p.TotalPaid,
		RemainingBalance:   p.RemainingBalance,
	}
	if !strings.HasPrefix(p.LenderID, domainParticipant.PendingLenderPrefix) {
		if usr, err := u.userRepo.GetByUserID(ctx, p.LenderID); err == nil {
			view.LenderName = usr.Name
		}
	}
	return view
}

// ListMyLoans pages the borrower's loans newest-first with funding
// progress and participant counts.
func (u *Usecase) ListMyLoans(ctx context.Context, borrowerID string, limit, offset int) (*MyLoansResult, error) {
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	loans, total, err := u.loanRepo.ListByBorrowerID(ctx, borrowerID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := &MyLoansResult{TotalCount: total, Limit: limit, Offset: offset, Loans: make([]LoanSummary, 0, len(loans))}
	for i := range loans {
		l := &loans[i]
		summary := LoanSummary{LoanDTO: toDTO(l), Funding: progress(l)}
		participants, err := u.participantRepo.ListByLoanID(ctx, l.LoanID)
		if err != nil {
			return nil, err
		}
		summary.LenderCount = len(participants)
		for _, p := range participants {
			switch p.Status {
			case domainParticipant.StatusAccepted:
				summary.AcceptedCount++
			case domainParticipant.StatusPending:
				summary.PendingCount++
			}
		}
		result.Loans = append(result.Loans, summary)
	}
	return result, nil
}

func toDTO(l *domainLoan.Loan) LoanDTO {
	return LoanDTO{
		LoanID:       l.LoanID,
		BorrowerID:   l.BorrowerID,
		LoanName:     l.LoanName,
		Principal:    l.Principal,
		InterestRate: l.InterestRate,
		Purpose:      l.Purpose,
		Description:  l.Description,
		Maturity: MaturityTerms{
			StartDate:        l.StartDate,
			PaymentFrequency: l.PaymentFrequency,
			TermLength:       l.TermLength,
			MaturityDate:     l.MaturityDate,
			TotalPayments:    l.TotalPayments,
		},
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
	}
}

func progress(l *domainLoan.Loan) FundingProgress {
	return FundingProgress{
		TotalFunded:       l.TotalFunded,
		TotalInvited:      l.TotalInvited,
		RemainingAmount:   l.RemainingAmount(),
		FundingPercentage: l.FundingPercentage(),
		IsFullyFunded:     l.IsFullyFunded(),
	}
}
