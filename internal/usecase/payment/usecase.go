package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"lendcircle-backend/internal/domain/apperr"
	domainLoan "lendcircle-backend/internal/domain/loan"
	domainParticipant "lendcircle-backend/internal/domain/participant"
	domainPayment "lendcircle-backend/internal/domain/payment"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/domain/uow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	uploadURLTTL  = 15 * time.Minute
	receiptURLTTL = time.Hour
)

var allowedReceiptTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Presigner issues time-limited URLs for receipt upload and viewing.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Usecase is the repayment review engine: borrower submissions, lender
// review decisions, and the balance mutations approval triggers.
type Usecase struct {
	loanRepo        domainLoan.Repository
	participantRepo domainParticipant.Repository
	paymentRepo     domainPayment.Repository
	userRepo        domainUser.Repository
	uow             uow.UnitOfWork
	presigner       Presigner
}

func NewUsecase(loans domainLoan.Repository, participants domainParticipant.Repository, payments domainPayment.Repository, users domainUser.Repository, tx uow.UnitOfWork, presigner Presigner) *Usecase {
	return &Usecase{loanRepo: loans, participantRepo: participants, paymentRepo: payments, userRepo: users, uow: tx, presigner: presigner}
}

// Submit records a borrower's repayment claim in PENDING. No balance is
// touched until the lender approves.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*PaymentDTO, error) {
	if in.Amount <= 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidAmount, "amount must be greater than 0")
	}
	if in.PaymentDate.After(time.Now().UTC()) {
		return nil, apperr.Wrap(apperr.ErrValidation, "payment date cannot be in the future")
	}

	l, err := u.loanRepo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", in.LoanID)
		}
		return nil, err
	}
	if l.BorrowerID != in.BorrowerID {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "only the borrower can submit payments")
	}

	p, err := u.participantRepo.GetByLoanAndLender(ctx, in.LoanID, in.LenderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "lender not found for this loan")
		}
		return nil, err
	}
	if p.Status != domainParticipant.StatusAccepted {
		return nil, apperr.Wrap(apperr.ErrValidation, "lender must have accepted the loan")
	}
	if in.Amount > p.RemainingBalance {
		return nil, apperr.Wrap(apperr.ErrInvalidAmount,
			"payment amount %.2f exceeds remaining balance %.2f", in.Amount, p.RemainingBalance)
	}

	paymentID, fromReceipt := paymentIDFromReceiptKey(in.ReceiptKey)
	if fromReceipt {
		// the receipt's payment id is unique; a second submission against
		// the same upload is a duplicate, not a new payment
		if _, err := u.paymentRepo.GetByPaymentID(ctx, paymentID); err == nil {
			return nil, apperr.Wrap(apperr.ErrDuplicatePayment, "receipt %s is already attached to a payment", in.ReceiptKey)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	pay := &domainPayment.Payment{
		PaymentID:   paymentID,
		LoanID:      in.LoanID,
		BorrowerID:  in.BorrowerID,
		LenderID:    in.LenderID,
		Amount:      in.Amount,
		PaymentDate: in.PaymentDate,
		Notes:       in.Notes,
		ReceiptKey:  in.ReceiptKey,
		Status:      domainPayment.StatusPending,
	}
	if err := u.paymentRepo.Create(ctx, pay); err != nil {
		return nil, err
	}
	return toDTO(pay, p.RemainingBalance), nil
}

// Receipt keys are laid out loan_id/lender_id/payment_id/filename; when
// the receipt was uploaded first, reuse its payment id so the key stays
// valid. The second return reports whether the id came from the key.
func paymentIDFromReceiptKey(key string) (string, bool) {
	if parts := strings.Split(key, "/"); len(parts) == 4 {
		if _, err := uuid.Parse(parts[2]); err == nil {
			return parts[2], true
		}
	}
	return uuid.NewString(), false
}

// Review resolves a pending payment exactly once. Approval decrements the
// participant's remaining balance in the same transaction; a second call
// fails with ALREADY_REVIEWED and changes nothing.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*PaymentDTO, error) {
	if in.Decision != DecisionApproved && in.Decision != DecisionRejected {
		return nil, apperr.Wrap(apperr.ErrValidation, "decision must be %q or %q", DecisionApproved, DecisionRejected)
	}

	head, err := u.paymentRepo.GetByPaymentID(ctx, in.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "payment %s not found", in.PaymentID)
		}
		return nil, err
	}

	var out *PaymentDTO
	err = u.uow.WithinLoanTx(ctx, head.LoanID, func(r uow.Repos, l *domainLoan.Loan) error {
		pay, err := r.Payments.GetByPaymentIDForUpdate(ctx, in.PaymentID)
		if err != nil {
			return err
		}
		if pay.LenderID != in.ReviewerID {
			return apperr.Wrap(apperr.ErrAccessDenied, "only the lender can review this payment")
		}
		if pay.Reviewed() {
			return apperr.Wrap(apperr.ErrAlreadyReviewed, "payment is already %s", pay.Status)
		}

		now := time.Now().UTC()
		switch in.Decision {
		case DecisionApproved:
			p, err := r.Participants.GetByLoanAndLender(ctx, pay.LoanID, pay.LenderID)
			if err != nil {
				return err
			}
			// re-checked against current stored balance, not whatever
			// the submission saw
			if pay.Amount > p.RemainingBalance {
				return apperr.Wrap(apperr.ErrInvalidAmount,
					"payment amount %.2f exceeds remaining balance %.2f", pay.Amount, p.RemainingBalance)
			}
			p.TotalPaid += pay.Amount
			p.RemainingBalance -= pay.Amount
			if err := r.Participants.Save(ctx, p); err != nil {
				return err
			}
			pay.Approve(in.ReviewerID, in.Notes, now)
			if err := r.Payments.Save(ctx, pay); err != nil {
				return err
			}
			if p.RemainingBalance == 0 {
				if err := maybeCompleteLoan(ctx, r, l, now); err != nil {
					return err
				}
			}
			out = toDTO(pay, p.RemainingBalance)
		case DecisionRejected:
			if len(strings.TrimSpace(in.Notes)) < MinRejectionReason {
				return apperr.Wrap(apperr.ErrValidation,
					"rejection reason must be at least %d characters", MinRejectionReason)
			}
			pay.Reject(in.ReviewerID, in.Notes, now)
			if err := r.Payments.Save(ctx, pay); err != nil {
				return err
			}
			out = toDTO(pay, 0)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// A loan completes once every accepted participant has been repaid in
// full.
func maybeCompleteLoan(ctx context.Context, r uow.Repos, l *domainLoan.Loan, now time.Time) error {
	if l.Status != domainLoan.StatusActive {
		return nil
	}
	participants, err := r.Participants.ListByLoanID(ctx, l.LoanID)
	if err != nil {
		return err
	}
	for _, p := range participants {
		if p.Status == domainParticipant.StatusAccepted && p.RemainingBalance > 0 {
			return nil
		}
	}
	l.SetStatus(domainLoan.StatusCompleted, now)
	return r.Loans.Save(ctx, l)
}

// ListByLoan returns a loan's payments; a lender only sees their own.
func (u *Usecase) ListByLoan(ctx context.Context, requesterID, loanID string) ([]PaymentDTO, error) {
	l, err := u.loanRepo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", loanID)
		}
		return nil, err
	}

	isBorrower := l.BorrowerID == requesterID
	isLender := false
	if !isBorrower {
		participants, err := u.participantRepo.ListByLoanID(ctx, loanID)
		if err != nil {
			return nil, err
		}
		for _, p := range participants {
			if p.LenderID == requesterID {
				isLender = true
				break
			}
		}
	}
	if !isBorrower && !isLender {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "not authorized to view payments for this loan")
	}

	payments, err := u.paymentRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(payments))
	for i := range payments {
		if isLender && !isBorrower && payments[i].LenderID != requesterID {
			continue
		}
		out = append(out, *toDTO(&payments[i], 0))
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, requesterID, paymentID string) (*PaymentDTO, error) {
	pay, err := u.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "payment %s not found", paymentID)
		}
		return nil, err
	}
	if requesterID != pay.BorrowerID && requesterID != pay.LenderID {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "not authorized to view this payment")
	}
	return toDTO(pay, 0), nil
}

// ListPendingReviews is the lender's queue, joined with loan and borrower
// display names.
func (u *Usecase) ListPendingReviews(ctx context.Context, lenderID string) ([]PendingReviewView, error) {
	payments, err := u.paymentRepo.ListByLenderIDAndStatus(ctx, lenderID, domainPayment.StatusPending)
	if err != nil {
		return nil, err
	}
	out := make([]PendingReviewView, 0, len(payments))
	for i := range payments {
		pay := &payments[i]
		view := PendingReviewView{PaymentDTO: *toDTO(pay, 0)}
		if l, err := u.loanRepo.GetByLoanID(ctx, pay.LoanID); err == nil {
			view.LoanName = l.LoanName
		}
		if b, err := u.userRepo.GetByUserID(ctx, pay.BorrowerID); err == nil {
			view.BorrowerName = b.Name
		}
		out = append(out, view)
	}
	return out, nil
}

// ReceiptUploadURL hands the borrower a presigned PUT for a receipt file;
// the generated payment id ties the upload to the later submission.
func (u *Usecase) ReceiptUploadURL(ctx context.Context, in UploadURLInput) (*UploadURLResult, error) {
	if !allowedReceiptTypes[in.FileType] {
		return nil, apperr.Wrap(apperr.ErrValidation, "invalid file type, allowed: PDF, JPG, PNG")
	}
	l, err := u.loanRepo.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "loan %s not found", in.LoanID)
		}
		return nil, err
	}
	if l.BorrowerID != in.BorrowerID {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "only the borrower can upload receipts")
	}

	paymentID := uuid.NewString()
	safeName := strings.NewReplacer("/", "_", "\\", "_").Replace(in.FileName)
	key := in.LoanID + "/" + in.LenderID + "/" + paymentID + "/" + safeName

	url, err := u.presigner.PresignPut(ctx, key, in.FileType, uploadURLTTL)
	if err != nil {
		return nil, err
	}
	return &UploadURLResult{
		UploadURL: url,
		FileKey:   key,
		PaymentID: paymentID,
		ExpiresAt: time.Now().UTC().Add(uploadURLTTL),
	}, nil
}

func (u *Usecase) ReceiptViewURL(ctx context.Context, requesterID, paymentID string) (*ReceiptURLResult, error) {
	pay, err := u.paymentRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "payment %s not found", paymentID)
		}
		return nil, err
	}
	if requesterID != pay.BorrowerID && requesterID != pay.LenderID {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "not authorized to view this receipt")
	}
	if pay.ReceiptKey == "" {
		return nil, apperr.Wrap(apperr.ErrNotFound, "no receipt uploaded for this payment")
	}

	url, err := u.presigner.PresignGet(ctx, pay.ReceiptKey, receiptURLTTL)
	if err != nil {
		return nil, err
	}
	return &ReceiptURLResult{URL: url, ExpiresAt: time.Now().UTC().Add(receiptURLTTL)}, nil
}

func toDTO(p *domainPayment.Payment, remaining float64) *PaymentDTO {
	return &PaymentDTO{
		PaymentID:        p.PaymentID,
		LoanID:           p.LoanID,
		BorrowerID:       p.BorrowerID,
		LenderID:         p.LenderID,
		Amount:           p.Amount,
		PaymentDate:      p.PaymentDate,
		Notes:            p.Notes,
		ReceiptKey:       p.ReceiptKey,
		Status:           string(p.Status),
		ApprovalNotes:    p.ApprovalNotes,
		RejectionReason:  p.RejectionReason,
		ReviewedBy:       p.ReviewedBy,
		ReviewedAt:       p.ReviewedAt,
		RemainingBalance: remaining,
		CreatedAt:        p.CreatedAt,
	}
}
