package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"lendcircle-backend/internal/domain/apperr"
	domainLoan "lendcircle-backend/internal/domain/loan"
	domainParticipant "lendcircle-backend/internal/domain/participant"
	domainPayment "lendcircle-backend/internal/domain/payment"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/internal/domain/uow"
	"lendcircle-backend/internal/testutil/loanmock"
	"lendcircle-backend/internal/testutil/participantmock"
	"lendcircle-backend/internal/testutil/paymentmock"
	"lendcircle-backend/internal/testutil/uowmock"
	"lendcircle-backend/internal/testutil/usermock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	loanID        = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	borrowerID    = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	lenderID      = "cccccccccccccccccccccccccccccccc"
	strangerID    = "dddddddddddddddddddddddddddddddd"
	participantID = "pppppppppppppppppppppppppppppppp"
)

var gormNotFound = gorm.ErrRecordNotFound

// world is shared in-memory state behind the function mocks. Reads hand
// out copies so mutations only land through Save, like the real repos.
type world struct {
	loan         *domainLoan.Loan
	participants []*domainParticipant.Participant
	payments     []*domainPayment.Payment
	users        map[string]*domainUser.User
}

func newWorld(remaining float64) *world {
	now := time.Now().UTC()
	w := &world{
		loan: &domainLoan.Loan{
			LoanID:          loanID,
			BorrowerID:      borrowerID,
			LoanName:        "Food Truck Expansion",
			Principal:       1000,
			TotalFunded:     1000,
			TotalInvited:    1000,
			Status:          domainLoan.StatusActive,
			StatusUpdatedAt: now,
		},
		users: map[string]*domainUser.User{
			borrowerID: {UserID: borrowerID, Name: "Bob Borrower"},
			lenderID:   {UserID: lenderID, Name: "Carol Carter"},
		},
	}
	w.participants = append(w.participants, &domainParticipant.Participant{
		ParticipantID:      participantID,
		LoanID:             loanID,
		LenderID:           lenderID,
		LenderEmail:        "carol@example.com",
		ContributionAmount: 1000,
		Status:             domainParticipant.StatusAccepted,
		TotalPaid:          1000 - remaining,
		RemainingBalance:   remaining,
		InvitedAt:          now,
	})
	return w
}

func (w *world) seedPayment(amount float64) *domainPayment.Payment {
	p := &domainPayment.Payment{
		PaymentID:   uuid.NewString(),
		LoanID:      loanID,
		BorrowerID:  borrowerID,
		LenderID:    lenderID,
		Amount:      amount,
		PaymentDate: time.Now().UTC().Add(-24 * time.Hour),
		Status:      domainPayment.StatusPending,
	}
	w.payments = append(w.payments, p)
	return p
}

func (w *world) repos() uow.Repos {
	loans := &loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, id string) (*domainLoan.Loan, error) {
			if w.loan != nil && w.loan.LoanID == id {
				cp := *w.loan
				return &cp, nil
			}
			return nil, gormNotFound
		},
		SaveFn: func(_ context.Context, l *domainLoan.Loan) error {
			cp := *l
			w.loan = &cp
			return nil
		},
	}
	loans.GetByLoanIDForUpdateFn = loans.GetByLoanIDFn

	participants := &participantmock.Repo{
		GetByLoanAndLenderFn: func(_ context.Context, id, lender string) (*domainParticipant.Participant, error) {
			for _, p := range w.participants {
				if p.LoanID == id && p.LenderID == lender {
					cp := *p
					return &cp, nil
				}
			}
			return nil, gormNotFound
		},
		ListByLoanIDFn: func(_ context.Context, id string) ([]domainParticipant.Participant, error) {
			var out []domainParticipant.Participant
			for _, p := range w.participants {
				if p.LoanID == id {
					out = append(out, *p)
				}
			}
			return out, nil
		},
		SaveFn: func(_ context.Context, p *domainParticipant.Participant) error {
			for i := range w.participants {
				if w.participants[i].ParticipantID == p.ParticipantID {
					cp := *p
					w.participants[i] = &cp
					return nil
				}
			}
			return gormNotFound
		},
	}

	payments := &paymentmock.Repo{
		CreateFn: func(_ context.Context, p *domainPayment.Payment) error {
			cp := *p
			cp.CreatedAt = time.Now().UTC()
			w.payments = append(w.payments, &cp)
			return nil
		},
		GetByPaymentIDFn: func(_ context.Context, id string) (*domainPayment.Payment, error) {
			for _, p := range w.payments {
				if p.PaymentID == id {
					cp := *p
					return &cp, nil
				}
			}
			return nil, gormNotFound
		},
		ListByLoanIDFn: func(_ context.Context, id string) ([]domainPayment.Payment, error) {
			var out []domainPayment.Payment
			for _, p := range w.payments {
				if p.LoanID == id {
					out = append(out, *p)
				}
			}
			return out, nil
		},
		ListByLenderIDAndStatusFn: func(_ context.Context, lender string, status domainPayment.Status) ([]domainPayment.Payment, error) {
			var out []domainPayment.Payment
			for _, p := range w.payments {
				if p.LenderID == lender && p.Status == status {
					out = append(out, *p)
				}
			}
			return out, nil
		},
		SaveFn: func(_ context.Context, p *domainPayment.Payment) error {
			for i := range w.payments {
				if w.payments[i].PaymentID == p.PaymentID {
					cp := *p
					w.payments[i] = &cp
					return nil
				}
			}
			return gormNotFound
		},
	}
	payments.GetByPaymentIDForUpdateFn = payments.GetByPaymentIDFn

	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, id string) (*domainUser.User, error) {
			if u, ok := w.users[id]; ok {
				cp := *u
				return &cp, nil
			}
			return nil, gormNotFound
		},
	}

	return uow.Repos{Loans: loans, Participants: participants, Payments: payments, Users: users}
}

func (w *world) usecase(ps Presigner) *Usecase {
	r := w.repos()
	return NewUsecase(r.Loans, r.Participants, r.Payments, r.Users, uowmock.Passthrough(r), ps)
}

type fakePresigner struct {
	putKey  string
	putType string
	putTTL  time.Duration
	getKey  string
	getTTL  time.Duration
	err     error
}

func (f *fakePresigner) PresignPut(_ context.Context, key, contentType string, expires time.Duration) (string, error) {
	f.putKey, f.putType, f.putTTL = key, contentType, expires
	if f.err != nil {
		return "", f.err
	}
	return "https://uploads.test/" + key, nil
}

func (f *fakePresigner) PresignGet(_ context.Context, key string, expires time.Duration) (string, error) {
	f.getKey, f.getTTL = key, expires
	if f.err != nil {
		return "", f.err
	}
	return "https://receipts.test/" + key, nil
}

func submitInput(amount float64) SubmitInput {
	return SubmitInput{
		BorrowerID:  borrowerID,
		LoanID:      loanID,
		LenderID:    lenderID,
		Amount:      amount,
		PaymentDate: time.Now().UTC().Add(-24 * time.Hour),
		Notes:       "monthly installment",
	}
}

func TestSubmit_CreatesPendingPayment(t *testing.T) {
	w := newWorld(600)
	uc := w.usecase(nil)

	got, err := uc.Submit(context.Background(), submitInput(250))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.Status != string(domainPayment.StatusPending) {
		t.Errorf("status = %q, want pending", got.Status)
	}
	if _, err := uuid.Parse(got.PaymentID); err != nil {
		t.Errorf("payment id not a uuid: %q", got.PaymentID)
	}
	if got.RemainingBalance != 600 {
		t.Errorf("remaining balance = %v, want 600 (untouched until approval)", got.RemainingBalance)
	}
	if len(w.payments) != 1 || w.payments[0].Status != domainPayment.StatusPending {
		t.Fatalf("stored payments: %+v", w.payments)
	}

	// balances move only on approval
	if w.participants[0].RemainingBalance != 600 || w.participants[0].TotalPaid != 400 {
		t.Errorf("submission touched balances: %+v", w.participants[0])
	}
}

func TestSubmit_ReusesReceiptPaymentID(t *testing.T) {
	w := newWorld(600)
	uc := w.usecase(nil)

	receiptID := uuid.NewString()
	in := submitInput(100)
	in.ReceiptKey = loanID + "/" + lenderID + "/" + receiptID + "/receipt.pdf"

	got, err := uc.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got.PaymentID != receiptID {
		t.Errorf("payment id = %q, want receipt's %q", got.PaymentID, receiptID)
	}
}

func TestSubmit_RejectsReusedReceipt(t *testing.T) {
	w := newWorld(600)
	uc := w.usecase(nil)

	in := submitInput(100)
	in.ReceiptKey = loanID + "/" + lenderID + "/" + uuid.NewString() + "/receipt.pdf"

	if _, err := uc.Submit(context.Background(), in); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := uc.Submit(context.Background(), in)
	if !errors.Is(err, apperr.ErrDuplicatePayment) {
		t.Fatalf("err = %v, want DUPLICATE_PAYMENT", err)
	}
	if len(w.payments) != 1 {
		t.Errorf("stored payments = %d, want 1", len(w.payments))
	}
}

func TestSubmit_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(in *SubmitInput)
		setup   func(w *world)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(in *SubmitInput) { in.Amount = 0 },
			wantErr: apperr.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(in *SubmitInput) { in.Amount = -5 },
			wantErr: apperr.ErrInvalidAmount,
		},
		{
			name:    "future payment date",
			mutate:  func(in *SubmitInput) { in.PaymentDate = time.Now().UTC().Add(48 * time.Hour) },
			wantErr: apperr.ErrValidation,
		},
		{
			name:    "unknown loan",
			mutate:  func(in *SubmitInput) { in.LoanID = strings.Repeat("e", 32) },
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "submitter is not the borrower",
			mutate:  func(in *SubmitInput) { in.BorrowerID = strangerID },
			wantErr: apperr.ErrAccessDenied,
		},
		{
			name:    "lender not on the loan",
			mutate:  func(in *SubmitInput) { in.LenderID = strangerID },
			wantErr: apperr.ErrNotFound,
		},
		{
			name:    "amount exceeds remaining balance",
			mutate:  func(in *SubmitInput) { in.Amount = 601 },
			wantErr: apperr.ErrInvalidAmount,
		},
		{
			name:   "lender has not accepted",
			mutate: func(in *SubmitInput) {},
			setup: func(w *world) {
				w.participants[0].Status = domainParticipant.StatusPending
			},
			wantErr: apperr.ErrValidation,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWorld(600)
			if tc.setup != nil {
				tc.setup(w)
			}
			uc := w.usecase(nil)

			in := submitInput(100)
			tc.mutate(&in)
			if _, err := uc.Submit(context.Background(), in); !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if len(w.payments) != 0 {
				t.Fatalf("rejected submission was stored: %+v", w.payments)
			}
		})
	}
}

func TestReview_ApproveUpdatesBalances(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(250)
	uc := w.usecase(nil)

	got, err := uc.Review(context.Background(), ReviewInput{
		ReviewerID: lenderID,
		PaymentID:  pay.PaymentID,
		Decision:   DecisionApproved,
		Notes:      "matches my bank statement",
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if got.Status != string(domainPayment.StatusApproved) {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if got.RemainingBalance != 350 {
		t.Errorf("remaining balance = %v, want 350", got.RemainingBalance)
	}

	p := w.participants[0]
	if p.TotalPaid != 650 || p.RemainingBalance != 350 {
		t.Errorf("participant balances: paid=%v remaining=%v", p.TotalPaid, p.RemainingBalance)
	}
	stored := w.payments[0]
	if stored.Status != domainPayment.StatusApproved || stored.ReviewedBy != lenderID || stored.ReviewedAt == nil {
		t.Errorf("review not persisted: %+v", stored)
	}
	if stored.ApprovalNotes != "matches my bank statement" {
		t.Errorf("approval notes = %q", stored.ApprovalNotes)
	}
	if w.loan.Status != domainLoan.StatusActive {
		t.Errorf("loan completed with balance outstanding: %s", w.loan.Status)
	}
}

func TestReview_FinalApprovalCompletesLoan(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(600)
	uc := w.usecase(nil)

	if _, err := uc.Review(context.Background(), ReviewInput{
		ReviewerID: lenderID,
		PaymentID:  pay.PaymentID,
		Decision:   DecisionApproved,
	}); err != nil {
		t.Fatalf("Review: %v", err)
	}

	if w.participants[0].RemainingBalance != 0 {
		t.Fatalf("balance not cleared: %+v", w.participants[0])
	}
	if w.loan.Status != domainLoan.StatusCompleted {
		t.Errorf("loan status = %s, want completed", w.loan.Status)
	}
}

func TestReview_SecondReviewRejected(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(250)
	uc := w.usecase(nil)

	in := ReviewInput{ReviewerID: lenderID, PaymentID: pay.PaymentID, Decision: DecisionApproved}
	if _, err := uc.Review(context.Background(), in); err != nil {
		t.Fatalf("first Review: %v", err)
	}
	if _, err := uc.Review(context.Background(), in); !errors.Is(err, apperr.ErrAlreadyReviewed) {
		t.Fatalf("second Review err = %v, want ALREADY_REVIEWED", err)
	}

	// the double approval must not count twice
	if w.participants[0].TotalPaid != 650 {
		t.Errorf("total paid = %v, want 650", w.participants[0].TotalPaid)
	}
}

func TestReview_RejectRequiresReason(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(250)
	uc := w.usecase(nil)

	in := ReviewInput{ReviewerID: lenderID, PaymentID: pay.PaymentID, Decision: DecisionRejected, Notes: "too short"}
	if _, err := uc.Review(context.Background(), in); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("short reason err = %v, want VALIDATION_ERROR", err)
	}
	if w.payments[0].Status != domainPayment.StatusPending {
		t.Fatalf("payment left pending state on failed reject: %+v", w.payments[0])
	}

	in.Notes = "amount does not match the transfer I received"
	got, err := uc.Review(context.Background(), in)
	if err != nil {
		t.Fatalf("Review reject: %v", err)
	}
	if got.Status != string(domainPayment.StatusRejected) || got.RejectionReason != in.Notes {
		t.Errorf("unexpected result: %+v", got)
	}

	// rejection never moves money
	if w.participants[0].TotalPaid != 400 || w.participants[0].RemainingBalance != 600 {
		t.Errorf("rejection touched balances: %+v", w.participants[0])
	}
}

func TestReview_OnlyLenderMayReview(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(250)
	uc := w.usecase(nil)

	in := ReviewInput{ReviewerID: borrowerID, PaymentID: pay.PaymentID, Decision: DecisionApproved}
	if _, err := uc.Review(context.Background(), in); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("err = %v, want ACCESS_DENIED", err)
	}
}

func TestReview_ApproveRechecksStoredBalance(t *testing.T) {
	// The pending payment was admissible at submit time, but the balance
	// shrank before review. Approval must fail against the current number.
	w := newWorld(600)
	pay := w.seedPayment(500)
	w.participants[0].TotalPaid = 600
	w.participants[0].RemainingBalance = 400
	uc := w.usecase(nil)

	in := ReviewInput{ReviewerID: lenderID, PaymentID: pay.PaymentID, Decision: DecisionApproved}
	if _, err := uc.Review(context.Background(), in); !errors.Is(err, apperr.ErrInvalidAmount) {
		t.Fatalf("err = %v, want INVALID_AMOUNT", err)
	}
	if w.payments[0].Status != domainPayment.StatusPending || w.participants[0].RemainingBalance != 400 {
		t.Errorf("failed approval mutated state: payment=%+v participant=%+v", w.payments[0], w.participants[0])
	}
}

func TestReview_InputErrors(t *testing.T) {
	w := newWorld(600)
	uc := w.usecase(nil)

	if _, err := uc.Review(context.Background(), ReviewInput{
		ReviewerID: lenderID, PaymentID: uuid.NewString(), Decision: "maybe",
	}); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad decision err = %v, want VALIDATION_ERROR", err)
	}

	if _, err := uc.Review(context.Background(), ReviewInput{
		ReviewerID: lenderID, PaymentID: uuid.NewString(), Decision: DecisionApproved,
	}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown payment err = %v, want NOT_FOUND", err)
	}
}

func TestListByLoan_ScopesLenderToOwnPayments(t *testing.T) {
	w := newWorld(600)
	now := time.Now().UTC()
	w.participants = append(w.participants, &domainParticipant.Participant{
		ParticipantID:      "qqqqqqqqqqqqqqqqqqqqqqqqqqqqqqqq",
		LoanID:             loanID,
		LenderID:           strangerID,
		LenderEmail:        "dave@example.com",
		ContributionAmount: 500,
		Status:             domainParticipant.StatusAccepted,
		RemainingBalance:   500,
		InvitedAt:          now,
	})
	mine := w.seedPayment(100)
	other := w.seedPayment(200)
	other.LenderID = strangerID
	uc := w.usecase(nil)

	// borrower sees the whole history
	all, err := uc.ListByLoan(context.Background(), borrowerID, loanID)
	if err != nil {
		t.Fatalf("ListByLoan borrower: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("borrower view = %d payments, want 2", len(all))
	}

	// a lender only sees payments addressed to them
	own, err := uc.ListByLoan(context.Background(), lenderID, loanID)
	if err != nil {
		t.Fatalf("ListByLoan lender: %v", err)
	}
	if len(own) != 1 || own[0].PaymentID != mine.PaymentID {
		t.Fatalf("lender view: %+v", own)
	}

	outsider := "ffffffffffffffffffffffffffffffff"
	if _, err := uc.ListByLoan(context.Background(), outsider, loanID); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("outsider err = %v, want ACCESS_DENIED", err)
	}
	if _, err := uc.ListByLoan(context.Background(), borrowerID, strings.Repeat("e", 32)); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown loan err = %v, want NOT_FOUND", err)
	}
}

func TestGet_AccessControl(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(100)
	uc := w.usecase(nil)

	for _, requester := range []string{borrowerID, lenderID} {
		if _, err := uc.Get(context.Background(), requester, pay.PaymentID); err != nil {
			t.Fatalf("Get as %s: %v", requester, err)
		}
	}
	if _, err := uc.Get(context.Background(), strangerID, pay.PaymentID); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("stranger err = %v, want ACCESS_DENIED", err)
	}
	if _, err := uc.Get(context.Background(), borrowerID, uuid.NewString()); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown payment err = %v, want NOT_FOUND", err)
	}
}

func TestListPendingReviews_JoinsDisplayNames(t *testing.T) {
	w := newWorld(600)
	w.seedPayment(100)
	w.seedPayment(150)
	reviewed := w.seedPayment(50)
	reviewed.Approve(lenderID, "", time.Now().UTC())
	uc := w.usecase(nil)

	got, err := uc.ListPendingReviews(context.Background(), lenderID)
	if err != nil {
		t.Fatalf("ListPendingReviews: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("queue = %d entries, want 2", len(got))
	}
	for _, v := range got {
		if v.LoanName != "Food Truck Expansion" || v.BorrowerName != "Bob Borrower" {
			t.Errorf("display fields not joined: %+v", v)
		}
	}
}

func TestReceiptUploadURL(t *testing.T) {
	w := newWorld(600)
	ps := &fakePresigner{}
	uc := w.usecase(ps)

	got, err := uc.ReceiptUploadURL(context.Background(), UploadURLInput{
		BorrowerID: borrowerID,
		LoanID:     loanID,
		LenderID:   lenderID,
		FileName:   "../bank/statement.pdf",
		FileType:   "application/pdf",
	})
	if err != nil {
		t.Fatalf("ReceiptUploadURL: %v", err)
	}

	parts := strings.Split(got.FileKey, "/")
	if len(parts) != 4 || parts[0] != loanID || parts[1] != lenderID {
		t.Fatalf("unexpected key layout: %q", got.FileKey)
	}
	if parts[2] != got.PaymentID {
		t.Errorf("key payment id %q != result payment id %q", parts[2], got.PaymentID)
	}
	if _, err := uuid.Parse(got.PaymentID); err != nil {
		t.Errorf("payment id not a uuid: %q", got.PaymentID)
	}
	// path separators in the client filename must not add key segments
	if parts[3] != ".._bank_statement.pdf" {
		t.Errorf("filename not sanitized: %q", parts[3])
	}
	if ps.putType != "application/pdf" || ps.putTTL != 15*time.Minute {
		t.Errorf("presign call: type=%q ttl=%v", ps.putType, ps.putTTL)
	}
	if got.UploadURL != "https://uploads.test/"+got.FileKey {
		t.Errorf("upload url = %q", got.UploadURL)
	}
}

func TestReceiptUploadURL_Errors(t *testing.T) {
	w := newWorld(600)
	uc := w.usecase(&fakePresigner{})

	in := UploadURLInput{
		BorrowerID: borrowerID,
		LoanID:     loanID,
		LenderID:   lenderID,
		FileName:   "receipt.gif",
		FileType:   "image/gif",
	}
	if _, err := uc.ReceiptUploadURL(context.Background(), in); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("bad file type err = %v, want VALIDATION_ERROR", err)
	}

	in.FileType = "image/png"
	in.BorrowerID = strangerID
	if _, err := uc.ReceiptUploadURL(context.Background(), in); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("non-borrower err = %v, want ACCESS_DENIED", err)
	}

	in.BorrowerID = borrowerID
	in.LoanID = strings.Repeat("e", 32)
	if _, err := uc.ReceiptUploadURL(context.Background(), in); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("unknown loan err = %v, want NOT_FOUND", err)
	}
}

func TestReceiptViewURL(t *testing.T) {
	w := newWorld(600)
	pay := w.seedPayment(100)
	pay.ReceiptKey = loanID + "/" + lenderID + "/" + pay.PaymentID + "/receipt.png"
	ps := &fakePresigner{}
	uc := w.usecase(ps)

	got, err := uc.ReceiptViewURL(context.Background(), lenderID, pay.PaymentID)
	if err != nil {
		t.Fatalf("ReceiptViewURL: %v", err)
	}
	if got.URL != "https://receipts.test/"+pay.ReceiptKey {
		t.Errorf("url = %q", got.URL)
	}
	if ps.getKey != pay.ReceiptKey || ps.getTTL != time.Hour {
		t.Errorf("presign call: key=%q ttl=%v", ps.getKey, ps.getTTL)
	}

	if _, err := uc.ReceiptViewURL(context.Background(), strangerID, pay.PaymentID); !errors.Is(err, apperr.ErrAccessDenied) {
		t.Fatalf("stranger err = %v, want ACCESS_DENIED", err)
	}

	bare := w.seedPayment(50)
	if _, err := uc.ReceiptViewURL(context.Background(), borrowerID, bare.PaymentID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing receipt err = %v, want NOT_FOUND", err)
	}
}
