package loan

import (
	"time"

	"lendcircle-backend/internal/usecase/lender"
)

type CreateLoanInput struct {
	BorrowerID       string
	BorrowerEmail    string
	LoanName         string
	Principal        float64
	InterestRate     float64
	Purpose          string
	Description      string
	PaymentFrequency string
	TermLength       int
	StartDate        time.Time
	Lenders          []lender.InviteEntry
}

type FundingProgress struct {
	TotalFunded       float64 `json:"total_funded"`
	TotalInvited      float64 `json:"total_invited"`
	RemainingAmount   float64 `json:"remaining_amount"`
	FundingPercentage float64 `json:"funding_percentage"`
	IsFullyFunded     bool    `json:"is_fully_funded"`
}

type MaturityTerms struct {
	StartDate        time.Time `json:"start_date"`
	PaymentFrequency string    `json:"payment_frequency"`
	TermLength       int       `json:"term_length"`
	MaturityDate     time.Time `json:"maturity_date"`
	TotalPayments    int       `json:"total_payments"`
}

type LoanDTO struct {
	LoanID       string        `json:"loan_id"`
	BorrowerID   string        `json:"borrower_id"`
	LoanName     string        `json:"loan_name"`
	Principal    float64       `json:"principal"`
	InterestRate float64       `json:"interest_rate"`
	Purpose      string        `json:"purpose"`
	Description  string        `json:"description"`
	Maturity     MaturityTerms `json:"maturity_terms"`
	Status       string        `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// ParticipantView exposes one lender's stake. Identity fields are only
// populated for the borrower; a lender sees their own entry alone.
type ParticipantView struct {
	ParticipantID      string     `json:"participant_id"`
	LenderName         string     `json:"lender_name,omitempty"`
	LenderEmail        string     `json:"lender_email,omitempty"`
	ContributionAmount float64    `json:"contribution_amount"`
	Status             string     `json:"status"`
	InvitedAt          time.Time  `json:"invited_at"`
	RespondedAt        *time.Time `json:"responded_at,omitempty"`
	TotalPaid          float64    `json:"total_paid"`
	RemainingBalance   float64    `json:"remaining_balance"`
}

type LoanDetails struct {
	LoanDTO
	Funding      FundingProgress   `json:"funding"`
	Participants []ParticipantView `json:"participants"`
}

type LoanSummary struct {
	LoanDTO
	Funding       FundingProgress `json:"funding"`
	LenderCount   int             `json:"lender_count"`
	AcceptedCount int             `json:"accepted_count"`
	PendingCount  int             `json:"pending_count"`
}

type MyLoansResult struct {
	Loans      []LoanSummary `json:"loans"`
	TotalCount int64         `json:"total_count"`
	Limit      int           `json:"limit"`
	Offset     int           `json:"offset"`
}

type CreateLoanResult struct {
	Loan        LoanDTO              `json:"loan"`
	Invitations *lender.InviteResult `json:"invitations,omitempty"`
}
