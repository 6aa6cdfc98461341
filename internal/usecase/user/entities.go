package user

import "time"

type Profile struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsBorrower bool      `json:"is_borrower"`
	IsLender   bool      `json:"is_lender"`
	Roles      []string  `json:"roles"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type BorrowerStats struct {
	TotalLoans       int     `json:"total_loans"`
	ActiveLoans      int     `json:"active_loans"`
	CompletedLoans   int     `json:"completed_loans"`
	TotalBorrowed    float64 `json:"total_borrowed"`
	TotalOutstanding float64 `json:"total_outstanding"`
}

type LenderStats struct {
	TotalInvestments int     `json:"total_investments"`
	PendingInvites   int     `json:"pending_invites"`
	TotalCommitted   float64 `json:"total_committed"`
	TotalRepaid      float64 `json:"total_repaid"`
	TotalOutstanding float64 `json:"total_outstanding"`
}

type Dashboard struct {
	Profile  Profile        `json:"profile"`
	Borrower *BorrowerStats `json:"borrower,omitempty"`
	Lender   *LenderStats   `json:"lender,omitempty"`
}

// PortfolioEntry is one accepted participation seen from the lender
// side, joined with the loan's display fields.
type PortfolioEntry struct {
	LoanID             string     `json:"loan_id"`
	LoanName           string     `json:"loan_name"`
	BorrowerName       string     `json:"borrower_name"`
	LoanStatus         string     `json:"loan_status"`
	InterestRate       float64    `json:"interest_rate"`
	PaymentFrequency   string     `json:"payment_frequency"`
	MaturityDate       time.Time  `json:"maturity_date"`
	ContributionAmount float64    `json:"contribution_amount"`
	TotalPaid          float64    `json:"total_paid"`
	RemainingBalance   float64    `json:"remaining_balance"`
	AcceptedAt         *time.Time `json:"accepted_at,omitempty"`
}

type Portfolio struct {
	TotalCommitted   float64          `json:"total_committed"`
	TotalRepaid      float64          `json:"total_repaid"`
	TotalOutstanding float64          `json:"total_outstanding"`
	Entries          []PortfolioEntry `json:"entries"`
}
