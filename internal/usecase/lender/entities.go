package lender

import "time"

type InviteEntry struct {
	Email              string  `json:"email"`
	ContributionAmount float64 `json:"contribution_amount"`
}

type InviteInput struct {
	LoanID        string
	BorrowerID    string
	BorrowerEmail string
	Lenders       []InviteEntry
}

type InviteResult struct {
	LoanID              string  `json:"loan_id"`
	LendersAdded        int     `json:"lenders_added"`
	ParticipantsCreated int     `json:"participants_created"`
	InvitationsCreated  int     `json:"invitations_created"`
	TotalInvited        float64 `json:"total_invited"`
	Remaining           float64 `json:"remaining"`
	IsFullyInvited      bool    `json:"is_fully_invited"`
}

type ACHInput struct {
	BankName            string `json:"bank_name"`
	AccountType         string `json:"account_type"`
	RoutingNumber       string `json:"routing_number"`
	AccountNumber       string `json:"account_number"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type AcceptInput struct {
	LoanID      string
	LenderID    string
	LenderEmail string
	ACH         ACHInput
}

type AcceptResult struct {
	LoanID             string    `json:"loan_id"`
	Status             string    `json:"status"`
	LoanStatus         string    `json:"loan_status"`
	ContributionAmount float64   `json:"contribution_amount"`
	AcceptedAt         time.Time `json:"accepted_at"`
}

type DeclineResult struct {
	LoanID     string    `json:"loan_id"`
	Status     string    `json:"status"`
	DeclinedAt time.Time `json:"declined_at"`
}

// InvitationView is a pending participant joined with loan summary fields
// for the lender's inbox.
type InvitationView struct {
	LoanID             string    `json:"loan_id"`
	LoanName           string    `json:"loan_name"`
	LoanAmount         float64   `json:"loan_amount"`
	LoanPurpose        string    `json:"loan_purpose"`
	LoanDescription    string    `json:"loan_description"`
	InterestRate       float64   `json:"interest_rate"`
	BorrowerName       string    `json:"borrower_name"`
	ContributionAmount float64   `json:"contribution_amount"`
	InvitedAt          time.Time `json:"invited_at"`
	Status             string    `json:"status"`
	LoanStatus         string    `json:"loan_status"`
	TotalFunded        float64   `json:"total_funded"`
	FundingPercentage  float64   `json:"funding_percentage"`
}

// LenderSearchView aggregates a previously participating lender's stats
// for the borrower-facing search.
type LenderSearchView struct {
	LenderID string            `json:"lender_id"`
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Stats    LenderSearchStats `json:"stats"`
}

type LenderSearchStats struct {
	InvestmentCount   int     `json:"investment_count"`
	TotalInvested     float64 `json:"total_invested"`
	AverageInvestment float64 `json:"average_investment"`
}
