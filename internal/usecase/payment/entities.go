package payment

import "time"

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

const MinRejectionReason = 10

type SubmitInput struct {
	BorrowerID  string
	LoanID      string
	LenderID    string
	Amount      float64
	PaymentDate time.Time
	Notes       string
	ReceiptKey  string
}

type ReviewInput struct {
	ReviewerID string
	PaymentID  string
	Decision   Decision
	Notes      string
}

type PaymentDTO struct {
	PaymentID        string     `json:"payment_id"`
	LoanID           string     `json:"loan_id"`
	BorrowerID       string     `json:"borrower_id"`
	LenderID         string     `json:"lender_id"`
	Amount           float64    `json:"amount"`
	PaymentDate      time.Time  `json:"payment_date"`
	Notes            string     `json:"notes,omitempty"`
	ReceiptKey       string     `json:"receipt_key,omitempty"`
	Status           string     `json:"status"`
	ApprovalNotes    string     `json:"approval_notes,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	ReviewedBy       string     `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	RemainingBalance float64    `json:"remaining_balance,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PendingReviewView joins a pending payment with loan and borrower
// display fields for the lender's review queue.
type PendingReviewView struct {
	PaymentDTO
	LoanName     string `json:"loan_name"`
	BorrowerName string `json:"borrower_name"`
}

type UploadURLInput struct {
	BorrowerID string
	LoanID     string
	LenderID   string
	FileName   string
	FileType   string
}

type UploadURLResult struct {
	UploadURL string    `json:"upload_url"`
	FileKey   string    `json:"file_key"`
	PaymentID string    `json:"payment_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ReceiptURLResult struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
