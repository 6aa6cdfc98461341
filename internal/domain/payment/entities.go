package payment

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Payment is a borrower's claim of having repaid part of one lender's
// allocation. It mutates the participant's balance only on approval.
type Payment struct {
	ID              uint64     `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string     `gorm:"size:36;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID          string     `gorm:"size:32;index:idx_payments_loan" json:"loan_id"`
	BorrowerID      string     `gorm:"size:32" json:"borrower_id"`
	LenderID        string     `gorm:"size:32;index:idx_payments_lender_status,priority:1" json:"lender_id"`
	Amount          float64    `gorm:"type:decimal(18,2)" json:"amount"`
	PaymentDate     time.Time  `gorm:"type:date" json:"payment_date"`
	Notes           string     `gorm:"size:1000" json:"notes,omitempty"`
	ReceiptKey      string     `gorm:"type:text" json:"receipt_key,omitempty"`
	Status          Status     `gorm:"type:enum('pending','approved','rejected');default:'pending';index:idx_payments_lender_status,priority:2" json:"status"`
	ApprovalNotes   string     `gorm:"size:1000" json:"approval_notes,omitempty"`
	RejectionReason string     `gorm:"size:1000" json:"rejection_reason,omitempty"`
	ReviewedBy      string     `gorm:"size:32" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// Reviewed reports whether the payment has left PENDING. Terminal once
// true; resubmission means a new payment record.
func (p *Payment) Reviewed() bool { return p.Status != StatusPending }

func (p *Payment) Approve(reviewerID, notes string, at time.Time) {
	p.Status = StatusApproved
	p.ApprovalNotes = notes
	p.ReviewedBy = reviewerID
	p.ReviewedAt = &at
}

func (p *Payment) Reject(reviewerID, reason string, at time.Time) {
	p.Status = StatusRejected
	p.RejectionReason = reason
	p.ReviewedBy = reviewerID
	p.ReviewedAt = &at
}
