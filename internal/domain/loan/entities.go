package loan

import (
	"math"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Loan struct {
	ID               uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID           string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID       string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	LoanName         string         `gorm:"size:200" json:"loan_name"`
	Principal        float64        `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate     float64        `gorm:"type:decimal(6,4)" json:"interest_rate"`
	Purpose          string         `gorm:"size:100" json:"purpose"`
	Description      string         `gorm:"type:text" json:"description"`
	PaymentFrequency string         `gorm:"size:16" json:"payment_frequency"`
	TermLength       int            `json:"term_length"`
	StartDate        time.Time      `gorm:"type:date" json:"start_date"`
	MaturityDate     time.Time      `gorm:"type:date" json:"maturity_date"`
	TotalPayments    int            `json:"total_payments"`
	Status           Status         `gorm:"type:enum('pending','active','completed','cancelled');default:'pending'" json:"status"`
	TotalFunded      float64        `gorm:"type:decimal(18,2);default:0" json:"total_funded"`
	TotalInvited     float64        `gorm:"type:decimal(18,2);default:0" json:"total_invited"`
	StatusUpdatedAt  time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// FundingPercentage is total_funded over principal, rounded to 2 places.
func (l *Loan) FundingPercentage() float64 {
	if l.Principal <= 0 {
		return 0
	}
	return math.Round(l.TotalFunded/l.Principal*100*100) / 100
}

// RemainingAmount is how much principal is still open for invitations.
func (l *Loan) RemainingAmount() float64 { return l.Principal - l.TotalInvited }

func (l *Loan) IsFullyFunded() bool { return l.TotalFunded >= l.Principal }

// AcceptingInvitations reports whether new participants may still be
// invited or respond. Only PENDING loans accept lender activity.
func (l *Loan) AcceptingInvitations() bool { return l.Status == StatusPending }

func (l *Loan) SetStatus(s Status, at time.Time) {
	l.Status = s
	l.StatusUpdatedAt = at
}
