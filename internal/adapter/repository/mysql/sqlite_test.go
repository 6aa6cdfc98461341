package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM/engine specifics) ---

type loanSQLite struct {
	ID               uint64         `gorm:"primaryKey;column:id"`
	LoanID           string         `gorm:"size:32;column:loan_id"`
	BorrowerID       string         `gorm:"size:32;column:borrower_id"`
	LoanName         string         `gorm:"column:loan_name"`
	Principal        float64        `gorm:"column:principal"`
	InterestRate     float64        `gorm:"column:interest_rate"`
	Purpose          string         `gorm:"column:purpose"`
	Description      string         `gorm:"column:description"`
	PaymentFrequency string         `gorm:"column:payment_frequency"`
	TermLength       int            `gorm:"column:term_length"`
	StartDate        time.Time      `gorm:"column:start_date"`
	MaturityDate     time.Time      `gorm:"column:maturity_date"`
	TotalPayments    int            `gorm:"column:total_payments"`
	Status           string         `gorm:"type:text;column:status"` // ← no enum
	TotalFunded      float64        `gorm:"column:total_funded"`
	TotalInvited     float64        `gorm:"column:total_invited"`
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type userSQLite struct {
	ID           uint64         `gorm:"primaryKey;column:id"`
	UserID       string         `gorm:"size:32;column:user_id"`
	Name         string         `gorm:"column:name"`
	Email        string         `gorm:"column:email"`
	PasswordHash string         `gorm:"column:password_hash"`
	IsBorrower   bool           `gorm:"column:is_borrower"`
	IsLender     bool           `gorm:"column:is_lender"`
	Status       string         `gorm:"type:text;column:status"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (userSQLite) TableName() string { return "users" }

type participantSQLite struct {
	ID                 uint64     `gorm:"primaryKey;column:id"`
	ParticipantID      string     `gorm:"size:32;column:participant_id"`
	LoanID             string     `gorm:"size:32;column:loan_id"`
	LenderID           string     `gorm:"size:64;column:lender_id"`
	LenderEmail        string     `gorm:"column:lender_email"`
	ContributionAmount float64    `gorm:"column:contribution_amount"`
	Status             string     `gorm:"type:text;column:status"`
	InvitedAt          time.Time  `gorm:"column:invited_at"`
	RespondedAt        *time.Time `gorm:"column:responded_at"`
	TotalPaid          float64    `gorm:"column:total_paid"`
	RemainingBalance   float64    `gorm:"column:remaining_balance"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (participantSQLite) TableName() string { return "loan_participants" }

type invitationSQLite struct {
	ID           uint64     `gorm:"primaryKey;column:id"`
	InvitationID string     `gorm:"size:32;column:invitation_id"`
	InviteeEmail string     `gorm:"column:invitee_email"`
	InviterID    string     `gorm:"size:32;column:inviter_id"`
	LoanID       string     `gorm:"size:32;column:loan_id"`
	Status       string     `gorm:"type:text;column:status"`
	ActivatedAt  *time.Time `gorm:"column:activated_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

func (invitationSQLite) TableName() string { return "invitations" }

type paymentSQLite struct {
	ID              uint64     `gorm:"primaryKey;column:id"`
	PaymentID       string     `gorm:"size:36;column:payment_id"`
	LoanID          string     `gorm:"size:32;column:loan_id"`
	BorrowerID      string     `gorm:"size:32;column:borrower_id"`
	LenderID        string     `gorm:"size:64;column:lender_id"`
	Amount          float64    `gorm:"column:amount"`
	PaymentDate     time.Time  `gorm:"column:payment_date"`
	Notes           string     `gorm:"column:notes"`
	ReceiptKey      string     `gorm:"column:receipt_key"`
	Status          string     `gorm:"type:text;column:status"`
	ApprovalNotes   string     `gorm:"column:approval_notes"`
	RejectionReason string     `gorm:"column:rejection_reason"`
	ReviewedBy      string     `gorm:"column:reviewed_by"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type achSQLite struct {
	ID                  uint64    `gorm:"primaryKey;column:id"`
	UserID              string    `gorm:"size:32;column:user_id"`
	LoanID              string    `gorm:"size:32;column:loan_id"`
	BankName            string    `gorm:"column:bank_name"`
	AccountType         string    `gorm:"type:text;column:account_type"`
	RoutingNumber       string    `gorm:"column:routing_number"`
	AccountNumber       string    `gorm:"column:account_number"`
	SpecialInstructions string    `gorm:"column:special_instructions"`
	CreatedAt           time.Time `gorm:"column:created_at"`
}

func (achSQLite) TableName() string { return "ach_details" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// IMPORTANT: migrate the sqlite-safe models, NOT the domain models.
	if err := db.AutoMigrate(
		&loanSQLite{}, &userSQLite{}, &participantSQLite{},
		&invitationSQLite{}, &paymentSQLite{}, &achSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
