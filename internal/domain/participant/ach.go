package participant

import "time"

// ACHDetail stores the banking reference captured at acceptance. The funds
// transfer itself happens outside this system; the record is written only
// inside the acceptance transaction.
type ACHDetail struct {
	ID                  uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID              string    `gorm:"size:32;index:idx_ach_user" json:"user_id"`
	LoanID              string    `gorm:"size:32;index:idx_ach_loan" json:"loan_id"`
	BankName            string    `gorm:"size:100" json:"bank_name"`
	AccountType         string    `gorm:"size:16" json:"account_type"`
	RoutingNumber       string    `gorm:"size:9" json:"-"`
	AccountNumber       string    `gorm:"size:20" json:"-"`
	SpecialInstructions string    `gorm:"size:500" json:"special_instructions,omitempty"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ACHDetail) TableName() string { return "ach_details" }
