package participant

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// PendingLenderPrefix keys participants whose invitee has no account yet.
// Registration re-keys such records to the new user id.
const PendingLenderPrefix = "pending:"

func PendingLenderID(email string) string {
	return PendingLenderPrefix + strings.ToLower(email)
}

// Participant ties one lender to one loan: the invitation, the allocation,
// and the running repayment balance once accepted.
type Participant struct {
	ID                 uint64     `gorm:"primaryKey;column:id" json:"-"`
	ParticipantID      string     `gorm:"size:32;uniqueIndex:ux_participants_participant_id" json:"participant_id"`
	LoanID             string     `gorm:"size:32;index:idx_participants_loan;uniqueIndex:ux_participants_loan_email,priority:1" json:"loan_id"`
	LenderID           string     `gorm:"size:64;index:idx_participants_lender" json:"lender_id"`
	LenderEmail        string     `gorm:"size:255;uniqueIndex:ux_participants_loan_email,priority:2" json:"lender_email"`
	ContributionAmount float64    `gorm:"type:decimal(18,2)" json:"contribution_amount"`
	Status             Status     `gorm:"type:enum('pending','accepted','declined');default:'pending'" json:"status"`
	InvitedAt          time.Time  `json:"invited_at"`
	RespondedAt        *time.Time `json:"responded_at,omitempty"`
	TotalPaid          float64    `gorm:"type:decimal(18,2);default:0" json:"total_paid"`
	RemainingBalance   float64    `gorm:"type:decimal(18,2);default:0" json:"remaining_balance"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Participant) TableName() string { return "loan_participants" }

// Responded reports whether the participant has left PENDING. Terminal
// once true; there is no path back.
func (p *Participant) Responded() bool { return p.Status != StatusPending }

func (p *Participant) Accept(lenderID string, at time.Time) {
	p.LenderID = lenderID
	p.Status = StatusAccepted
	p.RespondedAt = &at
	p.RemainingBalance = p.ContributionAmount
}

func (p *Participant) Decline(at time.Time) {
	p.Status = StatusDeclined
	p.RespondedAt = &at
}
