package invitation

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusActivated Status = "activated"
)

// Invitation bridges invitations sent to emails with no account yet.
// Registering or logging in with a matching email activates it.
type Invitation struct {
	ID           uint64     `gorm:"primaryKey;column:id" json:"-"`
	InvitationID string     `gorm:"size:32;uniqueIndex:ux_invitations_invitation_id" json:"invitation_id"`
	InviteeEmail string     `gorm:"size:255;index:idx_invitations_email" json:"invitee_email"`
	InviterID    string     `gorm:"size:32" json:"inviter_id"`
	LoanID       string     `gorm:"size:32;index:idx_invitations_loan" json:"loan_id"`
	Status       Status     `gorm:"type:enum('pending','activated');default:'pending'" json:"status"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
}

func (Invitation) TableName() string { return "invitations" }

func (i *Invitation) Activate(at time.Time) {
	i.Status = StatusActivated
	i.ActivatedAt = &at
}
