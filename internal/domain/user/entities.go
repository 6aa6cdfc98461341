package user

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Role is a granted capability. Authorization checks test membership in
// Roles() instead of reading the raw flags.
type Role string

const (
	RoleBorrower Role = "borrower"
	RoleLender   Role = "lender"
)

type User struct {
	ID           uint64         `gorm:"primaryKey;column:id" json:"-"`
	UserID       string         `gorm:"size:32;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name         string         `gorm:"size:100" json:"name"`
	Email        string         `gorm:"size:255;uniqueIndex:ux_users_email_active" json:"email"`
	PasswordHash string         `gorm:"type:text" json:"-"`
	IsBorrower   bool           `gorm:"default:true" json:"is_borrower"`
	IsLender     bool           `gorm:"default:false" json:"is_lender"`
	Status       Status         `gorm:"size:16;default:'active'" json:"status"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) Roles() []Role {
	var roles []Role
	if u.IsBorrower {
		roles = append(roles, RoleBorrower)
	}
	if u.IsLender {
		roles = append(roles, RoleLender)
	}
	return roles
}

func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles() {
		if have == r {
			return true
		}
	}
	return false
}

// GrantLender flips the lender capability on. Idempotent.
func (u *User) GrantLender() { u.IsLender = true }
