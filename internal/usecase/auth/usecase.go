package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"lendcircle-backend/internal/auth"
	"lendcircle-backend/internal/domain/apperr"
	domainUser "lendcircle-backend/internal/domain/user"
	"lendcircle-backend/pkg/id"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	IsBorrower bool     `json:"is_borrower"`
	IsLender   bool     `json:"is_lender"`
	Roles      []string `json:"roles"`
}

type AuthResult struct {
	Token                string  `json:"token"`
	User                 UserDTO `json:"user"`
	InvitationsActivated int     `json:"invitations_activated,omitempty"`
}

// Activator is the invitation-activation side channel owned by the
// lender engine.
type Activator interface {
	ActivateForUser(ctx context.Context, u *domainUser.User) (int, error)
}

type Usecase struct {
	userRepo  domainUser.Repository
	activator Activator
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUsecase(users domainUser.Repository, activator Activator, jwtSecret []byte, tokenTTL time.Duration) *Usecase {
	return &Usecase{userRepo: users, activator: activator, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a borrower account. An email with pending invitations
// comes out of registration already holding the lender role.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "name and email are required")
	}
	if err := ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	usr := &domainUser.User{
		UserID:       id.NewID32(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsBorrower:   true,
		Status:       domainUser.StatusActive,
	}
	if err := u.userRepo.Create(ctx, usr); err != nil {
		return nil, err
	}

	activated, err := u.activator.ActivateForUser(ctx, usr)
	if err != nil {
		return nil, err
	}

	return u.result(usr, activated)
}

// Login verifies credentials and, like registration, activates any
// invitations that arrived for this email since the last session.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	usr, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(usr.PasswordHash, in.Password) {
		return nil, apperr.ErrInvalidCredentials
	}
	if usr.Status != domainUser.StatusActive {
		return nil, apperr.Wrap(apperr.ErrAccessDenied, "account is inactive")
	}

	activated, err := u.activator.ActivateForUser(ctx, usr)
	if err != nil {
		return nil, err
	}

	return u.result(usr, activated)
}

func (u *Usecase) result(usr *domainUser.User, activated int) (*AuthResult, error) {
	roles := make([]string, 0, 2)
	for _, r := range usr.Roles() {
		roles = append(roles, string(r))
	}
	token, err := auth.GenerateToken(usr.UserID, usr.Email, roles, u.jwtSecret, u.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User: UserDTO{
			UserID:     usr.UserID,
			Name:       usr.Name,
			Email:      usr.Email,
			IsBorrower: usr.IsBorrower,
			IsLender:   usr.IsLender,
			Roles:      roles,
		},
		InvitationsActivated: activated,
	}, nil
}
