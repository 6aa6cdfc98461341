package auth

import (
	"regexp"

	"lendcircle-backend/internal/domain/apperr"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	reLower = regexp.MustCompile(`[a-z]`)
	reUpper = regexp.MustCompile(`[A-Z]`)
	reDigit = regexp.MustCompile(`\d`)
)

// ValidatePassword enforces min 8 chars with at least one lowercase,
// uppercase, and digit.
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return apperr.Wrap(apperr.ErrValidation, "password must be at least 8 characters")
	}
	if !reLower.MatchString(pw) {
		return apperr.Wrap(apperr.ErrValidation, "password must contain at least one lowercase letter")
	}
	if !reUpper.MatchString(pw) {
		return apperr.Wrap(apperr.ErrValidation, "password must contain at least one uppercase letter")
	}
	if !reDigit.MatchString(pw) {
		return apperr.Wrap(apperr.ErrValidation, "password must contain at least one digit")
	}
	return nil
}
