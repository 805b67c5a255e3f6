package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/secure-vault/models"
)

// MinPasswordLength is the shortest login password accepted at signup.
const MinPasswordLength = 8

// UserValidator validates signup and login payloads.
type UserValidator struct{}

// NewUserValidator returns a [Validator] for account payloads.
func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, _ ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		if err := validateEmail(value.Email); err != nil {
			return err
		}
		if utf8.RuneCountInString(value.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		return nil

	case models.LoginRequest:
		if err := validateEmail(value.Email); err != nil {
			return err
		}
		if value.Password == "" {
			return ErrEmptyPassword
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

// validateEmail accepts a bare address only; "Name <a@b>" forms are
// rejected.
func validateEmail(email string) error {
	if email == "" || strings.TrimSpace(email) != email {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
