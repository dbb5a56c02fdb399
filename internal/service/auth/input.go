package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

const (
	maxEmailLen    = 254
	maxPasswordLen = 72 // bcrypt ignores bytes beyond 72
)

// RegisterInput holds parameters for registration.
type RegisterInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate(minPasswordLen int) error {
	var errs []domain.FieldError
	errs = validateEmail(errs, i.Email)

	switch {
	case i.Password == "":
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	case len(i.Password) < minPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("min %d characters", minPasswordLen)})
	case len(i.Password) > maxPasswordLen:
		errs = append(errs, domain.FieldError{Field: "password", Message: fmt.Sprintf("max %d bytes", maxPasswordLen)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for password login.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError
	errs = validateEmail(errs, i.Email)
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for token refresh.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks all fields.
func (i RefreshInput) Validate() error {
	if i.RefreshToken == "" {
		return domain.NewValidationError("refreshToken", "required")
	}
	if len(i.RefreshToken) > 512 {
		return domain.NewValidationError("refreshToken", "too long")
	}
	return nil
}

func validateEmail(errs []domain.FieldError, email string) []domain.FieldError {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	case len(email) > maxEmailLen:
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid email"})
	}
	return errs
}
