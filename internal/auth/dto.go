package auth

import (
	"time"
	"unicode"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterDTO struct {
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    *string `json:"last_name,omitempty"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phone_number"`
	DateOfBirth string  `json:"date_of_birth"` // YYYY-MM-DD
	Password    string  `json:"password"`
}

// RefreshTokenDTO for refresh token requests
type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// Validate checks required fields and returns a ValidationError on failure.
func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	if d.Username == "" || d.FirstName == "" || d.Email == "" || d.Password == "" || d.PhoneNumber == "" || d.DateOfBirth == "" {
		return ValidationError{Msg: "missing required fields"}
	}
	if len(d.Username) < 3 {
		return ValidationError{Msg: "username must be at least 3 characters long"}
	}
	if _, err := time.Parse("2006-01-02", d.DateOfBirth); err != nil {
		return ValidationError{Msg: "date_of_birth must be YYYY-MM-DD"}
	}
	if !isPasswordComplex(d.Password) {
		return ValidationError{Msg: "password must be at least 12 characters and contain upper, lower, digit and symbol"}
	}
	return nil
}

// Validate for refresh token DTO
func (d RefreshTokenDTO) Validate() error {
	if d.RefreshToken == "" {
		return ValidationError{Msg: "refresh_token is required"}
	}
	return nil
}

func isPasswordComplex(password string) bool {
	if len(password) < 12 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}
