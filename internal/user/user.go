package user

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// Profile is the customer-facing view of an account.
type Profile struct {
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"first_name"`
	LastName    *string    `json:"last_name,omitempty"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CustomerLogEntry is one row of the admin customer listing.
type CustomerLogEntry struct {
	UserID       string    `json:"user_id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	RegisteredAt time.Time `json:"registered_at"`
}

type RepositoryAPI interface {
	GetProfile(userID string) (*Profile, error)
	UpdateProfile(userID string, update *UpdateProfileDTO) error
	ListCustomers(search string, limit, offset int) ([]*CustomerLogEntry, error)
}
