package user

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is a registered account. Customer identifiers are human-readable
// (CUS001, CUS002, ...) and allocated from a database counter.
type User struct {
	UserID       string     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username     string     `json:"username" gorm:"column:username;not null;uniqueIndex"`
	FirstName    string     `json:"first_name" gorm:"column:first_name;not null"`
	LastName     *string    `json:"last_name,omitempty" gorm:"column:last_name"`
	Email        string     `json:"email" gorm:"column:email;not null;uniqueIndex"`
	PhoneNumber  string     `json:"phone_number" gorm:"column:phone_number;not null"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" gorm:"column:date_of_birth;type:date"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	Role         string     `json:"role" gorm:"column:role;default:'customer'"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
