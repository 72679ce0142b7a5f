package postgres

import (
	"fmt"

	"github.com/frahmantamala/topup-commerce/internal/auth"
	userDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentials(usernameOrEmail string) (string, string, error) {
	var u userDatamodel.User
	err := r.db.Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).First(&u).Error
	if err != nil {
		return "", "", err
	}
	return u.PasswordHash, u.UserID, nil
}

func (r *AuthRepository) GetUserByID(userID string) (*auth.User, error) {
	var u userDatamodel.User
	err := r.db.Where("user_id = ?", userID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &auth.User{
		ID:       u.UserID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}, nil
}

func (r *AuthRepository) UsernameOrEmailExists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// CreateUser allocates the next CUS identifier and inserts the row in one
// transaction, so a failed insert never burns a visible id gap.
func (r *AuthRepository) CreateUser(nu *auth.NewUser) (string, error) {
	var userID string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Raw("UPDATE id_counters SET value = value + 1 WHERE name = ? RETURNING value", "customer").Scan(&n).Error; err != nil {
			return err
		}
		userID = fmt.Sprintf("CUS%03d", n)

		u := &userDatamodel.User{
			UserID:       userID,
			Username:     nu.Username,
			FirstName:    nu.FirstName,
			LastName:     nu.LastName,
			Email:        nu.Email,
			PhoneNumber:  nu.PhoneNumber,
			DateOfBirth:  nu.DateOfBirth,
			PasswordHash: nu.PasswordHash,
			Role:         userDatamodel.RoleCustomer,
		}
		return tx.Create(u).Error
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}
