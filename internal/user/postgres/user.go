package postgres

import (
	"strings"

	userDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/user"
	"github.com/frahmantamala/topup-commerce/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetProfile(userID string) (*user.Profile, error) {
	var u userDatamodel.User
	if err := r.db.Where("user_id = ?", userID).First(&u).Error; err != nil {
		return nil, err
	}
	return &user.Profile{
		UserID:      u.UserID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		DateOfBirth: u.DateOfBirth,
		CreatedAt:   u.CreatedAt,
	}, nil
}

func (r *UserRepository) UpdateProfile(userID string, update *user.UpdateProfileDTO) error {
	fields := map[string]interface{}{}
	if update.FirstName != nil {
		fields["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		fields["last_name"] = *update.LastName
	}
	if update.Email != nil {
		fields["email"] = *update.Email
	}
	if update.PhoneNumber != nil {
		fields["phone_number"] = *update.PhoneNumber
	}
	if len(fields) == 0 {
		return nil
	}

	result := r.db.Model(&userDatamodel.User{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListCustomers(search string, limit, offset int) ([]*user.CustomerLogEntry, error) {
	var rows []userDatamodel.User
	query := r.db.Model(&userDatamodel.User{}).
		Where("role = ?", userDatamodel.RoleCustomer)

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(user_id) LIKE ? OR LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*user.CustomerLogEntry, 0, len(rows))
	for _, u := range rows {
		name := u.FirstName
		if u.LastName != nil && *u.LastName != "" {
			name = name + " " + *u.LastName
		}
		entries = append(entries, &user.CustomerLogEntry{
			UserID:       u.UserID,
			CustomerName: name,
			Email:        u.Email,
			PhoneNumber:  u.PhoneNumber,
			RegisteredAt: u.CreatedAt,
		})
	}
	return entries, nil
}
