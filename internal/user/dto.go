package user

import "errors"

// UpdateProfileDTO carries the editable profile fields. Nil means "leave
// unchanged".
type UpdateProfileDTO struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.FirstName == nil && dto.LastName == nil && dto.Email == nil && dto.PhoneNumber == nil {
		return errors.New("no fields to update")
	}
	if dto.FirstName != nil && *dto.FirstName == "" {
		return errors.New("first_name cannot be empty")
	}
	if dto.Email != nil && *dto.Email == "" {
		return errors.New("email cannot be empty")
	}
	return nil
}
