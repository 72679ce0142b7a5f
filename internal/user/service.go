package user

import (
	"log/slog"

	"github.com/frahmantamala/topup-commerce/internal/core/common/validation"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetProfile(userID string) (*Profile, error) {
	profile, err := s.repo.GetProfile(userID)
	if err != nil {
		s.logger.Error("failed to get profile", "error", err, "user_id", userID)
		return nil, ErrUserNotFound
	}
	return profile, nil
}

func (s *Service) UpdateProfile(userID string, dto *UpdateProfileDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if dto.Email != nil {
		if appErr := validation.ValidateEmail(*dto.Email); appErr != nil {
			return appErr
		}
	}
	if dto.PhoneNumber != nil {
		if appErr := validation.ValidatePhoneNumber(*dto.PhoneNumber); appErr != nil {
			return appErr
		}
	}

	if err := s.repo.UpdateProfile(userID, dto); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return nil
}

func (s *Service) ListCustomers(search string, limit, offset int) ([]*CustomerLogEntry, error) {
	customers, err := s.repo.ListCustomers(search, limit, offset)
	if err != nil {
		s.logger.Error("failed to list customers", "error", err)
		return nil, err
	}
	return customers, nil
}
