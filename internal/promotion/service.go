package promotion

import (
	"log/slog"
	"time"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns discounts matching the search term. Active rows whose window
// has passed are flipped to Expired before the result is returned, so the
// listing never shows a stale Active status.
func (s *Service) List(search string) ([]*Discount, error) {
	discounts, err := s.repo.List(search)
	if err != nil {
		s.logger.Error("failed to list discounts", "error", err)
		return nil, err
	}

	now := s.now()
	var stale []int64
	for _, d := range discounts {
		if d.Status == StatusActive && d.Expired(now) {
			d.Status = StatusExpired
			stale = append(stale, d.ID)
		}
	}
	if len(stale) > 0 {
		if err := s.repo.MarkExpired(stale); err != nil {
			// The response already carries the corrected status; the
			// next listing retries the write.
			s.logger.Warn("failed to persist expired discount status", "error", err, "count", len(stale))
		}
	}

	return discounts, nil
}

func (s *Service) GetByID(id int64) (*Discount, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDiscountNotFound
	}
	if d.Status == StatusActive && d.Expired(s.now()) {
		d.Status = StatusExpired
		if err := s.repo.MarkExpired([]int64{d.ID}); err != nil {
			s.logger.Warn("failed to persist expired discount status", "error", err, "discount_id", d.ID)
		}
	}
	return d, nil
}

func (s *Service) Create(dto CreateDiscountDTO) (*Discount, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	discountType, value, err := ParseValue(dto.Value)
	if err != nil {
		return nil, err
	}

	effectiveFrom := dto.EffectiveFrom
	if effectiveFrom.IsZero() {
		effectiveFrom = s.now()
	}

	d := &Discount{
		Code:          dto.Code,
		Type:          discountType,
		Value:         value,
		Status:        StatusActive,
		EffectiveFrom: effectiveFrom,
		ExpiresAt:     dto.ExpiresAt,
	}
	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create discount", "error", err, "code", dto.Code)
		return nil, err
	}

	s.logger.Info("discount created", "discount_id", d.ID, "code", d.Code, "type", d.Type)
	return d, nil
}

func (s *Service) Update(id int64, dto UpdateDiscountDTO) (*Discount, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDiscountNotFound
	}

	if dto.Code != nil {
		d.Code = *dto.Code
	}
	if dto.Value != nil {
		discountType, value, perr := ParseValue(*dto.Value)
		if perr != nil {
			return nil, perr
		}
		d.Type = discountType
		d.Value = value
	}
	if dto.Status != nil {
		d.Status = *dto.Status
	}
	if dto.EffectiveFrom != nil {
		d.EffectiveFrom = *dto.EffectiveFrom
	}
	if dto.ExpiresAt != nil {
		d.ExpiresAt = *dto.ExpiresAt
		// Extending the window revives an expired code.
		if d.Status == StatusExpired && d.ExpiresAt.After(s.now()) {
			d.Status = StatusActive
		}
	}

	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update discount", "error", err, "discount_id", id)
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrDiscountNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete discount", "error", err, "discount_id", id)
		return err
	}
	s.logger.Info("discount deleted", "discount_id", id)
	return nil
}
