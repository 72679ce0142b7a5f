package promotion

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateDiscountDTO accepts the discount value in either form: "25%" becomes
// a Percentage discount stored as the fraction 0.25, a plain number becomes
// a Fixed amount.
type CreateDiscountDTO struct {
	Code          string    `json:"code"`
	Value         string    `json:"value"`
	EffectiveFrom time.Time `json:"effective_from"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func (dto CreateDiscountDTO) Validate() error {
	if dto.Code == "" {
		return errors.New("code is required")
	}
	if dto.Value == "" {
		return errors.New("value is required")
	}
	if dto.ExpiresAt.IsZero() {
		return errors.New("expires_at is required")
	}
	if !dto.EffectiveFrom.IsZero() && dto.ExpiresAt.Before(dto.EffectiveFrom) {
		return errors.New("expires_at must be after effective_from")
	}
	if _, _, err := ParseValue(dto.Value); err != nil {
		return err
	}
	return nil
}

// ParseValue turns the submitted value string into a discount type and a
// stored value.
func ParseValue(raw string) (discountType string, value decimal.Decimal, err error) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "%") {
		pct, perr := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
		if perr != nil {
			return "", decimal.Zero, errors.New("invalid percentage value")
		}
		if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
			return "", decimal.Zero, errors.New("percentage must be between 0 and 100")
		}
		return TypePercentage, pct.Div(decimal.NewFromInt(100)), nil
	}

	amount, perr := decimal.NewFromString(raw)
	if perr != nil {
		return "", decimal.Zero, errors.New("invalid discount value")
	}
	if amount.IsNegative() {
		return "", decimal.Zero, errors.New("discount amount cannot be negative")
	}
	return TypeFixed, amount, nil
}

type UpdateDiscountDTO struct {
	Code          *string    `json:"code,omitempty"`
	Value         *string    `json:"value,omitempty"`
	Status        *string    `json:"status,omitempty"`
	EffectiveFrom *time.Time `json:"effective_from,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func (dto UpdateDiscountDTO) Validate() error {
	if dto.Code == nil && dto.Value == nil && dto.Status == nil &&
		dto.EffectiveFrom == nil && dto.ExpiresAt == nil {
		return errors.New("no fields to update")
	}
	if dto.Code != nil && *dto.Code == "" {
		return errors.New("code cannot be empty")
	}
	if dto.Value != nil {
		if _, _, err := ParseValue(*dto.Value); err != nil {
			return err
		}
	}
	if dto.Status != nil {
		switch *dto.Status {
		case StatusActive, StatusExpired, StatusDisabled:
		default:
			return errors.New("invalid status")
		}
	}
	return nil
}
