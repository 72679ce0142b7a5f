package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypePercentage = "Percentage"
	TypeFixed      = "Fixed"
)

const (
	StatusActive   = "Active"
	StatusExpired  = "Expired"
	StatusDisabled = "Disabled"
)

// Discount is a promotional code. Percentage values are stored as a
// fraction (0.25 for 25%), fixed values as a currency amount.
type Discount struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Code          string          `json:"code" gorm:"column:code;not null;uniqueIndex"`
	Type          string          `json:"type" gorm:"column:type;not null"`
	Value         decimal.Decimal `json:"value" gorm:"column:value;type:numeric(12,4)"`
	Status        string          `json:"status" gorm:"column:status;default:'Active'"`
	EffectiveFrom time.Time       `json:"effective_from" gorm:"column:effective_from"`
	ExpiresAt     time.Time       `json:"expires_at" gorm:"column:expires_at"`
	CreatedAt     time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Discount) TableName() string {
	return "discounts"
}
