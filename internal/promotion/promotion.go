package promotion

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDiscountNotFound = errors.New("discount not found")
	ErrDuplicateCode    = errors.New("discount code already exists")
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

type Discount struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	Status        string          `json:"status"`
	EffectiveFrom time.Time       `json:"effective_from"`
	ExpiresAt     time.Time       `json:"expires_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Expired reports whether the discount's window has passed, regardless of
// its stored status.
func (d *Discount) Expired(now time.Time) bool {
	return d.ExpiresAt.Before(now)
}

type RepositoryAPI interface {
	List(search string) ([]*Discount, error)
	GetByID(id int64) (*Discount, error)
	Create(d *Discount) error
	Update(d *Discount) error
	Delete(id int64) error
	// MarkExpired flips the status of the given rows to Expired.
	MarkExpired(ids []int64) error
}
