package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Payment records share the same lifecycle values.
const (
	StatusInProgress = "In Progress"
	StatusSuccess    = "Success"
	StatusCancel     = "Cancel"
)

// Order is one customer purchase of a single top-up package.
type Order struct {
	OrderID      string    `json:"order_id" gorm:"column:order_id;primaryKey"`
	UserID       string    `json:"user_id" gorm:"column:user_id;not null;index"`
	GameUID      *string   `json:"game_uid,omitempty" gorm:"column:game_uid"`
	GameServer   *string   `json:"game_server,omitempty" gorm:"column:game_server"`
	PurchaseDate time.Time `json:"purchase_date" gorm:"column:purchase_date;not null"`
	Status       string    `json:"status" gorm:"column:status;default:'In Progress'"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is the single line item of an order; the checkout flow always
// writes exactly one with quantity 1.
type OrderItem struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	OrderID      string          `json:"order_id" gorm:"column:order_id;not null;index"`
	ProductID    string          `json:"product_id" gorm:"column:product_id;not null"`
	PackageID    string          `json:"package_id" gorm:"column:package_id;not null"`
	Quantity     int             `json:"quantity" gorm:"column:quantity;not null"`
	PricePerItem decimal.Decimal `json:"price_per_item" gorm:"column:price_per_item;type:numeric(12,2)"`
	Subtotal     decimal.Decimal `json:"subtotal" gorm:"column:subtotal;type:numeric(12,2)"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
