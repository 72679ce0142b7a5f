package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentLogEntry is one row of the admin payment listing, joined with the
// order and the paying customer.
type PaymentLogEntry struct {
	PaymentID     string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	Method        string          `json:"method"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
}

type RepositoryAPI interface {
	PaymentLog(search string, limit, offset int) ([]*PaymentLogEntry, error)
	// UpdateStatus returns the order id the payment belongs to.
	UpdateStatus(paymentID, status string) (orderID string, err error)
}
