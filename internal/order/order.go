package order

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	orderDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/order"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
)

// Storage errors the checkout transaction distinguishes. The store maps
// driver-specific codes onto these; the service maps them onto HTTP errors.
var (
	ErrPackageNotFound = errors.New("package not found for product")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrValueTooLong    = errors.New("value too long for column")
	ErrOrderNotFound   = errors.New("order not found")
)

// CreatedOrder is the result of a successful checkout. The verified amount
// rides along for event publication but is not part of the response body.
type CreatedOrder struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`

	amount string
}

// OrderLogEntry is one row of the admin order listing, joined across order,
// item, payment and customer.
type OrderLogEntry struct {
	OrderID       string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	ProductID     string          `json:"product_id"`
	PackageID     string          `json:"package_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	OrderStatus   string          `json:"order_status"`
	PaymentStatus string          `json:"payment_status"`
	PurchaseDate  time.Time       `json:"purchase_date"`
}

// OrderDetail is the customer-facing view of an order with its line item
// and payment record.
type OrderDetail struct {
	Order   orderDatamodel.Order       `json:"order"`
	Items   []orderDatamodel.OrderItem `json:"items"`
	Payment *paymentDatamodel.Payment  `json:"payment,omitempty"`
}

// TxStore opens checkout transactions. Everything inside a transaction
// commits or rolls back as one unit.
type TxStore interface {
	Begin(ctx context.Context) (OrderTx, error)
}

// OrderTx is one open checkout transaction. Identifier allocation and the
// price lookup happen inside the transaction so a failed checkout leaves
// no trace.
type OrderTx interface {
	NextOrderID() (string, error)
	NextPaymentID() (string, error)
	// PackagePrice returns the stored price only when the package belongs
	// to the product; otherwise ErrPackageNotFound.
	PackagePrice(productID, packageID string) (decimal.Decimal, error)
	InsertOrder(o *orderDatamodel.Order) error
	InsertOrderItem(item *orderDatamodel.OrderItem) error
	InsertPayment(p *paymentDatamodel.Payment) error
	Commit() error
	Rollback() error
}

// QueryAPI covers the read and status-update side, outside the checkout
// transaction.
type QueryAPI interface {
	OrderLog(search string, limit, offset int) ([]*OrderLogEntry, error)
	LatestOrder(userID string) (*OrderDetail, error)
	GetOrder(orderID string) (*OrderDetail, error)
	// UpdateStatus returns the previous status.
	UpdateStatus(orderID, status string) (string, error)
}
