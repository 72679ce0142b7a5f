package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	catalogDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/catalog"
	orderDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/order"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/order"
)

// OrderStore implements both the checkout transaction and the read side.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Begin(ctx context.Context) (order.OrderTx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &orderTx{tx: tx}, nil
}

type orderTx struct {
	tx *gorm.DB
}

// nextID bumps the named counter row. The single-row UPDATE is atomic and
// serializes concurrent checkouts per prefix, so two transactions can never
// see the same value.
func (t *orderTx) nextID(counter, prefix string) (string, error) {
	var n int64
	err := t.tx.Raw(
		"UPDATE id_counters SET value = value + 1 WHERE name = ? RETURNING value",
		counter,
	).Scan(&n).Error
	if err != nil {
		return "", classifyError(err)
	}
	if n == 0 {
		return "", fmt.Errorf("id counter %q missing", counter)
	}
	return fmt.Sprintf("%s%03d", prefix, n), nil
}

func (t *orderTx) NextOrderID() (string, error) {
	return t.nextID("order", "ORD")
}

func (t *orderTx) NextPaymentID() (string, error) {
	return t.nextID("payment", "PAY")
}

func (t *orderTx) PackagePrice(productID, packageID string) (decimal.Decimal, error) {
	var row catalogDatamodel.ProductPackage
	err := t.tx.Where("package_id = ? AND product_id = ?", packageID, productID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, order.ErrPackageNotFound
		}
		return decimal.Zero, classifyError(err)
	}
	return row.Price, nil
}

func (t *orderTx) InsertOrder(o *orderDatamodel.Order) error {
	if err := t.tx.Create(o).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

func (t *orderTx) InsertOrderItem(item *orderDatamodel.OrderItem) error {
	if err := t.tx.Create(item).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

func (t *orderTx) InsertPayment(p *paymentDatamodel.Payment) error {
	if err := t.tx.Create(p).Error; err != nil {
		return classifyError(err)
	}
	return nil
}

func (t *orderTx) Commit() error {
	if err := t.tx.Commit().Error; err != nil {
		return classifyError(err)
	}
	return nil
}

func (t *orderTx) Rollback() error {
	err := t.tx.Rollback().Error
	// Rolling back a finished transaction is a no-op, not a failure.
	if err != nil && errors.Is(err, gorm.ErrInvalidTransaction) {
		return nil
	}
	return err
}

// classifyError maps driver errors onto the checkout error set. Postgres
// reports SQLSTATE codes; the sqlite test harness only gives message text.
func classifyError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", order.ErrDuplicateKey, err)
		case "22001":
			return fmt.Errorf("%w: %v", order.ErrValueTooLong, err)
		}
		return err
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key") {
		return fmt.Errorf("%w: %v", order.ErrDuplicateKey, err)
	}
	return err
}

func (s *OrderStore) OrderLog(search string, limit, offset int) ([]*order.OrderLogEntry, error) {
	query := s.db.Table("orders").
		Select(`orders.order_id,
			users.first_name || COALESCE(' ' || users.last_name, '') AS customer_name,
			order_items.product_id,
			order_items.package_id,
			payments.amount,
			payments.method AS payment_method,
			orders.status AS order_status,
			payments.status AS payment_status,
			orders.purchase_date`).
		Joins("JOIN users ON users.user_id = orders.user_id").
		Joins("JOIN order_items ON order_items.order_id = orders.order_id").
		Joins("JOIN payments ON payments.order_id = orders.order_id")

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(orders.order_id) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(order_items.product_id) LIKE ? OR LOWER(orders.status) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var entries []*order.OrderLogEntry
	err := query.Order("orders.purchase_date DESC").
		Limit(limit).Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *OrderStore) LatestOrder(userID string) (*order.OrderDetail, error) {
	var o orderDatamodel.Order
	err := s.db.Where("user_id = ?", userID).
		Order("purchase_date DESC").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return s.loadDetail(&o)
}

func (s *OrderStore) GetOrder(orderID string) (*order.OrderDetail, error) {
	var o orderDatamodel.Order
	if err := s.db.Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, err
	}
	return s.loadDetail(&o)
}

func (s *OrderStore) loadDetail(o *orderDatamodel.Order) (*order.OrderDetail, error) {
	var items []orderDatamodel.OrderItem
	if err := s.db.Where("order_id = ?", o.OrderID).Find(&items).Error; err != nil {
		return nil, err
	}

	detail := &order.OrderDetail{Order: *o, Items: items}

	var p paymentDatamodel.Payment
	err := s.db.Where("order_id = ?", o.OrderID).First(&p).Error
	if err == nil {
		detail.Payment = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return detail, nil
}

func (s *OrderStore) UpdateStatus(orderID, status string) (string, error) {
	var oldStatus string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var o orderDatamodel.Order
		if err := tx.Where("order_id = ?", orderID).First(&o).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return order.ErrOrderNotFound
			}
			return err
		}
		oldStatus = o.Status
		return tx.Model(&orderDatamodel.Order{}).
			Where("order_id = ?", orderID).
			Update("status", status).Error
	})
	if err != nil {
		return "", err
	}
	return oldStatus, nil
}

// interface checks
var (
	_ order.TxStore  = (*OrderStore)(nil)
	_ order.QueryAPI = (*OrderStore)(nil)
)
