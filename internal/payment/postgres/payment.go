package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/payment"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) payment.RepositoryAPI {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) PaymentLog(search string, limit, offset int) ([]*payment.PaymentLogEntry, error) {
	query := r.db.Table("payments").
		Select(`payments.payment_id,
			payments.order_id,
			users.first_name || COALESCE(' ' || users.last_name, '') AS customer_name,
			payments.method,
			payments.amount,
			payments.status,
			payments.transaction_id,
			payments.payment_date`).
		Joins("JOIN orders ON orders.order_id = payments.order_id").
		Joins("JOIN users ON users.user_id = orders.user_id")

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(payments.payment_id) LIKE ? OR LOWER(payments.order_id) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(payments.status) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var entries []*payment.PaymentLogEntry
	err := query.Order("payments.payment_date DESC").
		Limit(limit).Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PaymentRepository) UpdateStatus(paymentID, status string) (string, error) {
	var orderID string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p paymentDatamodel.Payment
		if err := tx.Where("payment_id = ?", paymentID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payment.ErrPaymentNotFound
			}
			return err
		}
		orderID = p.OrderID
		return tx.Model(&paymentDatamodel.Payment{}).
			Where("payment_id = ?", paymentID).
			Update("status", status).Error
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}
