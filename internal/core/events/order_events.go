package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOrderCreated         = "order.created"
	EventTypeOrderStatusChanged   = "order.status_changed"
	EventTypePaymentStatusChanged = "payment.status_changed"
)

type OrderCreatedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	PackageID string `json:"package_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

func NewOrderCreatedEvent(orderID, paymentID, userID, productID, packageID, amount, method string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"payment_id": paymentID,
				"user_id":    userID,
				"product_id": productID,
				"package_id": packageID,
				"amount":     amount,
				"method":     method,
			},
		},
		OrderID:   orderID,
		PaymentID: paymentID,
		UserID:    userID,
		ProductID: productID,
		PackageID: packageID,
		Amount:    amount,
		Method:    method,
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewOrderStatusChangedEvent(orderID, oldStatus, newStatus string) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":   orderID,
				"old_status": oldStatus,
				"new_status": newStatus,
			},
		},
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}

type PaymentStatusChangedEvent struct {
	BaseEvent
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
}

func NewPaymentStatusChangedEvent(paymentID, orderID, newStatus string) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id": paymentID,
				"order_id":   orderID,
				"new_status": newStatus,
			},
		},
		PaymentID: paymentID,
		OrderID:   orderID,
		NewStatus: newStatus,
	}
}
