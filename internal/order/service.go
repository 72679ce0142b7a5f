package order

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/topup-commerce/internal"
	orderDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/order"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/core/events"
)

type Service struct {
	store    TxStore
	queries  QueryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store TxStore, queries QueryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		queries:  queries,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateOrder runs the checkout: it validates the request, re-verifies the
// package price against storage, and writes the order, its line item and the
// payment record in one transaction. Nothing is written before validation
// passes, and a failure at any insert rolls back everything.
func (s *Service) CreateOrder(ctx context.Context, userID string, dto CreateOrderDTO) (*CreatedOrder, error) {
	if appErr := dto.Validate(userID); appErr != nil {
		return nil, appErr
	}

	method, ok := MapPaymentMethod(dto.PaymentMethod)
	if !ok {
		return nil, internal.NewValidationError(
			"unsupported payment method: "+dto.PaymentMethod,
			internal.ErrCodeInvalidPaymentMethod,
		)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		s.logger.Error("failed to open checkout transaction", "error", err)
		return nil, internal.NewInternalError("could not start checkout", err)
	}

	created, err := s.runCheckout(tx, userID, dto, method)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed after checkout error", "error", rbErr, "cause", err)
		}
		return nil, s.classify(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("checkout commit failed", "error", err)
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed after commit error", "error", rbErr)
		}
		return nil, s.classify(err)
	}

	s.logger.Info("order created",
		"order_id", created.OrderID,
		"payment_id", created.PaymentID,
		"user_id", userID,
		"product_id", dto.ProductID,
		"package_id", dto.PackageID,
		"method", method)

	if s.eventBus != nil {
		event := events.NewOrderCreatedEvent(
			created.OrderID, created.PaymentID, userID,
			dto.ProductID, dto.PackageID, created.amount, method,
		)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish order created event", "error", err)
		}
	}

	return created, nil
}

func (s *Service) runCheckout(tx OrderTx, userID string, dto CreateOrderDTO, method string) (*CreatedOrder, error) {
	price, err := tx.PackagePrice(dto.ProductID, dto.PackageID)
	if err != nil {
		return nil, err
	}

	if dto.PackagePrice != nil && !dto.PackagePrice.Equal(price) {
		s.logger.Warn("submitted price differs from stored price, using stored",
			"product_id", dto.ProductID,
			"package_id", dto.PackageID,
			"submitted", dto.PackagePrice.String(),
			"stored", price.String())
	}

	orderID, err := tx.NextOrderID()
	if err != nil {
		return nil, err
	}
	paymentID, err := tx.NextPaymentID()
	if err != nil {
		return nil, err
	}

	now := s.now()

	if err := tx.InsertOrder(&orderDatamodel.Order{
		OrderID:      orderID,
		UserID:       userID,
		GameUID:      dto.GameUID,
		GameServer:   dto.GameServer,
		PurchaseDate: now,
		Status:       orderDatamodel.StatusInProgress,
	}); err != nil {
		return nil, err
	}

	if err := tx.InsertOrderItem(&orderDatamodel.OrderItem{
		OrderID:      orderID,
		ProductID:    dto.ProductID,
		PackageID:    dto.PackageID,
		Quantity:     1,
		PricePerItem: price,
		Subtotal:     price,
	}); err != nil {
		return nil, err
	}

	payment := &paymentDatamodel.Payment{
		PaymentID:   paymentID,
		OrderID:     orderID,
		Method:      method,
		Amount:      price,
		Status:      paymentDatamodel.StatusInProgress,
		PaymentDate: now,
	}
	applyPaymentDetails(payment, method, dto.PaymentDetails)

	if err := tx.InsertPayment(payment); err != nil {
		return nil, err
	}

	return &CreatedOrder{
		OrderID:   orderID,
		PaymentID: paymentID,
		amount:    price.StringFixed(2),
	}, nil
}

// applyPaymentDetails fills the single detail column matching the method.
// True Wallet numbers arrive in the customerPromptpayNumber field, which is
// what the web client sends for that method.
func applyPaymentDetails(p *paymentDatamodel.Payment, method string, details PaymentDetailsDTO) {
	switch method {
	case paymentDatamodel.MethodCreditCard:
		if details.CustomerCardNumber != nil {
			masked := maskCardNumber(*details.CustomerCardNumber)
			p.CustomerCardNumber = &masked
		}
	case paymentDatamodel.MethodBankTransfer:
		p.CustomerBankAccount = details.CustomerBankAccountNumber
		p.PaymentProofPath = details.PaymentProofPath
	case paymentDatamodel.MethodPromptpay:
		p.CustomerPromptpayNumber = details.CustomerPromptpayNumber
	case paymentDatamodel.MethodTrueWallet:
		p.CustomerTrueWalletNumber = details.CustomerPromptpayNumber
	}
}

// classify maps storage errors onto the checkout error taxonomy.
func (s *Service) classify(err error) error {
	switch {
	case errors.Is(err, ErrPackageNotFound):
		return internal.NewUnprocessableError(
			"package price could not be verified",
			internal.ErrCodePriceVerificationFailed,
		)
	case errors.Is(err, ErrDuplicateKey):
		return internal.NewConflictError(
			"order identifier already exists",
			internal.ErrCodeDuplicateIdentifier,
		)
	case errors.Is(err, ErrValueTooLong):
		return internal.NewValidationError(
			"a submitted value exceeds the allowed length",
			internal.ErrCodeConstraintViolation,
		)
	default:
		appErr := internal.NewInternalError("checkout transaction failed", err)
		appErr.Code = internal.ErrCodeTransactionFailed
		return appErr
	}
}

func (s *Service) OrderLog(search string, limit, offset int) ([]*OrderLogEntry, error) {
	entries, err := s.queries.OrderLog(search, limit, offset)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, err
	}
	return entries, nil
}

func (s *Service) LatestOrder(userID string) (*OrderDetail, error) {
	detail, err := s.queries.LatestOrder(userID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return detail, nil
}

func (s *Service) GetOrder(orderID string) (*OrderDetail, error) {
	detail, err := s.queries.GetOrder(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return detail, nil
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	switch status {
	case orderDatamodel.StatusInProgress, orderDatamodel.StatusSuccess, orderDatamodel.StatusCancel:
	default:
		return internal.NewValidationError("invalid order status", internal.ErrCodeValidationFailed)
	}

	oldStatus, err := s.queries.UpdateStatus(orderID, status)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return internal.NewNotFoundError("order not found", internal.ErrCodeOrderNotFound)
		}
		s.logger.Error("failed to update order status", "error", err, "order_id", orderID)
		return internal.NewInternalError("could not update order status", err)
	}

	s.logger.Info("order status updated",
		"order_id", orderID,
		"old_status", oldStatus,
		"new_status", status,
		"updated_by", internal.UserIDFromContext(ctx))

	if s.eventBus != nil {
		event := events.NewOrderStatusChangedEvent(orderID, oldStatus, status)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish order status event", "error", err)
		}
	}
	return nil
}
