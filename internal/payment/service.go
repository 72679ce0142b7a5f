package payment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/topup-commerce/internal"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/core/events"
)

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) PaymentLog(search string, limit, offset int) ([]*PaymentLogEntry, error) {
	entries, err := s.repo.PaymentLog(search, limit, offset)
	if err != nil {
		s.logger.Error("failed to list payments", "error", err)
		return nil, err
	}
	return entries, nil
}

func (s *Service) UpdateStatus(ctx context.Context, paymentID, status string) error {
	switch status {
	case paymentDatamodel.StatusInProgress, paymentDatamodel.StatusSuccess, paymentDatamodel.StatusCancel:
	default:
		return internal.NewValidationError("invalid payment status", internal.ErrCodeValidationFailed)
	}

	orderID, err := s.repo.UpdateStatus(paymentID, status)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			return internal.NewNotFoundError("payment not found", internal.ErrCodePaymentNotFound)
		}
		s.logger.Error("failed to update payment status", "error", err, "payment_id", paymentID)
		return internal.NewInternalError("could not update payment status", err)
	}

	s.logger.Info("payment status updated",
		"payment_id", paymentID,
		"order_id", orderID,
		"status", status,
		"updated_by", internal.UserIDFromContext(ctx))

	if s.eventBus != nil {
		event := events.NewPaymentStatusChangedEvent(paymentID, orderID, status)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish payment status event", "error", err)
		}
	}
	return nil
}
