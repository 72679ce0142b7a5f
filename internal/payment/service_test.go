package payment_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/topup-commerce/internal"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/payment"
)

func TestPaymentService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Service Suite")
}

type mockPaymentRepository struct {
	entries     []*payment.PaymentLogEntry
	orderIDs    map[string]string
	updateError error

	updatedPaymentID string
	updatedStatus    string
}

func (m *mockPaymentRepository) PaymentLog(search string, limit, offset int) ([]*payment.PaymentLogEntry, error) {
	return m.entries, nil
}

func (m *mockPaymentRepository) UpdateStatus(paymentID, status string) (string, error) {
	if m.updateError != nil {
		return "", m.updateError
	}
	orderID, ok := m.orderIDs[paymentID]
	if !ok {
		return "", payment.ErrPaymentNotFound
	}
	m.updatedPaymentID = paymentID
	m.updatedStatus = status
	return orderID, nil
}

var _ = Describe("PaymentService", func() {
	var (
		svc  *payment.Service
		repo *mockPaymentRepository
		ctx  context.Context
	)

	BeforeEach(func() {
		repo = &mockPaymentRepository{orderIDs: map[string]string{"PAY001": "ORD001"}}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = payment.NewService(repo, nil, logger)
		ctx = context.Background()
	})

	Describe("UpdateStatus", func() {
		It("should persist an allowed status", func() {
			err := svc.UpdateStatus(ctx, "PAY001", paymentDatamodel.StatusSuccess)

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updatedPaymentID).To(Equal("PAY001"))
			Expect(repo.updatedStatus).To(Equal(paymentDatamodel.StatusSuccess))
		})

		It("should reject an unknown status", func() {
			err := svc.UpdateStatus(ctx, "PAY001", "Refunded")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(repo.updatedPaymentID).To(BeEmpty())
		})

		It("should map a missing payment to 404", func() {
			err := svc.UpdateStatus(ctx, "PAY404", paymentDatamodel.StatusCancel)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("should wrap storage failures as internal errors", func() {
			repo.updateError = errors.New("connection reset")

			err := svc.UpdateStatus(ctx, "PAY001", paymentDatamodel.StatusCancel)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(500))
		})
	})

	Describe("PaymentLog", func() {
		It("should pass through the repository rows", func() {
			repo.entries = []*payment.PaymentLogEntry{
				{PaymentID: "PAY001", OrderID: "ORD001", Status: paymentDatamodel.StatusInProgress},
			}

			entries, err := svc.PaymentLog("", 50, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].PaymentID).To(Equal("PAY001"))
		})
	})
})
