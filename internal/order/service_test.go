package order_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/topup-commerce/internal"
	orderDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/order"
	paymentDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/payment"
	"github.com/frahmantamala/topup-commerce/internal/order"
)

func TestOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Service Suite")
}

// mockTx records every call so the specs can assert what the checkout did
// and did not touch.
type mockTx struct {
	orderSeq   int64
	paymentSeq int64

	prices map[string]decimal.Decimal // productID|packageID -> price

	insertedOrders   []*orderDatamodel.Order
	insertedItems    []*orderDatamodel.OrderItem
	insertedPayments []*paymentDatamodel.Payment

	priceError         error
	insertOrderError   error
	insertItemError    error
	insertPaymentError error
	commitError        error

	committed  bool
	rolledBack bool
}

func newMockTx() *mockTx {
	return &mockTx{prices: make(map[string]decimal.Decimal)}
}

func (m *mockTx) NextOrderID() (string, error) {
	m.orderSeq++
	return fmt.Sprintf("ORD%03d", m.orderSeq), nil
}

func (m *mockTx) NextPaymentID() (string, error) {
	m.paymentSeq++
	return fmt.Sprintf("PAY%03d", m.paymentSeq), nil
}

func (m *mockTx) PackagePrice(productID, packageID string) (decimal.Decimal, error) {
	if m.priceError != nil {
		return decimal.Zero, m.priceError
	}
	price, ok := m.prices[productID+"|"+packageID]
	if !ok {
		return decimal.Zero, order.ErrPackageNotFound
	}
	return price, nil
}

func (m *mockTx) InsertOrder(o *orderDatamodel.Order) error {
	if m.insertOrderError != nil {
		return m.insertOrderError
	}
	m.insertedOrders = append(m.insertedOrders, o)
	return nil
}

func (m *mockTx) InsertOrderItem(item *orderDatamodel.OrderItem) error {
	if m.insertItemError != nil {
		return m.insertItemError
	}
	m.insertedItems = append(m.insertedItems, item)
	return nil
}

func (m *mockTx) InsertPayment(p *paymentDatamodel.Payment) error {
	if m.insertPaymentError != nil {
		return m.insertPaymentError
	}
	m.insertedPayments = append(m.insertedPayments, p)
	return nil
}

func (m *mockTx) Commit() error {
	if m.commitError != nil {
		return m.commitError
	}
	m.committed = true
	return nil
}

func (m *mockTx) Rollback() error {
	m.rolledBack = true
	return nil
}

type mockTxStore struct {
	tx         *mockTx
	beginError error
	beginCalls int
}

func (m *mockTxStore) Begin(ctx context.Context) (order.OrderTx, error) {
	m.beginCalls++
	if m.beginError != nil {
		return nil, m.beginError
	}
	return m.tx, nil
}

type mockQueries struct {
	logEntries  []*order.OrderLogEntry
	latest      *order.OrderDetail
	oldStatus   string
	updateError error

	updatedOrderID string
	updatedStatus  string
}

func (m *mockQueries) OrderLog(search string, limit, offset int) ([]*order.OrderLogEntry, error) {
	return m.logEntries, nil
}

func (m *mockQueries) LatestOrder(userID string) (*order.OrderDetail, error) {
	if m.latest == nil {
		return nil, errors.New("no rows")
	}
	return m.latest, nil
}

func (m *mockQueries) GetOrder(orderID string) (*order.OrderDetail, error) {
	if m.latest == nil {
		return nil, errors.New("no rows")
	}
	return m.latest, nil
}

func (m *mockQueries) UpdateStatus(orderID, status string) (string, error) {
	if m.updateError != nil {
		return "", m.updateError
	}
	m.updatedOrderID = orderID
	m.updatedStatus = status
	return m.oldStatus, nil
}

var _ = Describe("OrderService", func() {
	var (
		svc     *order.Service
		store   *mockTxStore
		tx      *mockTx
		queries *mockQueries
		ctx     context.Context
	)

	str := func(s string) *string { return &s }
	dec := func(s string) *decimal.Decimal {
		d, err := decimal.NewFromString(s)
		Expect(err).NotTo(HaveOccurred())
		return &d
	}

	validDTO := func() order.CreateOrderDTO {
		return order.CreateOrderDTO{
			ProductID:     "GAME001",
			PackageID:     "PKG002",
			PackagePrice:  dec("279.00"),
			GameUID:       str("uid-777"),
			GameServer:    str("asia-1"),
			PaymentMethod: "promptpay",
			PaymentDetails: order.PaymentDetailsDTO{
				CustomerPromptpayNumber: str("0812345678"),
			},
		}
	}

	BeforeEach(func() {
		tx = newMockTx()
		tx.prices["GAME001|PKG002"] = decimal.RequireFromString("279.00")
		store = &mockTxStore{tx: tx}
		queries = &mockQueries{oldStatus: orderDatamodel.StatusInProgress}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = order.NewService(store, queries, nil, logger)
		ctx = context.Background()
	})

	Describe("CreateOrder", func() {
		Context("with a valid request", func() {
			It("should write order, item and payment and commit once", func() {
				created, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				Expect(created).NotTo(BeNil())
				Expect(tx.committed).To(BeTrue())
				Expect(tx.rolledBack).To(BeFalse())
				Expect(tx.insertedOrders).To(HaveLen(1))
				Expect(tx.insertedItems).To(HaveLen(1))
				Expect(tx.insertedPayments).To(HaveLen(1))
			})

			It("should allocate prefixed identifiers", func() {
				created, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				Expect(created.OrderID).To(MatchRegexp(`^ORD\d+$`))
				Expect(created.PaymentID).To(MatchRegexp(`^PAY\d+$`))
			})

			It("should write a single line item with quantity 1 at the stored price", func() {
				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				item := tx.insertedItems[0]
				Expect(item.Quantity).To(Equal(1))
				Expect(item.PricePerItem.String()).To(Equal("279"))
				Expect(item.Subtotal.Equal(item.PricePerItem)).To(BeTrue())
			})

			It("should link payment to the order with the stored amount and In Progress status", func() {
				created, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				p := tx.insertedPayments[0]
				Expect(p.OrderID).To(Equal(created.OrderID))
				Expect(p.Amount.String()).To(Equal("279"))
				Expect(p.Status).To(Equal(paymentDatamodel.StatusInProgress))
				Expect(p.TransactionID).To(BeNil())
			})

			It("should carry the game account fields onto the order", func() {
				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				o := tx.insertedOrders[0]
				Expect(o.UserID).To(Equal("CUS001"))
				Expect(*o.GameUID).To(Equal("uid-777"))
				Expect(*o.GameServer).To(Equal("asia-1"))
				Expect(o.Status).To(Equal(orderDatamodel.StatusInProgress))
			})
		})

		Context("when the client submits a different price", func() {
			It("should ignore the submitted price and use the stored one", func() {
				dto := validDTO()
				dto.PackagePrice = dec("1.00")

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(tx.insertedItems[0].PricePerItem.String()).To(Equal("279"))
				Expect(tx.insertedPayments[0].Amount.String()).To(Equal("279"))
			})
		})

		Context("when required fields are missing", func() {
			It("should fail validation before touching storage", func() {
				dto := validDTO()
				dto.PaymentMethod = ""

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(store.beginCalls).To(BeZero())
				Expect(tx.insertedOrders).To(BeEmpty())
			})

			It("should reject a request without a submitted price", func() {
				dto := validDTO()
				dto.PackagePrice = nil

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(store.beginCalls).To(BeZero())
				Expect(tx.insertedOrders).To(BeEmpty())
			})

			It("should reject a request without a user id", func() {
				_, err := svc.CreateOrder(ctx, "", validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(store.beginCalls).To(BeZero())
				Expect(tx.insertedOrders).To(BeEmpty())
			})

			It("should report every missing field at once", func() {
				_, err := svc.CreateOrder(ctx, "", order.CreateOrderDTO{})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				details, ok := appErr.Details.(internal.ValidationErrors)
				Expect(ok).To(BeTrue())
				Expect(details.Errors).To(HaveLen(5))
			})
		})

		Context("when the payment method token is unknown", func() {
			It("should reject before opening a transaction", func() {
				dto := validDTO()
				dto.PaymentMethod = "cash"

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidPaymentMethod))
				Expect(store.beginCalls).To(BeZero())
			})
		})

		Context("when the package does not belong to the product", func() {
			It("should fail price verification and roll back", func() {
				dto := validDTO()
				dto.PackageID = "PKG999"

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(422))
				Expect(appErr.Code).To(Equal(internal.ErrCodePriceVerificationFailed))
				Expect(tx.rolledBack).To(BeTrue())
				Expect(tx.committed).To(BeFalse())
				Expect(tx.insertedOrders).To(BeEmpty())
			})
		})

		Context("when the payment insert fails", func() {
			It("should roll back everything and never commit", func() {
				tx.insertPaymentError = errors.New("disk full")

				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).To(HaveOccurred())
				Expect(tx.rolledBack).To(BeTrue())
				Expect(tx.committed).To(BeFalse())
			})

			It("should surface a duplicate identifier as a conflict", func() {
				tx.insertPaymentError = order.ErrDuplicateKey

				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(409))
				Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicateIdentifier))
			})

			It("should surface an oversized value as a validation error", func() {
				tx.insertPaymentError = order.ErrValueTooLong

				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(appErr.Code).To(Equal(internal.ErrCodeConstraintViolation))
			})
		})

		Context("when commit fails", func() {
			It("should report a transaction failure", func() {
				tx.commitError = errors.New("connection reset")

				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(500))
				Expect(appErr.Code).To(Equal(internal.ErrCodeTransactionFailed))
			})
		})

		Context("payment detail columns", func() {
			It("should store only the promptpay number for promptpay", func() {
				_, err := svc.CreateOrder(ctx, "CUS001", validDTO())

				Expect(err).NotTo(HaveOccurred())
				p := tx.insertedPayments[0]
				Expect(p.Method).To(Equal(paymentDatamodel.MethodPromptpay))
				Expect(*p.CustomerPromptpayNumber).To(Equal("0812345678"))
				Expect(p.CustomerBankAccount).To(BeNil())
				Expect(p.CustomerCardNumber).To(BeNil())
				Expect(p.CustomerTrueWalletNumber).To(BeNil())
			})

			It("should read the true wallet number from the promptpay field", func() {
				dto := validDTO()
				dto.PaymentMethod = "truewallet"
				dto.PaymentDetails = order.PaymentDetailsDTO{
					CustomerPromptpayNumber: str("0899999999"),
				}

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				Expect(err).NotTo(HaveOccurred())
				p := tx.insertedPayments[0]
				Expect(p.Method).To(Equal(paymentDatamodel.MethodTrueWallet))
				Expect(*p.CustomerTrueWalletNumber).To(Equal("0899999999"))
				Expect(p.CustomerPromptpayNumber).To(BeNil())
			})

			It("should mask card numbers down to the last four digits", func() {
				dto := validDTO()
				dto.PaymentMethod = "creditcard"
				dto.PaymentDetails = order.PaymentDetailsDTO{
					CustomerCardNumber: str("4111 1111 1111 1234"),
				}

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				Expect(err).NotTo(HaveOccurred())
				p := tx.insertedPayments[0]
				Expect(*p.CustomerCardNumber).To(Equal("****1234"))
			})

			It("should keep bank account and proof path for bank transfers", func() {
				dto := validDTO()
				dto.PaymentMethod = "banktransfer"
				dto.PaymentDetails = order.PaymentDetailsDTO{
					CustomerBankAccountNumber: str("123-4-56789-0"),
					PaymentProofPath:          str("/uploads/proof-1.png"),
				}

				_, err := svc.CreateOrder(ctx, "CUS001", dto)

				Expect(err).NotTo(HaveOccurred())
				p := tx.insertedPayments[0]
				Expect(p.Method).To(Equal(paymentDatamodel.MethodBankTransfer))
				Expect(*p.CustomerBankAccount).To(Equal("123-4-56789-0"))
				Expect(*p.PaymentProofPath).To(Equal("/uploads/proof-1.png"))
			})
		})

		It("should allocate strictly increasing identifiers across checkouts", func() {
			idPattern := regexp.MustCompile(`^ORD(\d+)$`)
			seen := map[string]bool{}
			prev := ""
			for i := 0; i < 5; i++ {
				created, err := svc.CreateOrder(ctx, "CUS001", validDTO())
				Expect(err).NotTo(HaveOccurred())
				Expect(idPattern.MatchString(created.OrderID)).To(BeTrue())
				Expect(seen[created.OrderID]).To(BeFalse())
				seen[created.OrderID] = true
				Expect(created.OrderID > prev).To(BeTrue())
				prev = created.OrderID
			}
		})
	})

	Describe("UpdateStatus", func() {
		It("should reject unknown statuses", func() {
			err := svc.UpdateStatus(ctx, "ORD001", "Shipped")

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(queries.updatedOrderID).To(BeEmpty())
		})

		It("should map a missing order to 404", func() {
			queries.updateError = order.ErrOrderNotFound

			err := svc.UpdateStatus(ctx, "ORD404", orderDatamodel.StatusSuccess)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("should persist an allowed status", func() {
			err := svc.UpdateStatus(ctx, "ORD001", orderDatamodel.StatusCancel)

			Expect(err).NotTo(HaveOccurred())
			Expect(queries.updatedOrderID).To(Equal("ORD001"))
			Expect(queries.updatedStatus).To(Equal(orderDatamodel.StatusCancel))
		})
	})
})
