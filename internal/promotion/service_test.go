package promotion_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/topup-commerce/internal/promotion"
)

func TestPromotionService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Promotion Service Suite")
}

type mockPromotionRepository struct {
	discounts map[int64]*promotion.Discount
	nextID    int64

	markedExpired []int64
	markError     error
	listError     error
}

func newMockPromotionRepository() *mockPromotionRepository {
	return &mockPromotionRepository{
		discounts: make(map[int64]*promotion.Discount),
		nextID:    1,
	}
}

func (m *mockPromotionRepository) List(search string) ([]*promotion.Discount, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var out []*promotion.Discount
	for _, d := range m.discounts {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockPromotionRepository) GetByID(id int64) (*promotion.Discount, error) {
	d, ok := m.discounts[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return d, nil
}

func (m *mockPromotionRepository) Create(d *promotion.Discount) error {
	d.ID = m.nextID
	m.nextID++
	m.discounts[d.ID] = d
	return nil
}

func (m *mockPromotionRepository) Update(d *promotion.Discount) error {
	m.discounts[d.ID] = d
	return nil
}

func (m *mockPromotionRepository) Delete(id int64) error {
	delete(m.discounts, id)
	return nil
}

func (m *mockPromotionRepository) MarkExpired(ids []int64) error {
	if m.markError != nil {
		return m.markError
	}
	m.markedExpired = append(m.markedExpired, ids...)
	for _, id := range ids {
		if d, ok := m.discounts[id]; ok {
			d.Status = promotion.StatusExpired
		}
	}
	return nil
}

var _ = Describe("PromotionService", func() {
	var (
		svc  *promotion.Service
		repo *mockPromotionRepository
	)

	BeforeEach(func() {
		repo = newMockPromotionRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = promotion.NewService(repo, logger)
	})

	Describe("value parsing", func() {
		It("should store a percent value as a fraction", func() {
			discountType, value, err := promotion.ParseValue("25%")

			Expect(err).NotTo(HaveOccurred())
			Expect(discountType).To(Equal(promotion.TypePercentage))
			Expect(value.Equal(decimal.RequireFromString("0.25"))).To(BeTrue())
		})

		It("should store a plain number as a fixed amount", func() {
			discountType, value, err := promotion.ParseValue("150.50")

			Expect(err).NotTo(HaveOccurred())
			Expect(discountType).To(Equal(promotion.TypeFixed))
			Expect(value.Equal(decimal.RequireFromString("150.50"))).To(BeTrue())
		})

		It("should reject percentages above 100", func() {
			_, _, err := promotion.ParseValue("150%")

			Expect(err).To(HaveOccurred())
		})

		It("should reject values that parse as neither", func() {
			_, _, err := promotion.ParseValue("free stuff")

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Create", func() {
		It("should create an active percentage discount", func() {
			d, err := svc.Create(promotion.CreateDiscountDTO{
				Code:      "NEWYEAR25",
				Value:     "25%",
				ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Type).To(Equal(promotion.TypePercentage))
			Expect(d.Status).To(Equal(promotion.StatusActive))
			Expect(d.Value.Equal(decimal.RequireFromString("0.25"))).To(BeTrue())
		})

		It("should reject an expiry before the effective date", func() {
			now := time.Now()
			_, err := svc.Create(promotion.CreateDiscountDTO{
				Code:          "BACKWARDS",
				Value:         "10%",
				EffectiveFrom: now,
				ExpiresAt:     now.Add(-time.Hour),
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("lazy expiry on read", func() {
		BeforeEach(func() {
			repo.Create(&promotion.Discount{
				Code:      "STALE",
				Type:      promotion.TypeFixed,
				Value:     decimal.NewFromInt(50),
				Status:    promotion.StatusActive,
				ExpiresAt: time.Now().Add(-time.Hour),
			})
			repo.Create(&promotion.Discount{
				Code:      "FRESH",
				Type:      promotion.TypeFixed,
				Value:     decimal.NewFromInt(50),
				Status:    promotion.StatusActive,
				ExpiresAt: time.Now().Add(time.Hour),
			})
		})

		It("should flip stale Active rows to Expired in the listing", func() {
			discounts, err := svc.List("")
			Expect(err).NotTo(HaveOccurred())

			statuses := map[string]string{}
			for _, d := range discounts {
				statuses[d.Code] = d.Status
			}
			Expect(statuses["STALE"]).To(Equal(promotion.StatusExpired))
			Expect(statuses["FRESH"]).To(Equal(promotion.StatusActive))
			Expect(repo.markedExpired).To(HaveLen(1))
		})

		It("should still return corrected statuses when persisting the flip fails", func() {
			repo.markError = errors.New("write failed")

			discounts, err := svc.List("")
			Expect(err).NotTo(HaveOccurred())

			statuses := map[string]string{}
			for _, d := range discounts {
				statuses[d.Code] = d.Status
			}
			Expect(statuses["STALE"]).To(Equal(promotion.StatusExpired))
		})

		It("should not touch Disabled rows", func() {
			repo.Create(&promotion.Discount{
				Code:      "OFF",
				Type:      promotion.TypeFixed,
				Value:     decimal.NewFromInt(10),
				Status:    promotion.StatusDisabled,
				ExpiresAt: time.Now().Add(-time.Hour),
			})

			discounts, err := svc.List("")
			Expect(err).NotTo(HaveOccurred())

			for _, d := range discounts {
				if d.Code == "OFF" {
					Expect(d.Status).To(Equal(promotion.StatusDisabled))
				}
			}
		})
	})

	Describe("Update", func() {
		It("should revive an expired code when the window is extended", func() {
			repo.Create(&promotion.Discount{
				Code:      "REVIVE",
				Type:      promotion.TypeFixed,
				Value:     decimal.NewFromInt(20),
				Status:    promotion.StatusExpired,
				ExpiresAt: time.Now().Add(-time.Hour),
			})

			later := time.Now().Add(48 * time.Hour)
			d, err := svc.Update(1, promotion.UpdateDiscountDTO{ExpiresAt: &later})

			Expect(err).NotTo(HaveOccurred())
			Expect(d.Status).To(Equal(promotion.StatusActive))
		})

		It("should return not found for an unknown id", func() {
			code := "X"
			_, err := svc.Update(99, promotion.UpdateDiscountDTO{Code: &code})

			Expect(err).To(MatchError(promotion.ErrDiscountNotFound))
		})
	})

	Describe("Delete", func() {
		It("should remove an existing discount", func() {
			repo.Create(&promotion.Discount{Code: "GONE", Type: promotion.TypeFixed, Value: decimal.NewFromInt(5), Status: promotion.StatusActive, ExpiresAt: time.Now().Add(time.Hour)})

			Expect(svc.Delete(1)).To(Succeed())
			Expect(repo.discounts).To(BeEmpty())
		})

		It("should return not found for an unknown id", func() {
			Expect(svc.Delete(42)).To(MatchError(promotion.ErrDiscountNotFound))
		})
	})
})
