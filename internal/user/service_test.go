package user_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/topup-commerce/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	profiles map[string]*user.Profile

	updatedUserID string
	lastUpdate    *user.UpdateProfileDTO
	updateError   error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{profiles: make(map[string]*user.Profile)}
}

func (m *mockUserRepository) GetProfile(userID string) (*user.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockUserRepository) UpdateProfile(userID string, update *user.UpdateProfileDTO) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.updatedUserID = userID
	m.lastUpdate = update
	return nil
}

func (m *mockUserRepository) ListCustomers(search string, limit, offset int) ([]*user.CustomerLogEntry, error) {
	var out []*user.CustomerLogEntry
	for _, p := range m.profiles {
		out = append(out, &user.CustomerLogEntry{
			UserID:       p.UserID,
			CustomerName: p.FirstName,
			Email:        p.Email,
			PhoneNumber:  p.PhoneNumber,
			RegisteredAt: time.Now(),
		})
	}
	return out, nil
}

var _ = Describe("UserService", func() {
	var (
		svc  *user.Service
		repo *mockUserRepository
	)

	str := func(s string) *string { return &s }

	BeforeEach(func() {
		repo = newMockUserRepository()
		repo.profiles["CUS001"] = &user.Profile{
			UserID:      "CUS001",
			Username:    "demo",
			FirstName:   "Demo",
			Email:       "demo@mail.com",
			PhoneNumber: "+66811111111",
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = user.NewService(repo, logger)
	})

	Describe("GetProfile", func() {
		It("should return the stored profile", func() {
			profile, err := svc.GetProfile("CUS001")

			Expect(err).NotTo(HaveOccurred())
			Expect(profile.Username).To(Equal("demo"))
		})

		It("should map a missing user to ErrUserNotFound", func() {
			_, err := svc.GetProfile("CUS404")

			Expect(err).To(MatchError(user.ErrUserNotFound))
		})
	})

	Describe("UpdateProfile", func() {
		It("should apply a partial update", func() {
			err := svc.UpdateProfile("CUS001", &user.UpdateProfileDTO{
				FirstName: str("Renamed"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.updatedUserID).To(Equal("CUS001"))
			Expect(*repo.lastUpdate.FirstName).To(Equal("Renamed"))
		})

		It("should reject an empty update", func() {
			err := svc.UpdateProfile("CUS001", &user.UpdateProfileDTO{})

			Expect(err).To(HaveOccurred())
			Expect(repo.updatedUserID).To(BeEmpty())
		})

		It("should reject a malformed email", func() {
			err := svc.UpdateProfile("CUS001", &user.UpdateProfileDTO{
				Email: str("not-an-email"),
			})

			Expect(err).To(HaveOccurred())
			Expect(repo.updatedUserID).To(BeEmpty())
		})

		It("should reject a malformed phone number", func() {
			err := svc.UpdateProfile("CUS001", &user.UpdateProfileDTO{
				PhoneNumber: str("abc"),
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ListCustomers", func() {
		It("should return the customer log", func() {
			customers, err := svc.ListCustomers("", 50, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(customers).To(HaveLen(1))
			Expect(customers[0].UserID).To(Equal("CUS001"))
		})
	})
})
