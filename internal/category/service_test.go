package category_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/topup-commerce/internal/category"
	categoryPostgres "github.com/frahmantamala/topup-commerce/internal/category/postgres"
	catalogDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/catalog"
	categoryDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/category"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

var _ = Describe("CategoryService", func() {
	var (
		db  *gorm.DB
		svc *category.Service
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.ProductCategory{}, &catalogDatamodel.Product{})
		Expect(err).NotTo(HaveOccurred())

		repo := categoryPostgres.NewCategoryRepository(db)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = category.NewService(repo, logger)
	})

	It("should create and list categories", func() {
		_, err := svc.Create(category.CreateCategoryDTO{Name: "MOBA", Description: "Battle arena games"})
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.Create(category.CreateCategoryDTO{Name: "RPG"})
		Expect(err).NotTo(HaveOccurred())

		categories, err := svc.List(false)
		Expect(err).NotTo(HaveOccurred())
		Expect(categories).To(HaveLen(2))
	})

	It("should hide inactive categories from the default listing", func() {
		inactive := false
		_, err := svc.Create(category.CreateCategoryDTO{Name: "Retired", IsActive: &inactive})
		Expect(err).NotTo(HaveOccurred())
		_, err = svc.Create(category.CreateCategoryDTO{Name: "MOBA"})
		Expect(err).NotTo(HaveOccurred())

		visible, err := svc.List(false)
		Expect(err).NotTo(HaveOccurred())
		Expect(visible).To(HaveLen(1))
		Expect(visible[0].Name).To(Equal("MOBA"))

		all, err := svc.List(true)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
	})

	It("should reject a duplicate name", func() {
		_, err := svc.Create(category.CreateCategoryDTO{Name: "MOBA"})
		Expect(err).NotTo(HaveOccurred())

		_, err = svc.Create(category.CreateCategoryDTO{Name: "MOBA"})
		Expect(err).To(MatchError(category.ErrDuplicateName))
	})

	It("should update only the provided fields", func() {
		created, err := svc.Create(category.CreateCategoryDTO{Name: "MOBA", Description: "old"})
		Expect(err).NotTo(HaveOccurred())

		desc := "Multiplayer battle arena"
		updated, err := svc.Update(created.ID, category.UpdateCategoryDTO{Description: &desc})
		Expect(err).NotTo(HaveOccurred())
		Expect(updated.Name).To(Equal("MOBA"))
		Expect(updated.Description).To(Equal(desc))
	})

	Describe("Delete", func() {
		It("should delete an empty category", func() {
			created, err := svc.Create(category.CreateCategoryDTO{Name: "Empty"})
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Delete(created.ID)).To(Succeed())

			_, err = svc.GetByID(created.ID)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("should refuse to delete a category that still has products", func() {
			created, err := svc.Create(category.CreateCategoryDTO{Name: "MOBA"})
			Expect(err).NotTo(HaveOccurred())

			product := &catalogDatamodel.Product{
				ProductID:  "GAME001",
				Name:       "Arena of Heroes",
				CategoryID: created.ID,
			}
			Expect(db.Create(product).Error).NotTo(HaveOccurred())

			Expect(svc.Delete(created.ID)).To(MatchError(category.ErrCategoryInUse))

			_, err = svc.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should return not found for an unknown id", func() {
			Expect(svc.Delete(999)).To(MatchError(category.ErrCategoryNotFound))
		})
	})
})
