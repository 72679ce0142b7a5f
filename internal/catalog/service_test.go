package catalog_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/frahmantamala/topup-commerce/internal/catalog"
)

func TestCatalogService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Service Suite")
}

type mockCatalogRepository struct {
	products map[string]*catalog.Product
	packages map[string]*catalog.Package

	lastFilter catalog.ProductFilter
}

func newMockCatalogRepository() *mockCatalogRepository {
	return &mockCatalogRepository{
		products: make(map[string]*catalog.Product),
		packages: make(map[string]*catalog.Package),
	}
}

func (m *mockCatalogRepository) ListProducts(filter catalog.ProductFilter) ([]*catalog.Product, error) {
	m.lastFilter = filter
	var out []*catalog.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockCatalogRepository) GetProduct(productID string) (*catalog.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockCatalogRepository) CreateProduct(p *catalog.Product) error {
	if _, exists := m.products[p.ProductID]; exists {
		return catalog.ErrDuplicateProduct
	}
	m.products[p.ProductID] = p
	return nil
}

func (m *mockCatalogRepository) UpdateProduct(p *catalog.Product) error {
	m.products[p.ProductID] = p
	return nil
}

func (m *mockCatalogRepository) DeleteProduct(productID string) error {
	delete(m.products, productID)
	return nil
}

func (m *mockCatalogRepository) ListPackages(productID string) ([]*catalog.Package, error) {
	var out []*catalog.Package
	for _, pkg := range m.packages {
		if pkg.ProductID == productID {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (m *mockCatalogRepository) GetPackage(packageID string) (*catalog.Package, error) {
	pkg, ok := m.packages[packageID]
	if !ok {
		return nil, errors.New("no rows")
	}
	return pkg, nil
}

func (m *mockCatalogRepository) CreatePackage(pkg *catalog.Package) error {
	if _, exists := m.packages[pkg.PackageID]; exists {
		return catalog.ErrDuplicatePackage
	}
	m.packages[pkg.PackageID] = pkg
	return nil
}

func (m *mockCatalogRepository) UpdatePackage(pkg *catalog.Package) error {
	m.packages[pkg.PackageID] = pkg
	return nil
}

func (m *mockCatalogRepository) DeletePackage(packageID string) error {
	delete(m.packages, packageID)
	return nil
}

func (m *mockCatalogRepository) PackagePrice(productID, packageID string) (decimal.Decimal, error) {
	pkg, ok := m.packages[packageID]
	if !ok || pkg.ProductID != productID {
		return decimal.Zero, errors.New("no rows")
	}
	return pkg.Price, nil
}

var _ = Describe("CatalogService", func() {
	var (
		svc  *catalog.Service
		repo *mockCatalogRepository
	)

	BeforeEach(func() {
		repo = newMockCatalogRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = catalog.NewService(repo, logger)
	})

	Describe("products", func() {
		It("should clamp an unbounded listing to the default page size", func() {
			_, err := svc.ListProducts(catalog.ProductFilter{})

			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastFilter.Limit).To(Equal(50))
		})

		It("should create a product from a valid request", func() {
			p, err := svc.CreateProduct(catalog.CreateProductDTO{
				ProductID:       "GAME001",
				Name:            "Arena of Heroes",
				CategoryID:      1,
				InstockQuantity: 100,
				Price:           decimal.NewFromInt(0),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(p.ProductID).To(Equal("GAME001"))
			Expect(repo.products).To(HaveKey("GAME001"))
		})

		It("should reject a product without a category", func() {
			_, err := svc.CreateProduct(catalog.CreateProductDTO{
				ProductID: "GAME001",
				Name:      "Arena of Heroes",
			})

			Expect(err).To(HaveOccurred())
			Expect(repo.products).To(BeEmpty())
		})

		It("should reject a negative price", func() {
			_, err := svc.CreateProduct(catalog.CreateProductDTO{
				ProductID:  "GAME001",
				Name:       "Arena of Heroes",
				CategoryID: 1,
				Price:      decimal.NewFromInt(-1),
			})

			Expect(err).To(HaveOccurred())
		})

		It("should apply partial updates only to the given fields", func() {
			repo.products["GAME001"] = &catalog.Product{
				ProductID:  "GAME001",
				Name:       "Arena of Heroes",
				CategoryID: 1,
				Detail:     "original detail",
			}

			newName := "Arena of Legends"
			p, err := svc.UpdateProduct("GAME001", catalog.UpdateProductDTO{Name: &newName})

			Expect(err).NotTo(HaveOccurred())
			Expect(p.Name).To(Equal("Arena of Legends"))
			Expect(p.Detail).To(Equal("original detail"))
		})

		It("should return not found when updating a missing product", func() {
			newName := "x"
			_, err := svc.UpdateProduct("NOPE", catalog.UpdateProductDTO{Name: &newName})

			Expect(err).To(MatchError(catalog.ErrProductNotFound))
		})
	})

	Describe("packages", func() {
		BeforeEach(func() {
			repo.products["GAME001"] = &catalog.Product{ProductID: "GAME001", Name: "Arena of Heroes", CategoryID: 1}
		})

		It("should refuse a package for a missing product", func() {
			_, err := svc.CreatePackage(catalog.CreatePackageDTO{
				PackageID: "PKG001",
				ProductID: "NOPE",
				Name:      "100 Diamonds",
				Price:     decimal.NewFromInt(59),
			})

			Expect(err).To(MatchError(catalog.ErrProductNotFound))
		})

		It("should create a package under an existing product", func() {
			pkg, err := svc.CreatePackage(catalog.CreatePackageDTO{
				PackageID: "PKG001",
				ProductID: "GAME001",
				Name:      "100 Diamonds",
				Price:     decimal.RequireFromString("59.00"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(pkg.ProductID).To(Equal("GAME001"))
		})

		It("should list packages only for the owning product", func() {
			repo.packages["PKG001"] = &catalog.Package{PackageID: "PKG001", ProductID: "GAME001"}
			repo.packages["PKG002"] = &catalog.Package{PackageID: "PKG002", ProductID: "GAME002"}

			packages, err := svc.ListPackages("GAME001")

			Expect(err).NotTo(HaveOccurred())
			Expect(packages).To(HaveLen(1))
			Expect(packages[0].PackageID).To(Equal("PKG001"))
		})
	})

	Describe("VerifiedPrice", func() {
		BeforeEach(func() {
			repo.packages["PKG001"] = &catalog.Package{
				PackageID: "PKG001",
				ProductID: "GAME001",
				Price:     decimal.RequireFromString("59.00"),
			}
		})

		It("should return the stored price for a valid pair", func() {
			price, err := svc.VerifiedPrice("GAME001", "PKG001")

			Expect(err).NotTo(HaveOccurred())
			Expect(price.Equal(decimal.RequireFromString("59.00"))).To(BeTrue())
		})

		It("should fail when the package belongs to another product", func() {
			_, err := svc.VerifiedPrice("GAME002", "PKG001")

			Expect(err).To(MatchError(catalog.ErrPackageNotFound))
		})
	})
})
