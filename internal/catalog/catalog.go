package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrPackageNotFound  = errors.New("package not found")
	ErrDuplicateProduct = errors.New("product id already exists")
	ErrDuplicatePackage = errors.New("package id already exists")
)

type Product struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	CategoryID      int64           `json:"category_id"`
	Detail          string          `json:"detail"`
	InstockQuantity int             `json:"instock_quantity"`
	SoldQuantity    int             `json:"sold_quantity"`
	Price           decimal.Decimal `json:"price"`
	Rating          float64         `json:"rating"`
	ExpireDate      *time.Time      `json:"expire_date,omitempty"`
	PhotoPath       string          `json:"photo_path"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Available reports whether the product can currently be ordered.
func (p *Product) Available() bool {
	if p.InstockQuantity <= 0 {
		return false
	}
	if p.ExpireDate != nil && p.ExpireDate.Before(time.Now()) {
		return false
	}
	return true
}

type Package struct {
	PackageID        string          `json:"package_id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	BonusDescription string          `json:"bonus_description"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ProductFilter narrows the product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search        string
	CategoryID    int64
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	AvailableOnly bool
	Limit         int
	Offset        int
}

type RepositoryAPI interface {
	ListProducts(filter ProductFilter) ([]*Product, error)
	GetProduct(productID string) (*Product, error)
	CreateProduct(p *Product) error
	UpdateProduct(p *Product) error
	DeleteProduct(productID string) error

	ListPackages(productID string) ([]*Package, error)
	GetPackage(packageID string) (*Package, error)
	CreatePackage(pkg *Package) error
	UpdatePackage(pkg *Package) error
	DeletePackage(packageID string) error

	// PackagePrice returns the stored price for the package only when it
	// belongs to the given product.
	PackagePrice(productID, packageID string) (decimal.Decimal, error)
}
