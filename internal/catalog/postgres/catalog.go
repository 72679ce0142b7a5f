package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frahmantamala/topup-commerce/internal/catalog"
	catalogDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListProducts(filter catalog.ProductFilter) ([]*catalog.Product, error) {
	query := r.db.Model(&catalogDatamodel.Product{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(product_id) LIKE ?", pattern, pattern)
	}
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", filter.PriceMax)
	}
	if filter.AvailableOnly {
		query = query.Where("instock_quantity > 0").
			Where("expire_date IS NULL OR expire_date > ?", time.Now())
	}

	var rows []catalogDatamodel.Product
	err := query.Order("name ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, productToDomain(&rows[i]))
	}
	return products, nil
}

func (r *CatalogRepository) GetProduct(productID string) (*catalog.Product, error) {
	var row catalogDatamodel.Product
	if err := r.db.Where("product_id = ?", productID).First(&row).Error; err != nil {
		return nil, err
	}
	return productToDomain(&row), nil
}

func (r *CatalogRepository) CreateProduct(p *catalog.Product) error {
	row := productToModel(p)
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicateProduct
		}
		return err
	}
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *CatalogRepository) UpdateProduct(p *catalog.Product) error {
	return r.db.Model(&catalogDatamodel.Product{}).
		Where("product_id = ?", p.ProductID).
		Updates(map[string]interface{}{
			"name":             p.Name,
			"category_id":      p.CategoryID,
			"detail":           p.Detail,
			"instock_quantity": p.InstockQuantity,
			"price":            p.Price,
			"expire_date":      p.ExpireDate,
			"photo_path":       p.PhotoPath,
		}).Error
}

func (r *CatalogRepository) DeleteProduct(productID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).
			Delete(&catalogDatamodel.ProductPackage{}).Error; err != nil {
			return err
		}
		return tx.Where("product_id = ?", productID).
			Delete(&catalogDatamodel.Product{}).Error
	})
}

func (r *CatalogRepository) ListPackages(productID string) ([]*catalog.Package, error) {
	var rows []catalogDatamodel.ProductPackage
	err := r.db.Where("product_id = ?", productID).
		Order("price ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	packages := make([]*catalog.Package, 0, len(rows))
	for i := range rows {
		packages = append(packages, packageToDomain(&rows[i]))
	}
	return packages, nil
}

func (r *CatalogRepository) GetPackage(packageID string) (*catalog.Package, error) {
	var row catalogDatamodel.ProductPackage
	if err := r.db.Where("package_id = ?", packageID).First(&row).Error; err != nil {
		return nil, err
	}
	return packageToDomain(&row), nil
}

func (r *CatalogRepository) CreatePackage(pkg *catalog.Package) error {
	row := packageToModel(pkg)
	if err := r.db.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return catalog.ErrDuplicatePackage
		}
		return err
	}
	pkg.CreatedAt = row.CreatedAt
	pkg.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *CatalogRepository) UpdatePackage(pkg *catalog.Package) error {
	return r.db.Model(&catalogDatamodel.ProductPackage{}).
		Where("package_id = ?", pkg.PackageID).
		Updates(map[string]interface{}{
			"name":              pkg.Name,
			"price":             pkg.Price,
			"bonus_description": pkg.BonusDescription,
		}).Error
}

func (r *CatalogRepository) DeletePackage(packageID string) error {
	return r.db.Where("package_id = ?", packageID).
		Delete(&catalogDatamodel.ProductPackage{}).Error
}

func (r *CatalogRepository) PackagePrice(productID, packageID string) (decimal.Decimal, error) {
	var row catalogDatamodel.ProductPackage
	err := r.db.Where("package_id = ? AND product_id = ?", packageID, productID).
		First(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.Price, nil
}

func productToDomain(row *catalogDatamodel.Product) *catalog.Product {
	return &catalog.Product{
		ProductID:       row.ProductID,
		Name:            row.Name,
		CategoryID:      row.CategoryID,
		Detail:          row.Detail,
		InstockQuantity: row.InstockQuantity,
		SoldQuantity:    row.SoldQuantity,
		Price:           row.Price,
		Rating:          row.Rating,
		ExpireDate:      row.ExpireDate,
		PhotoPath:       row.PhotoPath,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

func productToModel(p *catalog.Product) *catalogDatamodel.Product {
	return &catalogDatamodel.Product{
		ProductID:       p.ProductID,
		Name:            p.Name,
		CategoryID:      p.CategoryID,
		Detail:          p.Detail,
		InstockQuantity: p.InstockQuantity,
		SoldQuantity:    p.SoldQuantity,
		Price:           p.Price,
		Rating:          p.Rating,
		ExpireDate:      p.ExpireDate,
		PhotoPath:       p.PhotoPath,
	}
}

func packageToDomain(row *catalogDatamodel.ProductPackage) *catalog.Package {
	return &catalog.Package{
		PackageID:        row.PackageID,
		ProductID:        row.ProductID,
		Name:             row.Name,
		Price:            row.Price,
		BonusDescription: row.BonusDescription,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func packageToModel(pkg *catalog.Package) *catalogDatamodel.ProductPackage {
	return &catalogDatamodel.ProductPackage{
		PackageID:        pkg.PackageID,
		ProductID:        pkg.ProductID,
		Name:             pkg.Name,
		Price:            pkg.Price,
		BonusDescription: pkg.BonusDescription,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}
