package postgres

import (
	"errors"
	"strings"

	"github.com/frahmantamala/topup-commerce/internal/category"
	catalogDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/catalog"
	categoryDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/category"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(activeOnly bool) ([]*category.Category, error) {
	var rows []categoryDatamodel.ProductCategory
	query := r.db.Model(&categoryDatamodel.ProductCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]*category.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, toDomain(row))
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(id int64) (*category.Category, error) {
	var row categoryDatamodel.ProductCategory
	if err := r.db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return toDomain(row), nil
}

func (r *CategoryRepository) Create(c *category.Category) error {
	row := categoryDatamodel.ProductCategory{
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
	if err := r.db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return category.ErrDuplicateName
		}
		return err
	}
	c.ID = row.ID
	c.CreatedAt = row.CreatedAt
	c.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *CategoryRepository) Update(c *category.Category) error {
	err := r.db.Model(&categoryDatamodel.ProductCategory{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
			"is_active":   c.IsActive,
		}).Error
	if err != nil && isUniqueViolation(err) {
		return category.ErrDuplicateName
	}
	return err
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&categoryDatamodel.ProductCategory{}, id).Error
}

func (r *CategoryRepository) CountProducts(categoryID int64) (int64, error) {
	var count int64
	err := r.db.Model(&catalogDatamodel.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func toDomain(row categoryDatamodel.ProductCategory) *category.Category {
	return &category.Category{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// isUniqueViolation matches postgres error code 23505 and the sqlite message
// the test harness produces.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}
