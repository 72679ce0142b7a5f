package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	promotionDatamodel "github.com/frahmantamala/topup-commerce/internal/core/datamodel/promotion"
	"github.com/frahmantamala/topup-commerce/internal/promotion"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) promotion.RepositoryAPI {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) List(search string) ([]*promotion.Discount, error) {
	query := r.db.Model(&promotionDatamodel.Discount{})
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(code) LIKE ?", pattern)
	}

	var rows []promotionDatamodel.Discount
	if err := query.Order("expires_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	discounts := make([]*promotion.Discount, 0, len(rows))
	for i := range rows {
		discounts = append(discounts, toDomain(&rows[i]))
	}
	return discounts, nil
}

func (r *PromotionRepository) GetByID(id int64) (*promotion.Discount, error) {
	var row promotionDatamodel.Discount
	if err := r.db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return toDomain(&row), nil
}

func (r *PromotionRepository) Create(d *promotion.Discount) error {
	row := promotionDatamodel.Discount{
		Code:          d.Code,
		Type:          d.Type,
		Value:         d.Value,
		Status:        d.Status,
		EffectiveFrom: d.EffectiveFrom,
		ExpiresAt:     d.ExpiresAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return promotion.ErrDuplicateCode
		}
		return err
	}
	d.ID = row.ID
	d.CreatedAt = row.CreatedAt
	d.UpdatedAt = row.UpdatedAt
	return nil
}

func (r *PromotionRepository) Update(d *promotion.Discount) error {
	err := r.db.Model(&promotionDatamodel.Discount{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"code":           d.Code,
			"type":           d.Type,
			"value":          d.Value,
			"status":         d.Status,
			"effective_from": d.EffectiveFrom,
			"expires_at":     d.ExpiresAt,
		}).Error
	if err != nil && isUniqueViolation(err) {
		return promotion.ErrDuplicateCode
	}
	return err
}

func (r *PromotionRepository) Delete(id int64) error {
	return r.db.Delete(&promotionDatamodel.Discount{}, id).Error
}

func (r *PromotionRepository) MarkExpired(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&promotionDatamodel.Discount{}).
		Where("id IN ?", ids).
		Update("status", promotionDatamodel.StatusExpired).Error
}

func toDomain(row *promotionDatamodel.Discount) *promotion.Discount {
	return &promotion.Discount{
		ID:            row.ID,
		Code:          row.Code,
		Type:          row.Type,
		Value:         row.Value,
		Status:        row.Status,
		EffectiveFrom: row.EffectiveFrom,
		ExpiresAt:     row.ExpiresAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
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
