package category

import "time"

// ProductCategory groups products in the storefront.
type ProductCategory struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" gorm:"column:description"`
	IsActive    bool      `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
