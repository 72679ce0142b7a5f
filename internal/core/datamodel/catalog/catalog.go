package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a game whose top-ups are sold through the store.
type Product struct {
	ProductID       string          `json:"product_id" gorm:"column:product_id;primaryKey"`
	Name            string          `json:"name" gorm:"column:name;not null"`
	CategoryID      int64           `json:"category_id" gorm:"column:category_id;not null;index"`
	Detail          string          `json:"detail,omitempty" gorm:"column:detail"`
	InstockQuantity int             `json:"instock_quantity" gorm:"column:instock_quantity;default:0"`
	SoldQuantity    int             `json:"sold_quantity" gorm:"column:sold_quantity;default:0"`
	Price           decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2)"`
	Rating          float64         `json:"rating" gorm:"column:rating;default:0"`
	ExpireDate      *time.Time      `json:"expire_date,omitempty" gorm:"column:expire_date"`
	PhotoPath       string          `json:"photo_path,omitempty" gorm:"column:photo_path"`
	CreatedAt       time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductPackage is a purchasable pricing tier of a product. Its price is
// the authoritative amount for checkout; client-submitted prices are never
// stored.
type ProductPackage struct {
	PackageID        string          `json:"package_id" gorm:"column:package_id;primaryKey"`
	ProductID        string          `json:"product_id" gorm:"column:product_id;not null;index"`
	Name             string          `json:"name" gorm:"column:name;not null"`
	Price            decimal.Decimal `json:"price" gorm:"column:price;type:numeric(12,2)"`
	BonusDescription string          `json:"bonus_description,omitempty" gorm:"column:bonus_description"`
	CreatedAt        time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (ProductPackage) TableName() string {
	return "product_packages"
}
