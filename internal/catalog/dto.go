package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateProductDTO struct {
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	CategoryID      int64           `json:"category_id"`
	Detail          string          `json:"detail"`
	InstockQuantity int             `json:"instock_quantity"`
	Price           decimal.Decimal `json:"price"`
	ExpireDate      *time.Time      `json:"expire_date,omitempty"`
	PhotoPath       string          `json:"photo_path"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.ProductID == "" {
		return errors.New("product_id is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category_id is required")
	}
	if dto.InstockQuantity < 0 {
		return errors.New("instock_quantity cannot be negative")
	}
	if dto.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

type UpdateProductDTO struct {
	Name            *string          `json:"name,omitempty"`
	CategoryID      *int64           `json:"category_id,omitempty"`
	Detail          *string          `json:"detail,omitempty"`
	InstockQuantity *int             `json:"instock_quantity,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	ExpireDate      *time.Time       `json:"expire_date,omitempty"`
	PhotoPath       *string          `json:"photo_path,omitempty"`
}

func (dto UpdateProductDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.InstockQuantity != nil && *dto.InstockQuantity < 0 {
		return errors.New("instock_quantity cannot be negative")
	}
	if dto.Price != nil && dto.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

type CreatePackageDTO struct {
	PackageID        string          `json:"package_id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	BonusDescription string          `json:"bonus_description"`
}

func (dto CreatePackageDTO) Validate() error {
	if dto.PackageID == "" {
		return errors.New("package_id is required")
	}
	if dto.ProductID == "" {
		return errors.New("product_id is required")
	}
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

type UpdatePackageDTO struct {
	Name             *string          `json:"name,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	BonusDescription *string          `json:"bonus_description,omitempty"`
}

func (dto UpdatePackageDTO) Validate() error {
	if dto.Name == nil && dto.Price == nil && dto.BonusDescription == nil {
		return errors.New("no fields to update")
	}
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.Price != nil && dto.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}
