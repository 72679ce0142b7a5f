package category

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category has products assigned")
	ErrDuplicateName    = errors.New("category name already exists")
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RepositoryAPI interface {
	List(activeOnly bool) ([]*Category, error)
	GetByID(id int64) (*Category, error)
	Create(c *Category) error
	Update(c *Category) error
	Delete(id int64) error
	CountProducts(categoryID int64) (int64, error)
}
