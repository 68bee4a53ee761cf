package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// ProductRepository provides read access to the catalog.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	// ListBelowStock returns products with quantity < threshold ordered by quantity ascending.
	ListBelowStock(ctx context.Context, threshold int) ([]model.Product, error)
	Count(ctx context.Context) (int64, error)
	CountBelowStock(ctx context.Context, threshold int) (int64, error)
	CountOutOfStock(ctx context.Context) (int64, error)
}

// CategoryRepository provides read access to categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}
