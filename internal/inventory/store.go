package inventory

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category id")
)

// Store is the data-access layer behind the HTTP API.
//
// Lookups report absence through the found flag. Product writes that
// reference a category check it exists first and fail with ErrInvalidCategory
// without touching state.
type Store interface {
	Ping(ctx context.Context) error

	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, bool, error)
	CreateCategory(ctx context.Context, cmd CreateCategoryCommand) (Category, error)
	UpdateCategory(ctx context.Context, id int, cmd UpdateCategoryCommand) (Category, bool, error)
	DeleteCategory(ctx context.Context, id int) (bool, error)

	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int) (Product, bool, error)
	ListProductsByCategory(ctx context.Context, categoryID int) ([]Product, error)
	CreateProduct(ctx context.Context, cmd CreateProductCommand) (Product, error)
	UpdateProduct(ctx context.Context, id int, cmd UpdateProductCommand) (Product, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)
}
