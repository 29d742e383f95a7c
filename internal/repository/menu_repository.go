package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/aami-bangali/internal/catalog"
	"github.com/Lixing-Zhang/aami-bangali/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("menu item not found")
)

// MenuRepository defines read access to the menu
type MenuRepository interface {
	Restaurant(ctx context.Context) (models.Restaurant, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetItem(ctx context.Context, id string) (*models.MenuItem, error)
}

// InMemoryMenuRepository serves the menu loaded at startup
type InMemoryMenuRepository struct {
	menu *catalog.Menu
}

// NewInMemoryMenuRepository wraps a loaded catalog
func NewInMemoryMenuRepository(menu *catalog.Menu) *InMemoryMenuRepository {
	return &InMemoryMenuRepository{
		menu: menu,
	}
}

// Restaurant returns the restaurant profile
func (r *InMemoryMenuRepository) Restaurant(ctx context.Context) (models.Restaurant, error) {
	return r.menu.Restaurant(), nil
}

// GetCategories returns all categories in display order
func (r *InMemoryMenuRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	return r.menu.Categories(), nil
}

// GetCategory returns a category by its ID
func (r *InMemoryMenuRepository) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	category, exists := r.menu.Category(id)
	if !exists {
		return nil, ErrCategoryNotFound
	}
	return &category, nil
}

// GetItem returns a menu item by its ID
func (r *InMemoryMenuRepository) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, exists := r.menu.Item(id)
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}
