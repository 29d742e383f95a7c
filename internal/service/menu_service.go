package service

import (
	"context"

	"github.com/Lixing-Zhang/aami-bangali/internal/models"
	"github.com/Lixing-Zhang/aami-bangali/internal/repository"
)

// MenuService handles read access to the menu
type MenuService struct {
	repo repository.MenuRepository
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuRepository) *MenuService {
	return &MenuService{
		repo: repo,
	}
}

// Restaurant returns the restaurant profile
func (s *MenuService) Restaurant(ctx context.Context) (models.Restaurant, error) {
	return s.repo.Restaurant(ctx)
}

// ListCategories returns every category with its items
func (s *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetCategories(ctx)
}

// GetCategory returns a category by ID
func (s *MenuService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// GetItem returns a menu item by ID
func (s *MenuService) GetItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}
