package service

import (
	"context"

	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/repository"
)

// CategoryView is a category page: the category and the products on show
type CategoryView struct {
	Category models.Category    `json:"category"`
	Filters  models.FilterState `json:"filters"`
	Products []models.Product   `json:"products"`
}

// CategoryService handles category navigation
type CategoryService struct {
	categories repository.CategoryRepository
	products   *ProductService
}

// NewCategoryService creates a new category service
func NewCategoryService(categories repository.CategoryRepository, products *ProductService) *CategoryService {
	return &CategoryService{
		categories: categories,
		products:   products,
	}
}

// ListCategories returns all categories
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

// GetCategory returns the category page for slug. When state selects no
// category, the page's own category is preselected; an explicit selection is
// honoured as given, so shoppers can widen the view from a category page.
func (s *CategoryService) GetCategory(ctx context.Context, slug string, state models.FilterState) (*CategoryView, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if len(state.Categories) == 0 {
		state.Categories = []int64{category.ID}
	}

	products, err := s.products.ListProducts(ctx, state)
	if err != nil {
		return nil, err
	}

	return &CategoryView{
		Category: *category,
		Filters:  state,
		Products: products,
	}, nil
}
