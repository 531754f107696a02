package repository

import (
	"context"
	"errors"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/nutrikart/storefront/internal/catalog"
	"github.com/nutrikart/storefront/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	Filter(ctx context.Context, state models.FilterState) ([]models.Product, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// InMemoryProductRepository serves products from a loaded catalog.
// The data is immutable after construction, so reads need no locking.
type InMemoryProductRepository struct {
	products []models.Product
	index    *catalog.Index
	byID     map[int64]int
	bySlug   map[string]int
	slugs    *bloom.BloomFilter
}

// NewInMemoryProductRepository creates a product repository over the catalog products
func NewInMemoryProductRepository(products []models.Product) *InMemoryProductRepository {
	n := uint(len(products))
	if n == 0 {
		n = 1
	}

	repo := &InMemoryProductRepository{
		products: models.CloneProducts(products),
		index:    catalog.NewIndex(products),
		byID:     make(map[int64]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
		slugs:    bloom.NewWithEstimates(n, 0.01),
	}
	for i, p := range repo.products {
		repo.byID[p.ID] = i
		repo.bySlug[p.Slug] = i
		repo.slugs.AddString(p.Slug)
	}
	return repo
}

// Len reports how many products are served
func (r *InMemoryProductRepository) Len() int {
	return r.index.Len()
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.index.Products(), nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return r.at(i), nil
}

// GetBySlug returns a product by its slug.
// Slugs the Bloom filter has never seen are rejected without a map lookup.
func (r *InMemoryProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if !r.slugs.TestString(slug) {
		return nil, ErrProductNotFound
	}
	i, exists := r.bySlug[slug]
	if !exists {
		return nil, ErrProductNotFound
	}
	return r.at(i), nil
}

// GetByCategory returns the products of one category in catalog order
func (r *InMemoryProductRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return r.index.Apply(models.FilterState{Categories: []int64{categoryID}}), nil
}

// Filter returns the products matching state in catalog order
func (r *InMemoryProductRepository) Filter(ctx context.Context, state models.FilterState) ([]models.Product, error) {
	return r.index.Apply(state), nil
}

func (r *InMemoryProductRepository) at(i int) *models.Product {
	product := r.products[i].Clone()
	return &product
}

// InMemoryCategoryRepository serves categories from a loaded catalog
type InMemoryCategoryRepository struct {
	categories []models.Category
	bySlug     map[string]int
}

// NewInMemoryCategoryRepository creates a category repository
func NewInMemoryCategoryRepository(categories []models.Category) *InMemoryCategoryRepository {
	repo := &InMemoryCategoryRepository{
		categories: make([]models.Category, len(categories)),
		bySlug:     make(map[string]int, len(categories)),
	}
	copy(repo.categories, categories)
	for i, c := range categories {
		repo.bySlug[c.Slug] = i
	}
	return repo
}

// GetAll returns all categories
func (r *InMemoryCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// GetBySlug returns a category by its slug
func (r *InMemoryCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	i, exists := r.bySlug[slug]
	if !exists {
		return nil, ErrCategoryNotFound
	}
	category := r.categories[i]
	return &category, nil
}
