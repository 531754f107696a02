package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nutrikart/storefront/internal/catalog"
	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/repository"
)

const instrumentationName = "github.com/nutrikart/storefront/internal/service"

// DefaultRelatedLimit is how many related products a detail page shows
const DefaultRelatedLimit = 4

// ProductService handles business logic for products
type ProductService struct {
	products      repository.ProductRepository
	categories    repository.CategoryRepository
	tracer        trace.Tracer
	filterResults metric.Int64Histogram
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) *ProductService {
	meter := otel.Meter(instrumentationName)
	hist, err := meter.Int64Histogram("catalog.filter.results",
		metric.WithDescription("Number of products returned by a catalog filter query"),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &ProductService{
		products:      products,
		categories:    categories,
		tracer:        otel.Tracer(instrumentationName),
		filterResults: hist,
	}
}

// ListProducts returns the products matching state, in catalog order
func (s *ProductService) ListProducts(ctx context.Context, state models.FilterState) ([]models.Product, error) {
	ctx, span := s.tracer.Start(ctx, "catalog.filter")
	defer span.End()

	span.SetAttributes(
		attribute.Int("filter.categories", len(state.Categories)),
		attribute.Int("filter.tags", len(state.Tags)),
		attribute.Bool("filter.price_range", state.PriceRange != nil),
		attribute.Float64("filter.min_rating", state.MinRating),
		attribute.String("filter.dietary", string(state.Dietary)),
	)

	products, err := s.products.Filter(ctx, state)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("filter.results", len(products)))
	if s.filterResults != nil {
		s.filterResults.Record(ctx, int64(len(products)),
			metric.WithAttributes(attribute.Bool("filter.active", state.IsActive())),
		)
	}
	return products, nil
}

// GetProduct returns a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

// RelatedProducts returns up to limit other products from the same category
func (s *ProductService) RelatedProducts(ctx context.Context, slug string, limit int) ([]models.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	siblings, err := s.products.GetByCategory(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	related := make([]models.Product, 0, limit)
	for _, p := range siblings {
		if len(related) == limit {
			break
		}
		if p.ID != product.ID {
			related = append(related, p)
		}
	}
	return related, nil
}

// FilterOptions returns every choice the filter panel can offer
func (s *ProductService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &models.FilterOptions{
		Categories:  categories,
		PriceRanges: catalog.PriceRanges,
		Ratings:     catalog.Ratings,
		Tags:        catalog.Tags,
		Dietary:     catalog.DietaryOptions,
	}, nil
}
