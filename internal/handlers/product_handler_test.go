package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nutrikart/storefront/internal/catalog"
	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/pricing"
	"github.com/nutrikart/storefront/internal/repository"
	"github.com/nutrikart/storefront/internal/service"
	"github.com/nutrikart/storefront/pkg/logger"
)

// newTestRouter wires the full API over the embedded catalog and in-memory stores
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestRouterWithCarts(t, repository.NewInMemoryCartRepository())
}

// newTestRouterWithCarts is newTestRouter over the given cart store
func newTestRouterWithCarts(t *testing.T, cartRepo repository.CartRepository) http.Handler {
	t.Helper()

	cat, err := catalog.LoadDefault()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	log := logger.New("error")

	productRepo := repository.NewInMemoryProductRepository(cat.Products)
	categoryRepo := repository.NewInMemoryCategoryRepository(cat.Categories)
	products := service.NewProductService(productRepo, categoryRepo)
	carts := service.NewCartService(cartRepo, productRepo,
		pricing.NewCalculator(pricing.DefaultShippingPolicy()), log)

	svc := Services{
		Products:   products,
		Categories: service.NewCategoryService(categoryRepo, products),
		Carts:      carts,
		Orders:     service.NewOrderService(repository.NewInMemoryOrderRepository(repository.DemoOrders()), carts),
		Accounts:   service.NewAccountService(repository.NewInMemoryAccountRepository(repository.DemoProfile(), repository.DefaultSettings())),
	}
	return NewRouter(svc, RouterOptions{ServiceName: "storefront-test", CatalogSize: productRepo.Len}, log)
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []models.Product {
	t.Helper()
	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return products
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name      string
		query     string
		wantSlugs []string
		wantCount int
	}{
		{
			name:      "no filters",
			query:     "",
			wantCount: 13,
		},
		{
			name:      "category and rating",
			query:     "?category=2&minRating=4",
			wantSlugs: []string{"nova-surge-pre-workout"},
		},
		{
			name:      "comma separated categories",
			query:     "?category=3,5",
			wantSlugs: []string{"matrix-micronized-creatine", "daily-multi-vitamin", "apex-creatine-hcl", "omega-3-fish-oil"},
		},
		{
			name:      "preset price range",
			query:     "?priceRange=1",
			wantSlugs: []string{"matrix-micronized-creatine", "daily-multi-vitamin", "omega-3-fish-oil"},
		},
		{
			name:      "custom price range",
			query:     "?minPrice=1000&maxPrice=2000",
			wantSlugs: []string{"daily-multi-vitamin", "omega-3-fish-oil"},
		},
		{
			name:      "repeated tags are ORed",
			query:     "?tag=Focus&tag=Mass%20Gainer",
			wantSlugs: []string{"nova-surge-pre-workout", "titan-mass-gainer", "zen-focus-stim-free", "colossus-lean-gainer"},
		},
		{
			name:      "dietary",
			query:     "?dietary=gluten-free&category=4",
			wantSlugs: []string{"vortex-bcaa-complex"},
		},
		{
			name:      "invalid parameters are ignored",
			query:     "?category=abc&minRating=high&priceRange=99&dietary=keto",
			wantCount: 13,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
			products := decodeProducts(t, w)

			if tt.wantSlugs == nil {
				if len(products) != tt.wantCount {
					t.Errorf("expected %d products, got %d", tt.wantCount, len(products))
				}
				return
			}
			if len(products) != len(tt.wantSlugs) {
				t.Fatalf("expected %d products, got %d", len(tt.wantSlugs), len(products))
			}
			for i, p := range products {
				if p.Slug != tt.wantSlugs[i] {
					t.Errorf("product %d: expected %s, got %s", i, tt.wantSlugs[i], p.Slug)
				}
			}
		})
	}
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		slug           string
		expectedStatus int
	}{
		{name: "existing product", slug: "quantum-whey-isolate", expectedStatus: http.StatusOK},
		{name: "unknown product", slug: "mystery-powder", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.slug, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus == http.StatusOK {
				var product models.Product
				if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if product.Name != "Quantum Whey Isolate" || product.Price != 5999 {
					t.Errorf("unexpected product: %+v", product)
				}
				return
			}

			var errResp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&errResp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if errResp["error"] != "Product not found" {
				t.Errorf("expected 'Product not found', got %q", errResp["error"])
			}
		})
	}
}

func TestRelatedProducts(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCount  int
	}{
		{name: "default limit", path: "/api/products/quantum-whey-isolate/related", expectedStatus: http.StatusOK, expectedCount: 2},
		{name: "explicit limit", path: "/api/products/quantum-whey-isolate/related?limit=1", expectedStatus: http.StatusOK, expectedCount: 1},
		{name: "bad limit", path: "/api/products/quantum-whey-isolate/related?limit=0", expectedStatus: http.StatusBadRequest},
		{name: "unknown product", path: "/api/products/nope/related", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus == http.StatusOK {
				if got := len(decodeProducts(t, w)); got != tt.expectedCount {
					t.Errorf("expected %d related products, got %d", tt.expectedCount, got)
				}
			}
		})
	}
}

func TestFilterOptions(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/filters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var opts models.FilterOptions
	if err := json.NewDecoder(w.Body).Decode(&opts); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(opts.PriceRanges) != 4 || len(opts.Categories) != 6 {
		t.Errorf("unexpected filter options: %+v", opts)
	}
}

func TestCategories(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var categories []models.Category
	if err := json.NewDecoder(w.Body).Decode(&categories); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(categories) != 6 || categories[0].Count != 3 {
		t.Errorf("unexpected categories: %+v", categories)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/categories/vitamins?minRating=4.6", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var view service.CategoryView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].Slug != "daily-multi-vitamin" {
		t.Errorf("unexpected category products: %+v", view.Products)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/categories/snacks", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Products != 13 {
		t.Errorf("unexpected health response: %+v", resp)
	}

	degraded := NewHealthHandler(logger.New("error"), func() int { return 0 })
	w = httptest.NewRecorder()
	degraded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503 for empty catalog, got %d", w.Code)
	}
}
