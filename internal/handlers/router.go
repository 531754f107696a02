package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nutrikart/storefront/internal/middleware"
	"github.com/nutrikart/storefront/internal/service"
	"github.com/nutrikart/storefront/internal/telemetry"
)

// Services groups everything the HTTP layer calls into
type Services struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Carts      *service.CartService
	Orders     *service.OrderService
	Accounts   *service.AccountService
}

// RouterOptions tunes the middleware stack
type RouterOptions struct {
	ServiceName    string
	AllowedOrigins []string
	RequestTimeout time.Duration
	CatalogSize    func() int
}

// NewRouter builds the storefront API
func NewRouter(svc Services, opts RouterOptions, log *slog.Logger) http.Handler {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	healthHandler := NewHealthHandler(log, opts.CatalogSize)
	productHandler := NewProductHandler(svc.Products, log)
	categoryHandler := NewCategoryHandler(svc.Categories, log)
	cartHandler := NewCartHandler(svc.Carts, log)
	orderHandler := NewOrderHandler(svc.Orders, log)
	accountHandler := NewAccountHandler(svc.Accounts, log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	r.Use(telemetry.Middleware(opts.ServiceName, "/health"))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CartIDHeader},
		ExposedHeaders:   []string{middleware.CartIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", productHandler.FilterOptions)

		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{slug}", productHandler.GetProduct)
		r.Get("/products/{slug}/related", productHandler.RelatedProducts)

		r.Get("/categories", categoryHandler.ListCategories)
		r.Get("/categories/{slug}", categoryHandler.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession)

			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Patch("/cart/items/{lineId}", cartHandler.UpdateItem)
			r.Delete("/cart/items/{lineId}", cartHandler.RemoveItem)

			r.Post("/checkout", orderHandler.Checkout)
		})

		r.Get("/orders", orderHandler.ListOrders)
		r.Get("/orders/{orderId}", orderHandler.GetOrder)

		r.Route("/account", func(r chi.Router) {
			r.Get("/profile", accountHandler.GetProfile)
			r.Put("/profile", accountHandler.UpdateProfile)
			r.Get("/settings", accountHandler.GetSettings)
			r.Post("/settings/notifications/{channel}/{key}", accountHandler.ToggleNotification)
			r.Put("/settings/privacy", accountHandler.UpdatePrivacy)
			r.Put("/settings/preferences", accountHandler.UpdatePreferences)
		})
	})

	return r
}
