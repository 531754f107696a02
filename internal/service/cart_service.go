package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/pricing"
	"github.com/nutrikart/storefront/internal/repository"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidSize    = errors.New("size is not offered for this product")
	ErrInvalidFlavor  = errors.New("flavor is not offered for this product")
	ErrLineNotFound   = errors.New("cart line not found")
	ErrMissingCartID  = errors.New("cart ID is required")
)

// CartService handles cart mutations and pricing
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	calc     *pricing.Calculator
	log      *slog.Logger
}

// NewCartService creates a new cart service
func NewCartService(carts repository.CartRepository, products repository.ProductRepository, calc *pricing.Calculator, log *slog.Logger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		calc:     calc,
		log:      log,
	}
}

// NewCartID returns a fresh opaque cart identifier
func NewCartID() string {
	return uuid.New().String()
}

// GetCart returns the cart with its lines priced against the catalog
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.CartView, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem adds a product to the cart. Empty size or flavor picks the
// product's first option. A line with the same product, size and flavor is
// merged instead of duplicated. Quantity is clamped to [1,10].
func (s *CartService) AddItem(ctx context.Context, cartID string, req models.AddItemRequest) (*models.CartView, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}

	product, err := s.products.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, err
	}

	size, err := pickSize(product, req.Size)
	if err != nil {
		return nil, err
	}
	flavor, err := pickFlavor(product, req.Flavor)
	if err != nil {
		return nil, err
	}

	quantity := pricing.ClampQuantity(req.Quantity)
	return s.mutate(ctx, cartID, func(cart *models.Cart) error {
		for i, line := range cart.Lines {
			if line.ProductID == product.ID && line.Size == size && line.Flavor == flavor {
				cart.Lines[i].Quantity = pricing.ClampQuantity(line.Quantity + quantity)
				return nil
			}
		}
		cart.Lines = append(cart.Lines, models.CartLine{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  quantity,
			Size:      size,
			Flavor:    flavor,
		})
		return nil
	})
}

// UpdateQuantity sets a line's quantity, clamped to [1,10]
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, lineID string, quantity int) (*models.CartView, error) {
	return s.mutate(ctx, cartID, func(cart *models.Cart) error {
		i := lineIndex(cart, lineID)
		if i < 0 {
			return ErrLineNotFound
		}
		cart.Lines[i].Quantity = pricing.ClampQuantity(quantity)
		return nil
	})
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(ctx context.Context, cartID, lineID string) (*models.CartView, error) {
	return s.mutate(ctx, cartID, func(cart *models.Cart) error {
		i := lineIndex(cart, lineID)
		if i < 0 {
			return ErrLineNotFound
		}
		cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
		return nil
	})
}

// takeLines atomically empties the cart and returns the lines it held, so
// two checkouts of one cart cannot both see its contents.
func (s *CartService) takeLines(ctx context.Context, cartID string) (*models.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}

	var taken []models.CartLine
	_, err := s.carts.Update(ctx, cartID, func(cart *models.Cart) error {
		if len(cart.Lines) == 0 {
			return ErrEmptyCart
		}
		taken = cart.Lines
		cart.Lines = []models.CartLine{}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return &models.Cart{ID: cartID, Lines: taken}, nil
}

// restoreLines puts lines taken by takeLines back in front of anything
// added to the cart since.
func (s *CartService) restoreLines(ctx context.Context, taken *models.Cart) error {
	_, err := s.carts.Update(ctx, taken.ID, func(cart *models.Cart) error {
		lines := make([]models.CartLine, 0, len(taken.Lines)+len(cart.Lines))
		lines = append(lines, taken.Lines...)
		lines = append(lines, cart.Lines...)
		cart.Lines = lines
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to restore cart %s: %w", taken.ID, err)
	}
	return nil
}

// Summarize prices resolved line items
func (s *CartService) Summarize(items []models.LineItem) models.CartSummary {
	return s.calc.Summarize(items)
}

func (s *CartService) load(ctx context.Context, cartID string) (*models.Cart, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	cart, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return cart, nil
}

// mutate applies fn to the stored cart atomically and prices the result
func (s *CartService) mutate(ctx context.Context, cartID string, fn repository.CartUpdateFunc) (*models.CartView, error) {
	if cartID == "" {
		return nil, ErrMissingCartID
	}
	cart, err := s.carts.Update(ctx, cartID, fn)
	if err != nil {
		if errors.Is(err, ErrLineNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return s.view(ctx, cart)
}

func (s *CartService) resolve(ctx context.Context, cart *models.Cart) ([]models.LineItem, error) {
	items := make([]models.LineItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				s.log.Warn("dropping cart line for unknown product",
					"cart_id", cart.ID,
					"line_id", line.ID,
					"product_id", line.ProductID,
				)
				continue
			}
			return nil, err
		}
		items = append(items, models.LineItem{
			LineID:   line.ID,
			Product:  *product,
			Quantity: line.Quantity,
			Size:     line.Size,
			Flavor:   line.Flavor,
		})
	}
	return items, nil
}

func (s *CartService) view(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	items, err := s.resolve(ctx, cart)
	if err != nil {
		return nil, err
	}
	return &models.CartView{
		ID:          cart.ID,
		CartSummary: s.calc.Summarize(items),
	}, nil
}

func lineIndex(cart *models.Cart, lineID string) int {
	for i, line := range cart.Lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func pickSize(p *models.Product, size string) (string, error) {
	if len(p.Sizes) == 0 {
		if size != "" {
			return "", ErrInvalidSize
		}
		return "", nil
	}
	if size == "" {
		return p.Sizes[0].Name, nil
	}
	for _, s := range p.Sizes {
		if s.Name == size {
			return size, nil
		}
	}
	return "", ErrInvalidSize
}

func pickFlavor(p *models.Product, flavor string) (string, error) {
	if len(p.Flavors) == 0 {
		if flavor != "" {
			return "", ErrInvalidFlavor
		}
		return "", nil
	}
	if flavor == "" {
		return p.Flavors[0], nil
	}
	for _, f := range p.Flavors {
		if f == flavor {
			return flavor, nil
		}
	}
	return "", ErrInvalidFlavor
}
