package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nutrikart/storefront/internal/models"
)

// ErrCartConflict is returned when a cart kept changing underneath an update
var ErrCartConflict = errors.New("cart was modified concurrently")

// CartUpdateFunc mutates a cart in place. Returning an error aborts the
// update and nothing is stored.
type CartUpdateFunc func(cart *models.Cart) error

// CartRepository stores carts by ID. Get on an unknown ID returns an empty
// cart with that ID rather than an error.
//
// Update applies fn to the current cart and stores the result atomically
// with respect to other updates of the same cart. fn may be called more
// than once, so it must not have side effects outside the cart.
type CartRepository interface {
	Get(ctx context.Context, cartID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Update(ctx context.Context, cartID string, fn CartUpdateFunc) (*models.Cart, error)
	Delete(ctx context.Context, cartID string) error
}

// InMemoryCartRepository keeps carts in process memory
type InMemoryCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewInMemoryCartRepository creates an empty in-memory cart store
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Get returns a copy of the stored cart
func (r *InMemoryCartRepository) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[cartID]
	if !exists {
		return &models.Cart{ID: cartID, Lines: []models.CartLine{}}, nil
	}
	return copyCart(cart), nil
}

// Save stores a copy of the cart
func (r *InMemoryCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	stored := copyCart(*cart)
	stored.UpdatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.ID] = *stored
	cart.UpdatedAt = stored.UpdatedAt
	return nil
}

// Update runs fn under the store's write lock
func (r *InMemoryCartRepository) Update(ctx context.Context, cartID string, fn CartUpdateFunc) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart := &models.Cart{ID: cartID, Lines: []models.CartLine{}}
	if stored, exists := r.carts[cartID]; exists {
		cart = copyCart(stored)
	}
	if err := fn(cart); err != nil {
		return nil, err
	}

	cart.ID = cartID
	cart.UpdatedAt = time.Now().UTC()
	r.carts[cartID] = *copyCart(*cart)
	return cart, nil
}

// Delete removes a cart; deleting an unknown cart is not an error
func (r *InMemoryCartRepository) Delete(ctx context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}

func copyCart(cart models.Cart) *models.Cart {
	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	cart.Lines = lines
	return &cart
}
