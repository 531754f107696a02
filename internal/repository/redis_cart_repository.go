package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nutrikart/storefront/internal/models"
)

const (
	cartKeyPrefix = "storefront:cart:"

	// maxUpdateRetries bounds optimistic-lock retries in Update
	maxUpdateRetries = 10
)

// RedisCartRepository stores carts as JSON values that expire after a TTL
// of inactivity, so abandoned carts clean themselves up.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository connects to Redis and verifies the connection
func NewRedisCartRepository(ctx context.Context, redisURL string, ttl time.Duration) (*RedisCartRepository, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartRepositoryWithClient(client, ttl), nil
}

// NewRedisCartRepositoryWithClient wraps an existing client
func NewRedisCartRepositoryWithClient(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{
		client: client,
		ttl:    ttl,
	}
}

// Get loads a cart; a missing key yields an empty cart
func (r *RedisCartRepository) Get(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(cartID)).Bytes()
	return decodeCart(cartID, data, err)
}

// Save writes the cart and refreshes its TTL
func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.Set(ctx, r.key(cart.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Update watches the cart key, applies fn and writes the result in a
// MULTI/EXEC transaction. A concurrent write to the key fails the
// transaction and the whole read-modify-write is retried.
func (r *RedisCartRepository) Update(ctx context.Context, cartID string, fn CartUpdateFunc) (*models.Cart, error) {
	key := r.key(cartID)

	var updated *models.Cart
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		cart, err := decodeCart(cartID, data, err)
		if err != nil {
			return err
		}
		if err := fn(cart); err != nil {
			return err
		}

		cart.ID = cartID
		cart.UpdatedAt = time.Now().UTC()
		encoded, err := json.Marshal(cart)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = cart
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", ErrCartConflict, cartID)
}

// Delete removes the cart key
func (r *RedisCartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, r.key(cartID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool
func (r *RedisCartRepository) Close() error {
	return r.client.Close()
}

func (r *RedisCartRepository) key(cartID string) string {
	return cartKeyPrefix + cartID
}

// decodeCart turns the result of a GET into a cart
func decodeCart(cartID string, data []byte, err error) (*models.Cart, error) {
	if errors.Is(err, redis.Nil) {
		return &models.Cart{ID: cartID, Lines: []models.CartLine{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart %s: %w", cartID, err)
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}
	return &cart, nil
}
