package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CartIDHeader carries the shopper's cart identifier in both directions
const CartIDHeader = "X-Cart-ID"

type cartIDKey struct{}

// CartSession reads the cart ID from the X-Cart-ID header. A missing or
// malformed ID is replaced by a freshly issued one. The effective ID is
// echoed in the response header and stored in the request context.
func CartSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cartID := r.Header.Get(CartIDHeader)
		if _, err := uuid.Parse(cartID); err != nil {
			cartID = uuid.New().String()
		}

		w.Header().Set(CartIDHeader, cartID)
		next.ServeHTTP(w, r.WithContext(WithCartID(r.Context(), cartID)))
	})
}

// WithCartID returns a copy of ctx carrying cartID
func WithCartID(ctx context.Context, cartID string) context.Context {
	return context.WithValue(ctx, cartIDKey{}, cartID)
}

// CartIDFromContext returns the cart ID stored by CartSession, or ""
func CartIDFromContext(ctx context.Context) string {
	cartID, _ := ctx.Value(cartIDKey{}).(string)
	return cartID
}
