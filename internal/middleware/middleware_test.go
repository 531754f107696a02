package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nutrikart/storefront/pkg/logger"
)

func TestCartSession(t *testing.T) {
	existing := uuid.New().String()

	tests := []struct {
		name       string
		header     string
		wantReused bool
	}{
		{
			name:       "existing cart ID is kept",
			header:     existing,
			wantReused: true,
		},
		{
			name:       "missing cart ID is issued",
			header:     "",
			wantReused: false,
		},
		{
			name:       "malformed cart ID is replaced",
			header:     "not-a-cart",
			wantReused: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = CartIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.header != "" {
				req.Header.Set(CartIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			got := w.Header().Get(CartIDHeader)
			if got != seen {
				t.Errorf("response header %q differs from context value %q", got, seen)
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected a UUID cart ID, got %q", got)
			}
			if tt.wantReused && got != tt.header {
				t.Errorf("expected cart ID %q to be kept, got %q", tt.header, got)
			}
			if !tt.wantReused && got == tt.header {
				t.Errorf("expected a new cart ID, got %q", got)
			}
		})
	}
}

func TestCartIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := CartIDFromContext(req.Context()); got != "" {
		t.Errorf("expected empty cart ID, got %q", got)
	}
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantLevel  string
		wantStatus float64
	}{
		{name: "success", status: http.StatusCreated, wantLevel: "INFO", wantStatus: 201},
		{name: "client error", status: http.StatusNotFound, wantLevel: "INFO", wantStatus: 404},
		{name: "server error", status: http.StatusInternalServerError, wantLevel: "ERROR", wantStatus: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&buf, "debug")

			handler := chimiddleware.RequestID(Logger(log)(CartSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))))

			req := httptest.NewRequest(http.MethodGet, "/api/products?tag=Vegan", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("expected level %s, got %v", tt.wantLevel, entry["level"])
			}
			if entry["status"] != tt.wantStatus {
				t.Errorf("expected status %v, got %v", tt.wantStatus, entry["status"])
			}
			if entry["path"] != "/api/products" {
				t.Errorf("expected path /api/products, got %v", entry["path"])
			}
			if entry["request_id"] == nil || entry["request_id"] == "" {
				t.Error("expected a request_id attribute")
			}
			if entry["cart_id"] == nil || entry["cart_id"] == "" {
				t.Error("expected a cart_id attribute")
			}
		})
	}
}
