package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger      *slog.Logger
	catalogSize func() int
}

// NewHealthHandler creates a new health handler. catalogSize reports how many
// products are being served.
func NewHealthHandler(logger *slog.Logger, catalogSize func() int) *HealthHandler {
	return &HealthHandler{
		logger:      logger,
		catalogSize: catalogSize,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Products  int       `json:"products"`
}

// ServeHTTP handles health check requests. An empty catalog is reported as
// degraded with 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}
	status := http.StatusOK
	if h.catalogSize != nil {
		response.Products = h.catalogSize()
		if response.Products == 0 {
			response.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
