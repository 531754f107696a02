package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/service"
)

// AccountHandler serves the demo account's profile and settings
type AccountHandler struct {
	service *service.AccountService
	logger  *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service *service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger,
	}
}

// GetProfile handles GET /api/account/profile
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context())
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile, h.logger)
}

// UpdateProfile handles PUT /api/account/profile
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var update models.Profile
	if err := decodeJSON(w, r, &update); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), update)
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile, h.logger)
}

// GetSettings handles GET /api/account/settings
func (h *AccountHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.logger)
}

// ToggleNotification handles POST /api/account/settings/notifications/{channel}/{key}
func (h *AccountHandler) ToggleNotification(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")
	key := chi.URLParam(r, "key")

	settings, err := h.service.ToggleNotification(r.Context(), channel, key)
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.logger)
}

// UpdatePrivacy handles PUT /api/account/settings/privacy
func (h *AccountHandler) UpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	var privacy models.PrivacySettings
	if err := decodeJSON(w, r, &privacy); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	settings, err := h.service.UpdatePrivacy(r.Context(), privacy)
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.logger)
}

// UpdatePreferences handles PUT /api/account/settings/preferences
func (h *AccountHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if err := decodeJSON(w, r, &prefs); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	settings, err := h.service.UpdatePreferences(r.Context(), prefs)
	if err != nil {
		h.accountError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.logger)
}

func (h *AccountHandler) accountError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProfile), errors.Is(err, service.ErrInvalidPreferences):
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, service.ErrUnknownChannel), errors.Is(err, service.ErrUnknownSetting):
		WriteError(w, http.StatusNotFound, err.Error(), h.logger)
	default:
		h.logger.Error("account operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
