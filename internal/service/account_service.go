package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nutrikart/storefront/internal/models"
	"github.com/nutrikart/storefront/internal/repository"
)

var (
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrUnknownChannel     = errors.New("unknown notification channel")
	ErrUnknownSetting     = errors.New("unknown notification setting")
	ErrInvalidPreferences = errors.New("invalid settings value")
)

var (
	profileVisibilities = []string{"public", "private"}
	themes              = []string{"light", "dark", "system"}
	currencies          = []string{"INR", "USD", "EUR", "GBP"}
	languages           = []string{"English", "Hindi"}
)

// AccountService manages the demo account's profile and settings
type AccountService struct {
	accounts repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) GetProfile(ctx context.Context) (models.Profile, error) {
	return s.accounts.GetProfile(ctx)
}

// UpdateProfile replaces the editable profile fields. JoinedDate is kept.
func (s *AccountService) UpdateProfile(ctx context.Context, update models.Profile) (models.Profile, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Email = strings.TrimSpace(update.Email)
	if update.Name == "" {
		return models.Profile{}, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if !strings.Contains(update.Email, "@") {
		return models.Profile{}, fmt.Errorf("%w: email is invalid", ErrInvalidProfile)
	}

	return s.accounts.UpdateProfile(ctx, func(current *models.Profile) error {
		update.JoinedDate = current.JoinedDate
		*current = update
		return nil
	})
}

func (s *AccountService) GetSettings(ctx context.Context) (models.Settings, error) {
	return s.accounts.GetSettings(ctx)
}

// ToggleNotification flips one notification setting on a channel (email or push)
func (s *AccountService) ToggleNotification(ctx context.Context, channel, key string) (models.Settings, error) {
	return s.accounts.UpdateSettings(ctx, func(settings *models.Settings) error {
		var toggles map[string]bool
		switch channel {
		case "email":
			toggles = settings.Notifications.Email
		case "push":
			toggles = settings.Notifications.Push
		default:
			return fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
		}

		current, ok := toggles[key]
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownSetting, channel, key)
		}
		toggles[key] = !current
		return nil
	})
}

// UpdatePrivacy replaces the privacy settings
func (s *AccountService) UpdatePrivacy(ctx context.Context, privacy models.PrivacySettings) (models.Settings, error) {
	if !oneOf(privacy.ProfileVisibility, profileVisibilities) {
		return models.Settings{}, fmt.Errorf("%w: profile visibility %q", ErrInvalidPreferences, privacy.ProfileVisibility)
	}

	return s.accounts.UpdateSettings(ctx, func(settings *models.Settings) error {
		settings.Privacy = privacy
		return nil
	})
}

// UpdatePreferences replaces language, currency and theme
func (s *AccountService) UpdatePreferences(ctx context.Context, prefs models.Preferences) (models.Settings, error) {
	switch {
	case !oneOf(prefs.Theme, themes):
		return models.Settings{}, fmt.Errorf("%w: theme %q", ErrInvalidPreferences, prefs.Theme)
	case !oneOf(prefs.Currency, currencies):
		return models.Settings{}, fmt.Errorf("%w: currency %q", ErrInvalidPreferences, prefs.Currency)
	case !oneOf(prefs.Language, languages):
		return models.Settings{}, fmt.Errorf("%w: language %q", ErrInvalidPreferences, prefs.Language)
	}

	return s.accounts.UpdateSettings(ctx, func(settings *models.Settings) error {
		settings.Preferences = prefs
		return nil
	})
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
