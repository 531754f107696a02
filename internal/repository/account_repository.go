package repository

import (
	"context"
	"sync"

	"github.com/nutrikart/storefront/internal/models"
)

// AccountRepository holds the single demo account's profile and settings.
// The Update methods apply fn to the current value and store the result
// atomically; an error from fn leaves the stored value unchanged.
type AccountRepository interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, fn func(*models.Profile) error) (models.Profile, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, fn func(*models.Settings) error) (models.Settings, error)
}

// InMemoryAccountRepository keeps the demo account in memory
type InMemoryAccountRepository struct {
	profile  models.Profile
	settings models.Settings
	mu       sync.RWMutex
}

// NewInMemoryAccountRepository creates a repository seeded with the given account
func NewInMemoryAccountRepository(profile models.Profile, settings models.Settings) *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		profile:  profile,
		settings: settings.Clone(),
	}
}

func (r *InMemoryAccountRepository) GetProfile(ctx context.Context) (models.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profile, nil
}

func (r *InMemoryAccountRepository) UpdateProfile(ctx context.Context, fn func(*models.Profile) error) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile := r.profile
	if err := fn(&profile); err != nil {
		return models.Profile{}, err
	}
	r.profile = profile
	return profile, nil
}

func (r *InMemoryAccountRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.Clone(), nil
}

func (r *InMemoryAccountRepository) UpdateSettings(ctx context.Context, fn func(*models.Settings) error) (models.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := r.settings.Clone()
	if err := fn(&settings); err != nil {
		return models.Settings{}, err
	}
	r.settings = settings.Clone()
	return settings, nil
}

// DemoProfile is the profile of the demo account
func DemoProfile() models.Profile {
	return models.Profile{
		Name:        "Himank",
		Email:       "himank@example.com",
		Phone:       "+91 9876543210",
		DateOfBirth: "1990-06-15",
		JoinedDate:  "March 2023",
		Gender:      "Male",
		Location:    "New Delhi, India",
	}
}

// DefaultSettings are the settings a new account starts with
func DefaultSettings() models.Settings {
	return models.Settings{
		Notifications: models.NotificationSettings{
			Email: map[string]bool{
				"marketing":     true,
				"orderUpdates":  true,
				"productAlerts": false,
				"newArrivals":   true,
			},
			Push: map[string]bool{
				"orderUpdates": true,
				"promotions":   false,
				"stockAlerts":  true,
				"reminders":    false,
			},
		},
		Privacy: models.PrivacySettings{
			ShareDataForAnalytics: true,
			ProfileVisibility:     "public",
			ActivityTracking:      true,
		},
		Preferences: models.Preferences{
			Language: "English",
			Currency: "INR",
			Theme:    "system",
		},
	}
}
