package models

// Profile is the demo shopper's personal information
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	Avatar      string `json:"avatar,omitempty"`
	JoinedDate  string `json:"joinedDate"`
	Gender      string `json:"gender"`
	Location    string `json:"location"`
}

// Settings groups notification, privacy and display preferences
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Preferences   Preferences          `json:"preferences"`
}

// NotificationSettings holds per-channel toggles keyed by notification kind
type NotificationSettings struct {
	Email map[string]bool `json:"email"`
	Push  map[string]bool `json:"push"`
}

type PrivacySettings struct {
	ShareDataForAnalytics bool   `json:"shareDataForAnalytics"`
	ProfileVisibility     string `json:"profileVisibility"`
	ActivityTracking      bool   `json:"activityTracking"`
}

type Preferences struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// Clone returns a deep copy so callers cannot alias the notification maps
func (s Settings) Clone() Settings {
	out := s
	out.Notifications.Email = cloneToggles(s.Notifications.Email)
	out.Notifications.Push = cloneToggles(s.Notifications.Push)
	return out
}

func cloneToggles(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
