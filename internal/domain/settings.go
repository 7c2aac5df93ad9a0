package domain

import "time"

// Settings is the admin-tunable application configuration. Defaults match
// the values shipped to the mobile client before settings were persisted.
type Settings struct {
	MaxEmergencyContacts    int    `json:"max_emergency_contacts"`
	AlertTimeoutSeconds     int    `json:"alert_timeout_seconds"`
	AppVersion              string `json:"app_version"`
	RequireLocationForAlert bool   `json:"require_location_for_alert"`
}

func DefaultSettings() Settings {
	return Settings{
		MaxEmergencyContacts:    MaxEmergencyContacts,
		AlertTimeoutSeconds:     5,
		AppVersion:              "1.0.0",
		RequireLocationForAlert: true,
	}
}

// DashboardStats backs the admin overview panel.
type DashboardStats struct {
	TotalUsers           int64 `json:"total_users"`
	UsersWithContacts    int64 `json:"users_with_contacts"`
	UsersWithoutContacts int64 `json:"users_without_contacts"`
	ActiveAlerts         int64 `json:"active_alerts"`
}

// AdminUserSummary is the admin user-list row, contacts collapsed to a count.
type AdminUserSummary struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	BloodType     string    `json:"blood_type"`
	CreatedAt     time.Time `json:"created_at"`
	ContactsCount int       `json:"emergency_contacts"`
}

