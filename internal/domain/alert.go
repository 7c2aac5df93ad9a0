package domain

import "time"

type AlertStatus string

const (
	AlertActive    AlertStatus = "active"
	AlertResolved  AlertStatus = "resolved"
	AlertCancelled AlertStatus = "cancelled"
)

func ParseAlertStatus(s string) (AlertStatus, bool) {
	switch AlertStatus(s) {
	case AlertActive, AlertResolved, AlertCancelled:
		return AlertStatus(s), true
	default:
		return "", false
	}
}

type Alert struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Location   string      `json:"location,omitempty"`
	Status     AlertStatus `json:"status"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
	ResolvedBy string      `json:"resolved_by,omitempty"`
}

// AlertWithUser is the admin listing shape, alert plus owner identification.
type AlertWithUser struct {
	Alert
	UserFullName string `json:"user_full_name"`
	UserEmail    string `json:"user_email"`
	UserPhone    string `json:"user_phone"`
}

type CreateAlertRequest struct {
	UserID   string `json:"user_id"`
	Location string `json:"location,omitempty"`
}

type UpdateAlertRequest struct {
	Status     string `json:"status,omitempty"`
	ResolvedBy string `json:"resolved_by,omitempty"`
}

func (r *CreateAlertRequest) Validate() error {
	if r.UserID == "" {
		return Invalid("user id is required")
	}
	return nil
}
