package domain

import (
	"strings"
	"time"
)

type EmergencyContact struct {
	ID           string    `json:"id"`
	UserID       string    `json:"-"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	IsTutor      bool      `json:"is_tutor"`
	Relationship string    `json:"relationship"`
	Message      string    `json:"custom_message"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact list limits
const (
	MaxEmergencyContacts = 3

	// LocationPlaceholder must appear in every custom notification message;
	// it is substituted with the alert location at send time.
	LocationPlaceholder = "{location}"

	DefaultRelationship = "Otro"
)

type AddContactRequest struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	IsTutor      bool   `json:"is_tutor"`
	Relationship string `json:"relationship,omitempty"`
	Message      string `json:"custom_message"`
}

type UpdateContactRequest struct {
	ContactID    string `json:"contact_id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	IsTutor      bool   `json:"is_tutor"`
	Relationship string `json:"relationship,omitempty"`
	Message      string `json:"custom_message"`
}

func (r *AddContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Relationship == "" {
		r.Relationship = DefaultRelationship
	}
}

func (r *AddContactRequest) Validate() error {
	if r.Name == "" {
		return Invalid("contact name is required")
	}
	if !ValidPhone(r.Phone) {
		return Invalid("invalid phone format: must be +52 followed by 10 digits")
	}
	if !strings.Contains(r.Message, LocationPlaceholder) {
		return Invalid("custom message must include " + LocationPlaceholder)
	}
	return nil
}

func (r *UpdateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Relationship == "" {
		r.Relationship = DefaultRelationship
	}
}

func (r *UpdateContactRequest) Validate() error {
	if r.ContactID == "" {
		return Invalid("contact id is required")
	}
	if r.Name == "" {
		return Invalid("contact name is required")
	}
	if !ValidPhone(r.Phone) {
		return Invalid("invalid phone format: must be +52 followed by 10 digits")
	}
	if !strings.Contains(r.Message, LocationPlaceholder) {
		return Invalid("custom message must include " + LocationPlaceholder)
	}
	return nil
}
