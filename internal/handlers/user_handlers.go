package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tigersos/tigersos-api/internal/domain"
)

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	profile, err := h.userService.GetProfile(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), id, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "user updated successfully",
		"user":    user,
	})
}

func (h *Handlers) AddEmergencyContact(w http.ResponseWriter, r *http.Request) {
	var req domain.AddContactRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	contact, err := h.userService.AddContact(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "emergency contact added successfully",
		"contact": contact,
	})
}

func (h *Handlers) UpdateEmergencyContact(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req domain.UpdateContactRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	contact, err := h.userService.UpdateContact(r.Context(), userID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "emergency contact updated successfully",
		"contact": contact,
	})
}
