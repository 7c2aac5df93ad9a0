package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tigersos/tigersos-api/internal/domain"
)

func (h *Handlers) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAlertRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	alert, err := h.alertService.Create(r.Context(), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "emergency alert created",
		"alert":   alert,
	})
}

func (h *Handlers) ListUserAlerts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	alerts, err := h.alertService.ListByUser(r.Context(), userID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"alerts": alerts,
	})
}
