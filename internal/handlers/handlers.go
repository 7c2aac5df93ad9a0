package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tigersos/tigersos-api/internal/domain"
	"github.com/tigersos/tigersos-api/internal/service"
	"github.com/tigersos/tigersos-api/pkg/auth"
	"github.com/tigersos/tigersos-api/pkg/config"
	"github.com/tigersos/tigersos-api/pkg/logger"
)

type Handlers struct {
	authService  service.AuthService
	userService  service.UserService
	alertService service.AlertService
	adminService service.AdminService
	config       *config.Config
}

func New(
	authService service.AuthService,
	userService service.UserService,
	alertService service.AlertService,
	adminService service.AdminService,
	config *config.Config,
) *Handlers {
	return &Handlers{
		authService:  authService,
		userService:  userService,
		alertService: alertService,
		adminService: adminService,
		config:       config,
	}
}

type contextKey string

const claimsKey contextKey = "claims"

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// handleError maps service errors to HTTP responses. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Reason, "INVALID_INPUT")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found", "NOT_FOUND")
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPhoneTaken),
		errors.Is(err, domain.ErrContactPhoneTaken):
		writeError(w, http.StatusConflict, err.Error(), "CONFLICT")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password", "UNAUTHORIZED")
	case errors.Is(err, domain.ErrInvalidCode):
		writeError(w, http.StatusBadRequest, "invalid recovery code", "INVALID_CODE")
	case errors.Is(err, domain.ErrExpiredCode):
		writeError(w, http.StatusBadRequest, "recovery code expired", "EXPIRED_CODE")
	default:
		logger.ErrorContext(r.Context(), "Unhandled error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("invalid request body")
	}
	return nil
}

// Authenticated verifies the bearer token and stores its claims in the
// request context.
func (h *Handlers) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or malformed authorization header", "UNAUTHORIZED")
			return
		}

		claims, err := auth.Parse(strings.TrimPrefix(header, "Bearer "), h.config.Auth.JWTSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token", "INVALID_TOKEN")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		ctx = context.WithValue(ctx, logger.UserIDKey, claims.Sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthenticatedAdmin additionally requires the admin role.
func (h *Handlers) AuthenticatedAdmin(next http.Handler) http.Handler {
	return h.Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := getClaims(r)
		if claims == nil || claims.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required", "FORBIDDEN")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func getClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(claimsKey).(*auth.Claims)
	return claims
}
