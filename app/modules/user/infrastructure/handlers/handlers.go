package userhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	userservice "github.com/runway-club/votewalk/app/modules/user/application"
	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/httpx"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

const RefreshTokenCookie = "refresh_token"

// AuthHandlers serves the account and session endpoints.
type AuthHandlers struct {
	service       userservice.Service
	logger        *slog.Logger
	tracer        trace.Tracer
	secureCookies bool
	refreshTTL    time.Duration
}

func NewAuthHandlers(service userservice.Service, logger *slog.Logger, tracer trace.Tracer, secureCookies bool, refreshTTL time.Duration) *AuthHandlers {
	return &AuthHandlers{
		service:       service,
		logger:        logger,
		tracer:        tracer,
		secureCookies: secureCookies,
		refreshTTL:    refreshTTL,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Register(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidEmail), errors.Is(err, userservice.ErrWeakPassword):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, userdb.ErrEmailTaken):
			http.Error(w, "email already registered", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "Registration failed", attr.Error(err))
			http.Error(w, "registration failed", http.StatusInternalServerError)
		}
		return
	}

	h.setRefreshCookie(w, resp.RefreshToken)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Login(ctx, req.Email, req.Password, httpx.ClientIP(r))
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "Login failed", attr.Error(err))
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	h.setRefreshCookie(w, resp.RefreshToken)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Refresh(ctx, cookie.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "Refresh failed", attr.Error(err))
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	h.setRefreshCookie(w, resp.RefreshToken)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, _ := r.Cookie(RefreshTokenCookie)
	if cookie != nil {
		_ = h.service.Logout(ctx, cookie.Value)
	}

	// Clear cookie
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(ctx, identity.UserUUID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load user", attr.Error(err))
		http.Error(w, "failed to load user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (h *AuthHandlers) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}
