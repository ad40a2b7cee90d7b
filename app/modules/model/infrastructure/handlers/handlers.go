package modelhandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	modelservice "github.com/runway-club/votewalk/app/modules/model/application"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// ModelHandlers serves the model-profile endpoints.
type ModelHandlers struct {
	service modelservice.Service
	logger  *slog.Logger
}

func NewModelHandlers(service modelservice.Service, logger *slog.Logger) *ModelHandlers {
	return &ModelHandlers{service: service, logger: logger}
}

func (h *ModelHandlers) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input modelservice.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := h.service.CreateProfile(ctx, identity.UserUUID, input)
	if err != nil {
		switch {
		case errors.Is(err, modelservice.ErrInvalidDisplayName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, modeldb.ErrProfileExists):
			http.Error(w, "profile already exists", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "Failed to create profile", attr.Error(err))
			http.Error(w, "failed to create profile", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(model)
}

func (h *ModelHandlers) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input modelservice.ProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model, err := h.service.UpdateProfile(ctx, identity.UserUUID, input)
	if err != nil {
		if errors.Is(err, modeldb.ErrNotFound) {
			http.Error(w, "no model profile", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to update profile", attr.Error(err))
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}

func (h *ModelHandlers) HandleGetOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	model, err := h.service.GetOwnProfile(ctx, identity.UserUUID)
	if err != nil {
		if errors.Is(err, modeldb.ErrNotFound) {
			http.Error(w, "no model profile", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load profile", attr.Error(err))
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}

func (h *ModelHandlers) HandleGetModel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "modelID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid model ID", http.StatusBadRequest)
		return
	}

	model, err := h.service.GetModel(ctx, id)
	if err != nil {
		if errors.Is(err, modeldb.ErrNotFound) {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to fetch model", attr.Error(err))
		http.Error(w, "failed to fetch model", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model)
}

func (h *ModelHandlers) HandleListModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	models, err := h.service.ListModels(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list models", attr.Error(err))
		http.Error(w, "failed to list models", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models)
}
