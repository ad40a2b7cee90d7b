package entryhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entryservice "github.com/runway-club/votewalk/app/modules/entry/application"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	userdb "github.com/runway-club/votewalk/app/modules/user/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
	"github.com/runway-club/votewalk/internal/uploads"
)

// EntryHandlers serves entry submission, listing, and moderation endpoints.
type EntryHandlers struct {
	service entryservice.Service
	store   *uploads.Store
	logger  *slog.Logger
}

func NewEntryHandlers(service entryservice.Service, store *uploads.Store, logger *slog.Logger) *EntryHandlers {
	return &EntryHandlers{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// HandleSubmit accepts a multipart form with "title", optional "description",
// and a "photo" file.
func (h *EntryHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	contestID, err := strconv.ParseInt(chi.URLParam(r, "contestID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(uploads.MaxPhotoSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photoURL, err := h.store.SavePhoto(file, header)
	if err != nil {
		if errors.Is(err, uploads.ErrUnsupportedType) {
			http.Error(w, "unsupported photo type", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to store photo", attr.Error(err))
		http.Error(w, "failed to store photo", http.StatusInternalServerError)
		return
	}

	input := entryservice.SubmitInput{
		Title:    r.FormValue("title"),
		PhotoURL: photoURL,
	}
	if desc := r.FormValue("description"); desc != "" {
		input.Description = &desc
	}

	entry, err := h.service.Submit(ctx, identity.UserUUID, contestID, input)
	if err != nil {
		switch {
		case errors.Is(err, entryservice.ErrInvalidTitle), errors.Is(err, entryservice.ErrMissingPhoto):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, entryservice.ErrNoModelProfile):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, entryservice.ErrContestNotActive):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, contestdb.ErrNotFound):
			http.Error(w, "contest not found", http.StatusNotFound)
		case errors.Is(err, entrydb.ErrDuplicateEntry):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "Entry submission failed", attr.Error(err))
			http.Error(w, "entry submission failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// HandleList returns a contest's approved entries. Admins get the full set
// with ?all=true.
func (h *EntryHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contestID, err := strconv.ParseInt(chi.URLParam(r, "contestID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	includePending := false
	if r.URL.Query().Get("all") == "true" {
		identity, ok := userhandlers.IdentityFromContext(ctx)
		includePending = ok && identity.Role == userdb.RoleAdmin
	}

	entries, err := h.service.ListEntries(ctx, contestID, includePending)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to list entries", attr.Error(err))
		http.Error(w, "failed to list entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

func (h *EntryHandlers) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Approve)
}

func (h *EntryHandlers) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.service.Reject)
}

func (h *EntryHandlers) review(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error)) {
	ctx := r.Context()

	entryID, err := strconv.ParseInt(chi.URLParam(r, "entryID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid entry id", http.StatusBadRequest)
		return
	}

	entry, err := fn(ctx, entryID)
	if err != nil {
		if errors.Is(err, entrydb.ErrNotFound) {
			http.Error(w, "entry not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Entry review failed", attr.Error(err))
		http.Error(w, "entry review failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
