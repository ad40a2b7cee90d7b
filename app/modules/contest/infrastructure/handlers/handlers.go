package contesthandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"

	contestservice "github.com/runway-club/votewalk/app/modules/contest/application"
	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// ContestHandlers serves the public contest endpoints and the admin lifecycle
// endpoints.
type ContestHandlers struct {
	service contestservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewContestHandlers(service contestservice.Service, logger *slog.Logger, tracer trace.Tracer) *ContestHandlers {
	return &ContestHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func contestIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "contestID"), 10, 64)
}

func (h *ContestHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := contestdb.ContestStatus(r.URL.Query().Get("status"))
	if status != "" && !status.IsValid() {
		http.Error(w, "unknown contest status", http.StatusBadRequest)
		return
	}

	contests, err := h.service.ListContests(ctx, status)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list contests", attr.Error(err))
		http.Error(w, "failed to list contests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contests)
}

func (h *ContestHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	contest, err := h.service.GetContest(ctx, id)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load contest", attr.Error(err))
		http.Error(w, "failed to load contest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contest)
}

func (h *ContestHandlers) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contest, err := h.service.GetActiveContest(ctx)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "no active contest", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to load active contest", attr.Error(err))
		http.Error(w, "failed to load active contest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contest)
}

func (h *ContestHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input contestservice.ContestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	contest, err := h.service.CreateContest(ctx, input)
	if err != nil {
		h.writeInputError(ctx, w, err, "Failed to create contest")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contest)
}

func (h *ContestHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	var input contestservice.ContestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	contest, err := h.service.UpdateContest(ctx, id, input)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.writeInputError(ctx, w, err, "Failed to update contest")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(contest)
}

func (h *ContestHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteContest(ctx, id); err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to delete contest", attr.Error(err))
		http.Error(w, "failed to delete contest", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContestHandlers) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	if err := h.service.Activate(ctx, id); err != nil {
		switch {
		case errors.Is(err, contestdb.ErrNotFound):
			http.Error(w, "contest not found", http.StatusNotFound)
		case errors.Is(err, contestdb.ErrInvalidTransition):
			http.Error(w, "completed contest cannot be activated", http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "Failed to activate contest", attr.Error(err))
			http.Error(w, "failed to activate contest", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ContestHandlers) HandleCompleteExpired(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	completed, err := h.service.CompleteExpired(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Expired contest sweep failed", attr.Error(err))
		http.Error(w, "failed to complete expired contests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"completed": completed,
		"count":     len(completed),
	})
}

type setWinnerRequest struct {
	EntryID *int64 `json:"entry_id"`
}

func (h *ContestHandlers) HandleSetWinner(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	var req setWinnerRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	result, err := h.service.AnnounceWinner(ctx, id, req.EntryID)
	if err != nil {
		switch {
		case errors.Is(err, contestdb.ErrNotFound), errors.Is(err, entrydb.ErrNotFound):
			http.Error(w, "not found", http.StatusNotFound)
		case errors.Is(err, contestservice.ErrContestNotCompleted),
			errors.Is(err, contestservice.ErrAlreadyAnnounced),
			errors.Is(err, contestservice.ErrTieUnresolved):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, contestservice.ErrNoApprovedEntries),
			errors.Is(err, contestservice.ErrEntryNotInContest):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "Failed to announce winner", attr.Error(err))
			http.Error(w, "failed to announce winner", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *ContestHandlers) HandleWinnerPreview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	result, err := h.service.DetermineWinner(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, contestdb.ErrNotFound):
			http.Error(w, "contest not found", http.StatusNotFound)
		case errors.Is(err, contestservice.ErrContestNotCompleted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, contestservice.ErrNoApprovedEntries):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "Failed to determine winner", attr.Error(err))
			http.Error(w, "failed to determine winner", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *ContestHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	png, err := h.service.RenderVotesChart(ctx, id)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to render chart", attr.Error(err))
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *ContestHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := contestIDParam(r)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	xlsx, err := h.service.ExportResults(ctx, id)
	if err != nil {
		if errors.Is(err, contestdb.ErrNotFound) {
			http.Error(w, "contest not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to export results", attr.Error(err))
		http.Error(w, "failed to export results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=contest-%d-results.xlsx", id))
	w.Write(xlsx)
}

func (h *ContestHandlers) writeInputError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, contestservice.ErrInvalidTitle),
		errors.Is(err, contestservice.ErrInvalidDates),
		errors.Is(err, contestservice.ErrUnparsableDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		h.logger.ErrorContext(ctx, msg, attr.Error(err))
		http.Error(w, "contest operation failed", http.StatusInternalServerError)
	}
}
