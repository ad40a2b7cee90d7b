package prizehandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	prizeservice "github.com/runway-club/votewalk/app/modules/prize/application"
	prizedb "github.com/runway-club/votewalk/app/modules/prize/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// PrizeHandlers serves prize claims and complaints.
type PrizeHandlers struct {
	service prizeservice.Service
	logger  *slog.Logger
}

func NewPrizeHandlers(service prizeservice.Service, logger *slog.Logger) *PrizeHandlers {
	return &PrizeHandlers{
		service: service,
		logger:  logger,
	}
}

type prizeRequestBody struct {
	ContestID   int64  `json:"contest_id"`
	Message     string `json:"message"`
	ContactInfo string `json:"contact_info"`
}

func (h *PrizeHandlers) HandleSubmitPrizeRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req prizeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.service.SubmitPrizeRequest(ctx, identity.UserUUID, req.ContestID, req.Message, req.ContactInfo)
	if err != nil {
		switch {
		case errors.Is(err, prizeservice.ErrMissingContactInfo):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, prizeservice.ErrNoModelProfile), errors.Is(err, prizeservice.ErrNotWinner):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, contestdb.ErrNotFound):
			http.Error(w, "contest not found", http.StatusNotFound)
		case errors.Is(err, prizedb.ErrDuplicateRequest):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "Prize request failed", attr.Error(err))
			http.Error(w, "prize request failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(request)
}

func (h *PrizeHandlers) HandleListPrizeRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requests, err := h.service.ListPrizeRequests(ctx, prizedb.RequestStatus(r.URL.Query().Get("status")))
	if err != nil {
		if errors.Is(err, prizeservice.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to list prize requests", attr.Error(err))
		http.Error(w, "failed to list prize requests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

type statusUpdateBody struct {
	Status     string  `json:"status"`
	Priority   string  `json:"priority"`
	AdminNotes *string `json:"admin_notes"`
}

func (h *PrizeHandlers) HandleUpdatePrizeRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}

	var body statusUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.service.UpdatePrizeRequestStatus(ctx, id, prizedb.RequestStatus(body.Status), body.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, prizeservice.ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, prizedb.ErrNotFound):
			http.Error(w, "prize request not found", http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "Failed to update prize request", attr.Error(err))
			http.Error(w, "failed to update prize request", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

// HandleSubmitComplaint accepts reports from anyone; authenticated callers
// are recorded as the reporter.
func (h *PrizeHandlers) HandleSubmitComplaint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reporter *uuid.UUID
	if identity, ok := userhandlers.IdentityFromContext(ctx); ok {
		reporter = &identity.UserUUID
	}

	var input prizeservice.ComplaintInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	complaint, err := h.service.SubmitComplaint(ctx, reporter, input)
	if err != nil {
		if errors.Is(err, prizeservice.ErrMissingSubject) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Complaint submission failed", attr.Error(err))
		http.Error(w, "complaint submission failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(complaint)
}

func (h *PrizeHandlers) HandleListComplaints(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	complaints, err := h.service.ListComplaints(ctx, prizedb.ComplaintStatus(r.URL.Query().Get("status")))
	if err != nil {
		if errors.Is(err, prizeservice.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "Failed to list complaints", attr.Error(err))
		http.Error(w, "failed to list complaints", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaints)
}

func (h *PrizeHandlers) HandleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "complaintID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid complaint id", http.StatusBadRequest)
		return
	}

	var body statusUpdateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	complaint, err := h.service.UpdateComplaint(ctx, id,
		prizedb.ComplaintStatus(body.Status), prizedb.ComplaintPriority(body.Priority), body.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, prizeservice.ErrInvalidStatus):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, prizedb.ErrNotFound):
			http.Error(w, "complaint not found", http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "Failed to update complaint", attr.Error(err))
			http.Error(w, "failed to update complaint", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(complaint)
}
