package votehandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	voteservice "github.com/runway-club/votewalk/app/modules/vote/application"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/httpx"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// VoteHandlers serves ballot casting, vote status, and the leaderboard.
type VoteHandlers struct {
	service voteservice.Service
	logger  *slog.Logger
}

func NewVoteHandlers(service voteservice.Service, logger *slog.Logger) *VoteHandlers {
	return &VoteHandlers{
		service: service,
		logger:  logger,
	}
}

type castVoteRequest struct {
	ContestID int64           `json:"contest_id"`
	ModelID   int64           `json:"model_id"`
	VoteType  votedb.VoteType `json:"vote_type"`
}

type duplicateVoteResponse struct {
	Error        string `json:"error"`
	SameModel    bool   `json:"same_model"`
	VotedModelID int64  `json:"voted_model_id"`
}

// HandleCastVote records a free ballot keyed by the caller's IP.
func (h *VoteHandlers) HandleCastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	vote, err := h.service.CastVote(ctx, req.ContestID, req.ModelID, httpx.ClientIP(r), req.VoteType, 1)
	if err != nil {
		var dup *voteservice.DuplicateVoteError
		switch {
		case errors.As(err, &dup):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(duplicateVoteResponse{
				Error:        dup.Error(),
				SameModel:    dup.SameModel,
				VotedModelID: dup.VotedModelID,
			})
		case errors.Is(err, voteservice.ErrContestNotActive):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, voteservice.ErrEntryNotFound), errors.Is(err, voteservice.ErrInvalidVoteType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, contestdb.ErrNotFound):
			http.Error(w, "contest not found", http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "Vote failed", attr.Error(err))
			http.Error(w, "vote failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(vote)
}

// HandleVoteStatus reports whether the caller's IP already voted in a contest.
func (h *VoteHandlers) HandleVoteStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	contestID, err := strconv.ParseInt(chi.URLParam(r, "contestID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid contest id", http.StatusBadRequest)
		return
	}

	status, err := h.service.GetVoteStatus(ctx, contestID, httpx.ClientIP(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load vote status", attr.Error(err))
		http.Error(w, "failed to load vote status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// HandleLeaderboard returns the top models across active contests.
func (h *VoteHandlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.service.ActiveLeaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to build leaderboard", attr.Error(err))
		http.Error(w, "failed to build leaderboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}
