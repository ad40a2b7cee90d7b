package votehandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voteservice "github.com/runway-club/votewalk/app/modules/vote/application"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
)

func newTestHandlers(service *FakeVoteService) *VoteHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewVoteHandlers(service, logger)
}

func TestHandleCastVote(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		var gotVoterKey string
		service := &FakeVoteService{
			CastVoteFn: func(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error) {
				gotVoterKey = voterKey
				return &votedb.Vote{ID: 1, EntryID: 42, VoterKey: voterKey, VoteType: votedb.TypeFree}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{"contest_id":1,"model_id":5}`))
		req.RemoteAddr = "203.0.113.7:51234"
		rec := httptest.NewRecorder()

		newTestHandlers(service).HandleCastVote(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "203.0.113.7", gotVoterKey)
	})

	t.Run("duplicate returns conflict payload", func(t *testing.T) {
		service := &FakeVoteService{
			CastVoteFn: func(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error) {
				return nil, &voteservice.DuplicateVoteError{SameModel: false, VotedModelID: 8}
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{"contest_id":1,"model_id":5}`))
		rec := httptest.NewRecorder()

		newTestHandlers(service).HandleCastVote(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var resp duplicateVoteResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.False(t, resp.SameModel)
		assert.Equal(t, int64(8), resp.VotedModelID)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("inactive contest", func(t *testing.T) {
		service := &FakeVoteService{
			CastVoteFn: func(ctx context.Context, contestID, modelID int64, voterKey string, voteType votedb.VoteType, weight int) (*votedb.Vote, error) {
				return nil, voteservice.ErrContestNotActive
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{"contest_id":1,"model_id":5}`))
		rec := httptest.NewRecorder()

		newTestHandlers(service).HandleCastVote(rec, req)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/votes", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		newTestHandlers(&FakeVoteService{}).HandleCastVote(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleVoteStatus(t *testing.T) {
	service := &FakeVoteService{
		GetVoteStatusFn: func(ctx context.Context, contestID int64, voterKey string) (*voteservice.VoteStatus, error) {
			assert.Equal(t, int64(3), contestID)
			entryID := int64(42)
			return &voteservice.VoteStatus{HasVoted: true, EntryID: &entryID}, nil
		},
	}

	router := chi.NewRouter()
	router.Get("/api/contests/{contestID}/vote-status", newTestHandlers(service).HandleVoteStatus)

	req := httptest.NewRequest(http.MethodGet, "/api/contests/3/vote-status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status voteservice.VoteStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.True(t, status.HasVoted)
}

func TestHandleLeaderboard(t *testing.T) {
	service := &FakeVoteService{
		ActiveLeaderboardFn: func(ctx context.Context) ([]votedb.LeaderboardRow, error) {
			return []votedb.LeaderboardRow{
				{ModelID: 1, DisplayName: "Ava", Votes: 12},
				{ModelID: 2, DisplayName: "Mia", Votes: 9},
				{ModelID: 3, DisplayName: "Zoe", Votes: 4},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard/active", nil)
	rec := httptest.NewRecorder()

	newTestHandlers(service).HandleLeaderboard(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []votedb.LeaderboardRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Ava", rows[0].DisplayName)
}
