package prizeservice

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	prizedb "github.com/runway-club/votewalk/app/modules/prize/infrastructure/repositories"
)

func newTestService(repo *prizedb.FakeRepository, contestRepo *contestdb.FakeRepository, modelRepo *modeldb.FakeRepository) *PrizeService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	return NewService(repo, contestRepo, modelRepo, logger, tracer)
}

func TestPrizeService_SubmitPrizeRequest(t *testing.T) {
	ctx := context.Background()
	userUUID := uuid.New()
	winnerModel := int64(5)

	modelRepo := &modeldb.FakeRepository{
		GetModelByUserUUIDFn: func(ctx context.Context, u uuid.UUID) (*modeldb.Model, error) {
			return &modeldb.Model{ID: winnerModel, UserUUID: u}, nil
		},
	}

	wonContest := func(ctx context.Context, id int64) (*contestdb.Contest, error) {
		return &contestdb.Contest{
			ID:            id,
			Status:        contestdb.StatusCompleted,
			WinnerModelID: &winnerModel,
		}, nil
	}

	t.Run("winner files a claim", func(t *testing.T) {
		repo := &prizedb.FakeRepository{}
		contestRepo := &contestdb.FakeRepository{GetContestByIDFn: wonContest}

		svc := newTestService(repo, contestRepo, modelRepo)
		request, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "please wire it", "winner@example.com")
		require.NoError(t, err)
		assert.Equal(t, prizedb.RequestPending, request.Status)
		assert.Equal(t, winnerModel, request.ModelID)
	})

	t.Run("non-winner is rejected", func(t *testing.T) {
		otherModel := int64(9)
		contestRepo := &contestdb.FakeRepository{
			GetContestByIDFn: func(ctx context.Context, id int64) (*contestdb.Contest, error) {
				return &contestdb.Contest{ID: id, Status: contestdb.StatusCompleted, WinnerModelID: &otherModel}, nil
			},
		}

		svc := newTestService(&prizedb.FakeRepository{}, contestRepo, modelRepo)
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "", "me@example.com")
		assert.ErrorIs(t, err, ErrNotWinner)
	})

	t.Run("contest without recorded winner is rejected", func(t *testing.T) {
		contestRepo := &contestdb.FakeRepository{
			GetContestByIDFn: func(ctx context.Context, id int64) (*contestdb.Contest, error) {
				return &contestdb.Contest{ID: id, Status: contestdb.StatusCompleted}, nil
			},
		}

		svc := newTestService(&prizedb.FakeRepository{}, contestRepo, modelRepo)
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "", "me@example.com")
		assert.ErrorIs(t, err, ErrNotWinner)
	})

	t.Run("active contest is rejected", func(t *testing.T) {
		contestRepo := &contestdb.FakeRepository{
			GetContestByIDFn: func(ctx context.Context, id int64) (*contestdb.Contest, error) {
				return &contestdb.Contest{ID: id, Status: contestdb.StatusActive, WinnerModelID: &winnerModel}, nil
			},
		}

		svc := newTestService(&prizedb.FakeRepository{}, contestRepo, modelRepo)
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "", "me@example.com")
		assert.ErrorIs(t, err, ErrNotWinner)
	})

	t.Run("second claim is a duplicate", func(t *testing.T) {
		repo := &prizedb.FakeRepository{
			CreatePrizeRequestFn: func(ctx context.Context, request *prizedb.PrizeRequest) error {
				return prizedb.ErrDuplicateRequest
			},
		}
		contestRepo := &contestdb.FakeRepository{GetContestByIDFn: wonContest}

		svc := newTestService(repo, contestRepo, modelRepo)
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "", "me@example.com")
		assert.ErrorIs(t, err, prizedb.ErrDuplicateRequest)
	})

	t.Run("missing contact info", func(t *testing.T) {
		svc := newTestService(&prizedb.FakeRepository{}, &contestdb.FakeRepository{}, modelRepo)
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "hi", "   ")
		assert.ErrorIs(t, err, ErrMissingContactInfo)
	})

	t.Run("user without model profile", func(t *testing.T) {
		svc := newTestService(&prizedb.FakeRepository{}, &contestdb.FakeRepository{}, &modeldb.FakeRepository{})
		_, err := svc.SubmitPrizeRequest(ctx, userUUID, 1, "hi", "me@example.com")
		assert.ErrorIs(t, err, ErrNoModelProfile)
	})
}

func TestPrizeService_SubmitComplaint(t *testing.T) {
	ctx := context.Background()

	svc := newTestService(&prizedb.FakeRepository{}, &contestdb.FakeRepository{}, &modeldb.FakeRepository{})

	t.Run("anonymous complaint defaults to open and normal", func(t *testing.T) {
		complaint, err := svc.SubmitComplaint(ctx, nil, ComplaintInput{Subject: "  Voting abuse  ", Message: "bots"})
		require.NoError(t, err)
		assert.Nil(t, complaint.ReporterUUID)
		assert.Equal(t, "Voting abuse", complaint.Subject)
		assert.Equal(t, prizedb.ComplaintOpen, complaint.Status)
		assert.Equal(t, prizedb.PriorityNormal, complaint.Priority)
	})

	t.Run("missing subject", func(t *testing.T) {
		_, err := svc.SubmitComplaint(ctx, nil, ComplaintInput{Message: "no subject"})
		assert.ErrorIs(t, err, ErrMissingSubject)
	})
}

func TestPrizeService_StatusUpdates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&prizedb.FakeRepository{}, &contestdb.FakeRepository{}, &modeldb.FakeRepository{})

	t.Run("valid prize status", func(t *testing.T) {
		notes := "wired 2026-09-02"
		updated, err := svc.UpdatePrizeRequestStatus(ctx, 1, prizedb.RequestCompleted, &notes)
		require.NoError(t, err)
		assert.Equal(t, prizedb.RequestCompleted, updated.Status)
	})

	t.Run("unknown prize status", func(t *testing.T) {
		_, err := svc.UpdatePrizeRequestStatus(ctx, 1, prizedb.RequestStatus("archived"), nil)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown complaint filter", func(t *testing.T) {
		_, err := svc.ListComplaints(ctx, prizedb.ComplaintStatus("bogus"))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}
