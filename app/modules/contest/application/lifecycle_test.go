package contestservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
)

func TestContestService_CreateContest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		input  ContestInput
		verify func(t *testing.T, contest *contestdb.Contest, err error)
	}{
		{
			name: "success with RFC3339 dates",
			input: ContestInput{
				Title:         "Summer Shoot",
				StartsAt:      "2026-09-01T00:00:00Z",
				EndsAt:        "2026-09-15T00:00:00Z",
				PrizeAmount:   50000,
				PrizeCurrency: "eur",
			},
			verify: func(t *testing.T, contest *contestdb.Contest, err error) {
				require.NoError(t, err)
				assert.Equal(t, "Summer Shoot", contest.Title)
				assert.Equal(t, "EUR", contest.PrizeCurrency)
				assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), contest.EndsAt)
			},
		},
		{
			name: "natural language end date",
			input: ContestInput{
				Title:  "Quick Poll",
				EndsAt: "next friday",
			},
			verify: func(t *testing.T, contest *contestdb.Contest, err error) {
				require.NoError(t, err)
				assert.True(t, contest.EndsAt.After(contest.StartsAt))
			},
		},
		{
			name:  "blank title",
			input: ContestInput{Title: "   ", EndsAt: "2026-09-15T00:00:00Z"},
			verify: func(t *testing.T, contest *contestdb.Contest, err error) {
				assert.ErrorIs(t, err, ErrInvalidTitle)
			},
		},
		{
			name: "end before start",
			input: ContestInput{
				Title:    "Backwards",
				StartsAt: "2026-09-15T00:00:00Z",
				EndsAt:   "2026-09-01T00:00:00Z",
			},
			verify: func(t *testing.T, contest *contestdb.Contest, err error) {
				assert.ErrorIs(t, err, ErrInvalidDates)
			},
		},
		{
			name: "unparsable date",
			input: ContestInput{
				Title:  "Garbage Date",
				EndsAt: "the cows come home",
			},
			verify: func(t *testing.T, contest *contestdb.Contest, err error) {
				assert.ErrorIs(t, err, ErrUnparsableDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&contestdb.FakeRepository{}, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})
			contest, err := svc.CreateContest(ctx, tt.input)
			tt.verify(t, contest, err)
		})
	}
}

func TestContestService_UpdateContest(t *testing.T) {
	ctx := context.Background()

	repo := &contestdb.FakeRepository{
		GetContestByIDFn: func(ctx context.Context, id int64) (*contestdb.Contest, error) {
			return &contestdb.Contest{
				ID:            id,
				Title:         "Old Title",
				StartsAt:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				EndsAt:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				PrizeCurrency: "USD",
				Status:        contestdb.StatusUpcoming,
			}, nil
		},
	}

	svc := newTestService(repo, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})

	updated, err := svc.UpdateContest(ctx, 1, ContestInput{Title: "New Title"})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	// Dates not present in the input stay as stored.
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), updated.EndsAt)
}

func TestContestService_CompleteExpired(t *testing.T) {
	ctx := context.Background()

	repo := &contestdb.FakeRepository{
		CompleteExpiredFn: func(ctx context.Context) ([]contestdb.Contest, error) {
			return []contestdb.Contest{
				{ID: 1, Status: contestdb.StatusCompleted},
				{ID: 2, Status: contestdb.StatusCompleted},
			}, nil
		},
	}

	svc := newTestService(repo, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})

	completed, err := svc.CompleteExpired(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestContestService_Activate(t *testing.T) {
	ctx := context.Background()

	var activated int64
	repo := &contestdb.FakeRepository{
		ActivateFn: func(ctx context.Context, id int64) error {
			activated = id
			return nil
		},
	}

	svc := newTestService(repo, &entrydb.FakeRepository{}, &modeldb.FakeRepository{})

	require.NoError(t, svc.Activate(ctx, 4))
	assert.Equal(t, int64(4), activated)
}

func TestParseFlexibleTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("RFC3339 passes through", func(t *testing.T) {
		got, err := ParseFlexibleTime("2026-09-01T20:00:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC), got)
	})

	t.Run("natural phrase resolves relative to now", func(t *testing.T) {
		got, err := ParseFlexibleTime("tomorrow at 8pm", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), got.Truncate(24*time.Hour))
		assert.Equal(t, 20, got.Hour())
	})

	t.Run("nonsense is rejected", func(t *testing.T) {
		_, err := ParseFlexibleTime("not a date at all xyz", now)
		assert.Error(t, err)
	})
}
