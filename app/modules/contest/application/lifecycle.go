package contestservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

var (
	ErrInvalidTitle   = errors.New("contest title is required")
	ErrInvalidDates   = errors.New("contest end date must be after start date")
	ErrUnparsableDate = errors.New("unrecognized date format")
)

// ContestService implements Service.
type ContestService struct {
	repo      contestdb.Repository
	entryRepo entrydb.Repository
	modelRepo modeldb.Repository
	tally     TallyReader
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *observability.Metrics
}

var _ Service = (*ContestService)(nil)

func NewService(
	repo contestdb.Repository,
	entryRepo entrydb.Repository,
	modelRepo modeldb.Repository,
	tally TallyReader,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics *observability.Metrics,
) *ContestService {
	return &ContestService{
		repo:      repo,
		entryRepo: entryRepo,
		modelRepo: modelRepo,
		tally:     tally,
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
	}
}

// CreateContest creates an upcoming contest.
func (s *ContestService) CreateContest(ctx context.Context, input ContestInput) (*contestdb.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CreateContest")
	defer span.End()

	contest, err := s.contestFromInput(&contestdb.Contest{}, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateContest(ctx, contest); err != nil {
		return nil, fmt.Errorf("failed to create contest: %w", err)
	}

	s.logger.InfoContext(ctx, "Contest created",
		attr.Int64("contest_id", contest.ID),
		attr.Time("ends_at", contest.EndsAt),
	)
	return contest, nil
}

// UpdateContest updates the editable fields of an existing contest.
func (s *ContestService) UpdateContest(ctx context.Context, id int64, input ContestInput) (*contestdb.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.UpdateContest")
	defer span.End()

	existing, err := s.repo.GetContestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contest, err := s.contestFromInput(existing, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateContest(ctx, contest); err != nil {
		return nil, fmt.Errorf("failed to update contest: %w", err)
	}
	return contest, nil
}

// DeleteContest removes a contest and (via cascade) its entries.
func (s *ContestService) DeleteContest(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ContestService.DeleteContest")
	defer span.End()

	return s.repo.DeleteContest(ctx, id)
}

// GetContest retrieves one contest.
func (s *ContestService) GetContest(ctx context.Context, id int64) (*contestdb.Contest, error) {
	return s.repo.GetContestByID(ctx, id)
}

// GetActiveContest returns the single active contest.
func (s *ContestService) GetActiveContest(ctx context.Context) (*contestdb.Contest, error) {
	return s.repo.GetActiveContest(ctx)
}

// ListContests returns contests, optionally filtered by status.
func (s *ContestService) ListContests(ctx context.Context, status contestdb.ContestStatus) ([]contestdb.Contest, error) {
	return s.repo.ListContests(ctx, status)
}

// Activate makes the target contest the single active one.
func (s *ContestService) Activate(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ContestService.Activate")
	defer span.End()

	if err := s.repo.Activate(ctx, id); err != nil {
		return err
	}

	s.metrics.ContestsActivated.Inc()
	s.logger.InfoContext(ctx, "Contest activated", attr.Int64("contest_id", id))
	return nil
}

// Complete force-completes a contest.
func (s *ContestService) Complete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "ContestService.Complete")
	defer span.End()

	if err := s.repo.Complete(ctx, id); err != nil {
		return err
	}

	s.metrics.ContestsCompleted.Inc()
	s.logger.InfoContext(ctx, "Contest completed", attr.Int64("contest_id", id))
	return nil
}

// CompleteExpired sweeps contests past their end date. Invoked by the
// scheduled job and by the admin endpoint.
func (s *ContestService) CompleteExpired(ctx context.Context) ([]contestdb.Contest, error) {
	ctx, span := s.tracer.Start(ctx, "ContestService.CompleteExpired")
	defer span.End()

	completed, err := s.repo.CompleteExpired(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.SweepRuns.Inc()
	if len(completed) > 0 {
		s.metrics.ContestsCompleted.Add(float64(len(completed)))
		for _, c := range completed {
			s.logger.InfoContext(ctx, "Contest expired and completed",
				attr.Int64("contest_id", c.ID),
				attr.Time("ended_at", c.EndsAt),
			)
		}
	}
	return completed, nil
}

func (s *ContestService) contestFromInput(contest *contestdb.Contest, input ContestInput) (*contestdb.Contest, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	contest.Title = title
	contest.Description = input.Description
	contest.BannerURL = input.BannerURL
	if input.PrizeAmount > 0 {
		contest.PrizeAmount = input.PrizeAmount
	}
	if input.PrizeCurrency != "" {
		contest.PrizeCurrency = strings.ToUpper(input.PrizeCurrency)
	} else if contest.PrizeCurrency == "" {
		contest.PrizeCurrency = "USD"
	}

	now := time.Now()
	if input.StartsAt != "" {
		startsAt, err := ParseFlexibleTime(input.StartsAt, now)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", input.StartsAt, ErrUnparsableDate)
		}
		contest.StartsAt = startsAt
	} else if contest.StartsAt.IsZero() {
		contest.StartsAt = now
	}
	if input.EndsAt != "" {
		endsAt, err := ParseFlexibleTime(input.EndsAt, now)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", input.EndsAt, ErrUnparsableDate)
		}
		contest.EndsAt = endsAt
	}
	if !contest.EndsAt.After(contest.StartsAt) {
		return nil, ErrInvalidDates
	}

	return contest, nil
}
