package entryservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	entrydb "github.com/runway-club/votewalk/app/modules/entry/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

var (
	ErrNoModelProfile   = errors.New("user has no model profile")
	ErrContestNotActive = errors.New("contest is not accepting entries")
	ErrInvalidTitle     = errors.New("entry title is required")
	ErrMissingPhoto     = errors.New("entry photo is required")
)

// EntryService implements Service.
type EntryService struct {
	repo        entrydb.Repository
	contestRepo contestdb.Repository
	modelRepo   modeldb.Repository
	logger      *slog.Logger
	tracer      trace.Tracer
}

var _ Service = (*EntryService)(nil)

func NewService(
	repo entrydb.Repository,
	contestRepo contestdb.Repository,
	modelRepo modeldb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
) *EntryService {
	return &EntryService{
		repo:        repo,
		contestRepo: contestRepo,
		modelRepo:   modelRepo,
		logger:      logger,
		tracer:      tracer,
	}
}

// Submit creates a pending entry for the caller's model profile. Only active
// contests accept entries, and a model gets one entry per contest.
func (s *EntryService) Submit(ctx context.Context, userUUID uuid.UUID, contestID int64, input SubmitInput) (*entrydb.ContestEntry, error) {
	ctx, span := s.tracer.Start(ctx, "EntryService.Submit")
	defer span.End()

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if input.PhotoURL == "" {
		return nil, ErrMissingPhoto
	}

	model, err := s.modelRepo.GetModelByUserUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, modeldb.ErrNotFound) {
			return nil, ErrNoModelProfile
		}
		return nil, err
	}

	contest, err := s.contestRepo.GetContestByID(ctx, contestID)
	if err != nil {
		return nil, err
	}
	if contest.Status != contestdb.StatusActive {
		return nil, ErrContestNotActive
	}

	entry := &entrydb.ContestEntry{
		ContestID:   contestID,
		ModelID:     model.ID,
		Title:       title,
		Description: input.Description,
		PhotoURL:    input.PhotoURL,
		Status:      entrydb.StatusPending,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.modelRepo.IncrementContestsJoined(ctx, model.ID); err != nil {
		s.logger.WarnContext(ctx, "Failed to bump contests_joined counter",
			attr.Int64("model_id", model.ID), attr.Error(err))
	}

	s.logger.InfoContext(ctx, "Entry submitted",
		attr.Int64("contest_id", contestID),
		attr.Int64("model_id", model.ID),
		attr.Int64("entry_id", entry.ID),
	)
	return entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error) {
	return s.repo.GetEntryByID(ctx, entryID)
}

// ListEntries returns a contest's entries. Public callers get approved entries
// only; admins may include pending and rejected ones.
func (s *EntryService) ListEntries(ctx context.Context, contestID int64, includePending bool) ([]entrydb.ContestEntry, error) {
	if _, err := s.contestRepo.GetContestByID(ctx, contestID); err != nil {
		return nil, err
	}
	return s.repo.ListByContest(ctx, contestID, !includePending)
}

// Approve makes an entry visible to voters.
func (s *EntryService) Approve(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error) {
	return s.review(ctx, entryID, entrydb.StatusApproved)
}

// Reject hides an entry from voters.
func (s *EntryService) Reject(ctx context.Context, entryID int64) (*entrydb.ContestEntry, error) {
	return s.review(ctx, entryID, entrydb.StatusRejected)
}

func (s *EntryService) review(ctx context.Context, entryID int64, status entrydb.EntryStatus) (*entrydb.ContestEntry, error) {
	ctx, span := s.tracer.Start(ctx, "EntryService.review")
	defer span.End()

	entry, err := s.repo.SetStatus(ctx, entryID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to set entry status: %w", err)
	}

	s.logger.InfoContext(ctx, "Entry reviewed",
		attr.Int64("entry_id", entryID),
		attr.String("status", string(status)),
	)
	return entry, nil
}
