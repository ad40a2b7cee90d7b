package prizeservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	contestdb "github.com/runway-club/votewalk/app/modules/contest/infrastructure/repositories"
	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	prizedb "github.com/runway-club/votewalk/app/modules/prize/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

var (
	ErrNotWinner          = errors.New("only the recorded contest winner may claim the prize")
	ErrNoModelProfile     = errors.New("user has no model profile")
	ErrMissingContactInfo = errors.New("contact info is required")
	ErrMissingSubject     = errors.New("complaint subject is required")
	ErrInvalidStatus      = errors.New("unknown status")
)

// ComplaintInput carries a new report.
type ComplaintInput struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Service defines prize-claim and complaint operations.
type Service interface {
	SubmitPrizeRequest(ctx context.Context, userUUID uuid.UUID, contestID int64, message, contactInfo string) (*prizedb.PrizeRequest, error)
	ListPrizeRequests(ctx context.Context, status prizedb.RequestStatus) ([]prizedb.PrizeRequest, error)
	UpdatePrizeRequestStatus(ctx context.Context, id int64, status prizedb.RequestStatus, adminNotes *string) (*prizedb.PrizeRequest, error)

	SubmitComplaint(ctx context.Context, reporter *uuid.UUID, input ComplaintInput) (*prizedb.Complaint, error)
	ListComplaints(ctx context.Context, status prizedb.ComplaintStatus) ([]prizedb.Complaint, error)
	UpdateComplaint(ctx context.Context, id int64, status prizedb.ComplaintStatus, priority prizedb.ComplaintPriority, adminNotes *string) (*prizedb.Complaint, error)
}

// PrizeService implements Service.
type PrizeService struct {
	repo        prizedb.Repository
	contestRepo contestdb.Repository
	modelRepo   modeldb.Repository
	logger      *slog.Logger
	tracer      trace.Tracer
}

var _ Service = (*PrizeService)(nil)

func NewService(
	repo prizedb.Repository,
	contestRepo contestdb.Repository,
	modelRepo modeldb.Repository,
	logger *slog.Logger,
	tracer trace.Tracer,
) *PrizeService {
	return &PrizeService{
		repo:        repo,
		contestRepo: contestRepo,
		modelRepo:   modelRepo,
		logger:      logger,
		tracer:      tracer,
	}
}

// SubmitPrizeRequest files a claim. Only the recorded winner of a completed
// contest may claim, once per contest.
func (s *PrizeService) SubmitPrizeRequest(ctx context.Context, userUUID uuid.UUID, contestID int64, message, contactInfo string) (*prizedb.PrizeRequest, error) {
	ctx, span := s.tracer.Start(ctx, "PrizeService.SubmitPrizeRequest")
	defer span.End()

	if strings.TrimSpace(contactInfo) == "" {
		return nil, ErrMissingContactInfo
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
	if contest.Status != contestdb.StatusCompleted ||
		contest.WinnerModelID == nil || *contest.WinnerModelID != model.ID {
		return nil, ErrNotWinner
	}

	request := &prizedb.PrizeRequest{
		ContestID:   contestID,
		ModelID:     model.ID,
		UserUUID:    userUUID,
		Message:     message,
		ContactInfo: contactInfo,
		Status:      prizedb.RequestPending,
	}
	if err := s.repo.CreatePrizeRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Prize request filed",
		attr.Int64("contest_id", contestID),
		attr.Int64("model_id", model.ID),
	)
	return request, nil
}

func (s *PrizeService) ListPrizeRequests(ctx context.Context, status prizedb.RequestStatus) ([]prizedb.PrizeRequest, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListPrizeRequests(ctx, status)
}

func (s *PrizeService) UpdatePrizeRequestStatus(ctx context.Context, id int64, status prizedb.RequestStatus, adminNotes *string) (*prizedb.PrizeRequest, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdatePrizeRequestStatus(ctx, id, status, adminNotes)
}

// SubmitComplaint files a report, anonymously when reporter is nil.
func (s *PrizeService) SubmitComplaint(ctx context.Context, reporter *uuid.UUID, input ComplaintInput) (*prizedb.Complaint, error) {
	if strings.TrimSpace(input.Subject) == "" {
		return nil, ErrMissingSubject
	}

	complaint := &prizedb.Complaint{
		ReporterUUID: reporter,
		Subject:      strings.TrimSpace(input.Subject),
		Message:      input.Message,
		Status:       prizedb.ComplaintOpen,
		Priority:     prizedb.PriorityNormal,
	}
	if err := s.repo.CreateComplaint(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *PrizeService) ListComplaints(ctx context.Context, status prizedb.ComplaintStatus) ([]prizedb.Complaint, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListComplaints(ctx, status)
}

func (s *PrizeService) UpdateComplaint(ctx context.Context, id int64, status prizedb.ComplaintStatus, priority prizedb.ComplaintPriority, adminNotes *string) (*prizedb.Complaint, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if priority != "" && !priority.IsValid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.UpdateComplaint(ctx, id, status, priority, adminNotes)
}
