package modelservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	modeldb "github.com/runway-club/votewalk/app/modules/model/infrastructure/repositories"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

var ErrInvalidDisplayName = errors.New("display name is required")

// Service defines model-profile operations.
type Service interface {
	CreateProfile(ctx context.Context, userUUID uuid.UUID, input ProfileInput) (*modeldb.Model, error)
	UpdateProfile(ctx context.Context, userUUID uuid.UUID, input ProfileInput) (*modeldb.Model, error)
	GetModel(ctx context.Context, id int64) (*modeldb.Model, error)
	GetOwnProfile(ctx context.Context, userUUID uuid.UUID) (*modeldb.Model, error)
	ListModels(ctx context.Context, limit, offset int) ([]modeldb.Model, error)
}

// ProfileInput carries the mutable profile fields.
type ProfileInput struct {
	DisplayName string  `json:"display_name"`
	StageName   *string `json:"stage_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
	Active      *bool   `json:"active"`
}

// ModelService implements Service.
type ModelService struct {
	repo   modeldb.Repository
	logger *slog.Logger
	tracer trace.Tracer
}

var _ Service = (*ModelService)(nil)

func NewService(repo modeldb.Repository, logger *slog.Logger, tracer trace.Tracer) *ModelService {
	return &ModelService{repo: repo, logger: logger, tracer: tracer}
}

// CreateProfile registers the calling user as a model.
func (s *ModelService) CreateProfile(ctx context.Context, userUUID uuid.UUID, input ProfileInput) (*modeldb.Model, error) {
	ctx, span := s.tracer.Start(ctx, "ModelService.CreateProfile")
	defer span.End()

	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, ErrInvalidDisplayName
	}

	model := &modeldb.Model{
		UUID:        uuid.New(),
		UserUUID:    userUUID,
		DisplayName: name,
		StageName:   input.StageName,
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
		Active:      true,
	}
	if err := s.repo.CreateModel(ctx, model); err != nil {
		if errors.Is(err, modeldb.ErrProfileExists) {
			return nil, modeldb.ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create model profile: %w", err)
	}

	s.logger.InfoContext(ctx, "Model profile created",
		attr.Int64("model_id", model.ID),
		attr.String("user_uuid", userUUID.String()),
	)
	return model, nil
}

// UpdateProfile updates the caller's own profile.
func (s *ModelService) UpdateProfile(ctx context.Context, userUUID uuid.UUID, input ProfileInput) (*modeldb.Model, error) {
	ctx, span := s.tracer.Start(ctx, "ModelService.UpdateProfile")
	defer span.End()

	model, err := s.repo.GetModelByUserUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.DisplayName); name != "" {
		model.DisplayName = name
	}
	if input.StageName != nil {
		model.StageName = input.StageName
	}
	if input.Bio != nil {
		model.Bio = input.Bio
	}
	if input.AvatarURL != nil {
		model.AvatarURL = input.AvatarURL
	}
	if input.Active != nil {
		model.Active = *input.Active
	}

	if err := s.repo.UpdateProfile(ctx, model); err != nil {
		return nil, fmt.Errorf("failed to update model profile: %w", err)
	}
	return model, nil
}

// GetModel retrieves a model by id.
func (s *ModelService) GetModel(ctx context.Context, id int64) (*modeldb.Model, error) {
	return s.repo.GetModelByID(ctx, id)
}

// GetOwnProfile retrieves the caller's model profile.
func (s *ModelService) GetOwnProfile(ctx context.Context, userUUID uuid.UUID) (*modeldb.Model, error) {
	return s.repo.GetModelByUserUUID(ctx, userUUID)
}

// ListModels returns active models, paginated.
func (s *ModelService) ListModels(ctx context.Context, limit, offset int) ([]modeldb.Model, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActive(ctx, limit, offset)
}
