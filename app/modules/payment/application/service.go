package paymentservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/config"
	"github.com/runway-club/votewalk/internal/observability"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

const eventCheckoutCompleted = "checkout.session.completed"

var (
	ErrMalformedEvent = errors.New("malformed webhook event")
	ErrUnknownSession = errors.New("unknown checkout session")
)

// VoteCreditor is the slice of the vote module the webhook needs.
type VoteCreditor interface {
	CreditBonusVotes(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error
}

// PaymentService implements Service.
type PaymentService struct {
	repo    paymentdb.Repository
	votes   VoteCreditor
	cfg     config.PaymentConfig
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *observability.Metrics
}

var _ Service = (*PaymentService)(nil)

func NewService(
	repo paymentdb.Repository,
	votes VoteCreditor,
	cfg config.PaymentConfig,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics *observability.Metrics,
) *PaymentService {
	return &PaymentService{
		repo:    repo,
		votes:   votes,
		cfg:     cfg,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}
}

// ListPackages returns the purchasable catalog.
func (s *PaymentService) ListPackages(ctx context.Context) ([]paymentdb.VotePackage, error) {
	return s.repo.ListPackages(ctx)
}

// CreateCheckout opens a pending purchase and builds the hosted-checkout
// redirect URL.
func (s *PaymentService) CreateCheckout(ctx context.Context, userUUID uuid.UUID, packageID int64) (*CheckoutSession, error) {
	ctx, span := s.tracer.Start(ctx, "PaymentService.CreateCheckout")
	defer span.End()

	pkg, err := s.repo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	sessionID := "cs_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	purchase := &paymentdb.Purchase{
		UserUUID:          userUUID,
		PackageID:         pkg.ID,
		ProviderSessionID: sessionID,
		Status:            paymentdb.PurchasePending,
	}
	if err := s.repo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("session_id", sessionID)
	params.Set("success_url", s.cfg.SuccessURL)
	params.Set("cancel_url", s.cfg.CancelURL)
	params.Set("userId", userUUID.String())
	params.Set("packageId", strconv.FormatInt(pkg.ID, 10))

	s.metrics.CheckoutsCreated.Inc()
	s.logger.InfoContext(ctx, "Checkout created",
		attr.String("session_id", sessionID),
		attr.String("tier", string(pkg.Tier)),
	)
	return &CheckoutSession{
		PurchaseUUID: purchase.UUID,
		SessionID:    sessionID,
		CheckoutURL:  s.cfg.CheckoutBaseURL + "?" + params.Encode(),
	}, nil
}

// ProcessWebhook handles a provider delivery. Signature failures reject the
// delivery outright; replays of an already-completed session are a no-op. The
// provider's own retries cover transient credit failures, so there is no
// internal retry queue.
func (s *PaymentService) ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string, now time.Time) error {
	ctx, span := s.tracer.Start(ctx, "PaymentService.ProcessWebhook")
	defer span.End()

	if err := VerifySignature(payload, signatureHeader, s.cfg.WebhookSecret, now); err != nil {
		reason := "bad_signature"
		if errors.Is(err, ErrStaleSignature) {
			reason = "stale_timestamp"
		}
		s.metrics.WebhooksRejected.WithLabelValues(reason).Inc()
		s.logger.WarnContext(ctx, "Webhook rejected", attr.String("reason", reason))
		return err
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.metrics.WebhooksRejected.WithLabelValues("malformed").Inc()
		return fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if event.Type != eventCheckoutCompleted {
		s.logger.DebugContext(ctx, "Ignoring webhook event", attr.String("type", event.Type))
		return nil
	}

	sessionID := event.Data.Object.ID
	if sessionID == "" {
		s.metrics.WebhooksRejected.WithLabelValues("missing_session").Inc()
		return ErrMalformedEvent
	}

	purchase, completedNow, err := s.repo.CompletePurchase(ctx, sessionID)
	if err != nil {
		if errors.Is(err, paymentdb.ErrPurchaseNotFound) {
			s.metrics.WebhooksRejected.WithLabelValues("unknown_session").Inc()
			return ErrUnknownSession
		}
		return err
	}
	if !completedNow {
		s.logger.InfoContext(ctx, "Webhook replay ignored", attr.String("session_id", sessionID))
		s.metrics.WebhooksProcessed.Inc()
		return nil
	}

	pkg, err := s.repo.GetPackageByID(ctx, purchase.PackageID)
	if err != nil {
		return err
	}

	err = s.votes.CreditBonusVotes(ctx, purchase.UUID, purchase.UserUUID, pkg.ID, pkg.TotalVotes(), voteTypeForTier(pkg.Tier))
	if err != nil {
		return fmt.Errorf("failed to credit purchase: %w", err)
	}

	s.metrics.WebhooksProcessed.Inc()
	s.logger.InfoContext(ctx, "Purchase completed",
		attr.String("session_id", sessionID),
		attr.String("tier", string(pkg.Tier)),
		attr.Int64("votes", pkg.TotalVotes()),
	)
	return nil
}

// voteTypeForTier maps catalog tiers to ballot kinds.
func voteTypeForTier(tier paymentdb.PackageTier) votedb.VoteType {
	switch tier {
	case paymentdb.TierGold, paymentdb.TierDiamond, paymentdb.TierPlatinum:
		return votedb.TypeVIP
	default:
		return votedb.TypePower
	}
}
