package paymentservice

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
	votedb "github.com/runway-club/votewalk/app/modules/vote/infrastructure/repositories"
	"github.com/runway-club/votewalk/config"
	"github.com/runway-club/votewalk/internal/observability"
)

type fakeCreditor struct {
	calls []creditedPackage
	err   error
}

type creditedPackage struct {
	purchaseUUID uuid.UUID
	buyerUUID    uuid.UUID
	packageID    int64
	votes        int64
	voteType     votedb.VoteType
}

func (f *fakeCreditor) CreditBonusVotes(ctx context.Context, purchaseUUID, buyerUUID uuid.UUID, packageID, votes int64, voteType votedb.VoteType) error {
	f.calls = append(f.calls, creditedPackage{purchaseUUID, buyerUUID, packageID, votes, voteType})
	return f.err
}

var testPaymentConfig = config.PaymentConfig{
	CheckoutBaseURL: "https://pay.example.com/checkout",
	SuccessURL:      "https://votewalk.example.com/thanks",
	CancelURL:       "https://votewalk.example.com/packages",
	WebhookSecret:   "whsec_test",
}

func newTestPaymentService(repo *paymentdb.FakeRepository, votes *fakeCreditor) *PaymentService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	return NewService(repo, votes, testPaymentConfig, logger, tracer, metrics)
}

func completedEvent(sessionID string) []byte {
	return []byte(fmt.Sprintf(`{"type":"checkout.session.completed","data":{"object":{"id":"%s"}}}`, sessionID))
}

func TestPaymentService_CreateCheckout(t *testing.T) {
	ctx := context.Background()
	userUUID := uuid.New()

	repo := &paymentdb.FakeRepository{
		GetPackageByIDFn: func(ctx context.Context, id int64) (*paymentdb.VotePackage, error) {
			return &paymentdb.VotePackage{ID: id, Tier: paymentdb.TierGold, PriceCents: 2999, BaseVotes: 100, BonusVotes: 20}, nil
		},
		CreatePurchaseFn: func(ctx context.Context, purchase *paymentdb.Purchase) error {
			purchase.ID = 1
			purchase.UUID = uuid.New()
			return nil
		},
	}

	svc := newTestPaymentService(repo, &fakeCreditor{})
	session, err := svc.CreateCheckout(ctx, userUUID, 3)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.SessionID, "cs_"))
	assert.Contains(t, session.CheckoutURL, testPaymentConfig.CheckoutBaseURL)
	assert.Contains(t, session.CheckoutURL, "session_id="+session.SessionID)
	assert.Contains(t, session.CheckoutURL, "packageId=3")
}

func TestPaymentService_CreateCheckout_UnknownPackage(t *testing.T) {
	svc := newTestPaymentService(&paymentdb.FakeRepository{}, &fakeCreditor{})
	_, err := svc.CreateCheckout(context.Background(), uuid.New(), 99)
	assert.ErrorIs(t, err, paymentdb.ErrPackageNotFound)
}

func TestPaymentService_ProcessWebhook(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	buyerUUID := uuid.New()
	purchaseUUID := uuid.New()

	newRepo := func() *paymentdb.FakeRepository {
		return &paymentdb.FakeRepository{
			CompletePurchaseFn: func(ctx context.Context, sessionID string) (*paymentdb.Purchase, bool, error) {
				return &paymentdb.Purchase{
					ID:                1,
					UUID:              purchaseUUID,
					UserUUID:          buyerUUID,
					PackageID:         3,
					ProviderSessionID: sessionID,
					Status:            paymentdb.PurchaseCompleted,
				}, true, nil
			},
			GetPackageByIDFn: func(ctx context.Context, id int64) (*paymentdb.VotePackage, error) {
				return &paymentdb.VotePackage{ID: id, Tier: paymentdb.TierGold, BaseVotes: 100, BonusVotes: 20}, nil
			},
		}
	}

	t.Run("completed session credits votes", func(t *testing.T) {
		creditor := &fakeCreditor{}
		svc := newTestPaymentService(newRepo(), creditor)

		payload := completedEvent("cs_abc123")
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, testPaymentConfig.WebhookSecret, now), now)
		require.NoError(t, err)

		require.Len(t, creditor.calls, 1)
		call := creditor.calls[0]
		assert.Equal(t, purchaseUUID, call.purchaseUUID)
		assert.Equal(t, buyerUUID, call.buyerUUID)
		assert.Equal(t, int64(120), call.votes)
		assert.Equal(t, votedb.TypeVIP, call.voteType)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		creditor := &fakeCreditor{}
		repo := newRepo()
		repo.CompletePurchaseFn = func(ctx context.Context, sessionID string) (*paymentdb.Purchase, bool, error) {
			return &paymentdb.Purchase{ID: 1, Status: paymentdb.PurchaseCompleted}, false, nil
		}
		svc := newTestPaymentService(repo, creditor)

		payload := completedEvent("cs_abc123")
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, testPaymentConfig.WebhookSecret, now), now)
		require.NoError(t, err)
		assert.Empty(t, creditor.calls)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		creditor := &fakeCreditor{}
		svc := newTestPaymentService(newRepo(), creditor)

		payload := completedEvent("cs_abc123")
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, "whsec_wrong", now), now)
		assert.ErrorIs(t, err, ErrInvalidSignature)
		assert.Empty(t, creditor.calls)
	})

	t.Run("unknown session is rejected", func(t *testing.T) {
		repo := newRepo()
		repo.CompletePurchaseFn = func(ctx context.Context, sessionID string) (*paymentdb.Purchase, bool, error) {
			return nil, false, paymentdb.ErrPurchaseNotFound
		}
		svc := newTestPaymentService(repo, &fakeCreditor{})

		payload := completedEvent("cs_nope")
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, testPaymentConfig.WebhookSecret, now), now)
		assert.ErrorIs(t, err, ErrUnknownSession)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		creditor := &fakeCreditor{}
		svc := newTestPaymentService(newRepo(), creditor)

		payload := []byte(`{"type":"checkout.session.expired","data":{"object":{"id":"cs_abc123"}}}`)
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, testPaymentConfig.WebhookSecret, now), now)
		require.NoError(t, err)
		assert.Empty(t, creditor.calls)
	})

	t.Run("missing session id is malformed", func(t *testing.T) {
		svc := newTestPaymentService(newRepo(), &fakeCreditor{})

		payload := []byte(`{"type":"checkout.session.completed","data":{"object":{}}}`)
		err := svc.ProcessWebhook(ctx, payload, SignPayload(payload, testPaymentConfig.WebhookSecret, now), now)
		assert.ErrorIs(t, err, ErrMalformedEvent)
	})
}

func TestVoteTypeForTier(t *testing.T) {
	assert.Equal(t, votedb.TypePower, voteTypeForTier(paymentdb.TierBronze))
	assert.Equal(t, votedb.TypePower, voteTypeForTier(paymentdb.TierSilver))
	assert.Equal(t, votedb.TypeVIP, voteTypeForTier(paymentdb.TierGold))
	assert.Equal(t, votedb.TypeVIP, voteTypeForTier(paymentdb.TierDiamond))
	assert.Equal(t, votedb.TypeVIP, voteTypeForTier(paymentdb.TierPlatinum))
}
