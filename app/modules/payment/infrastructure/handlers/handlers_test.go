package paymenthandlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentservice "github.com/runway-club/votewalk/app/modules/payment/application"
	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
)

func newTestHandlers(service *FakePaymentService) *PaymentHandlers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPaymentHandlers(service, logger)
}

func TestHandleWebhook(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_abc"}}}`)

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"processed", nil, http.StatusOK},
		{"bad signature", paymentservice.ErrInvalidSignature, http.StatusBadRequest},
		{"stale timestamp", paymentservice.ErrStaleSignature, http.StatusBadRequest},
		{"malformed event", paymentservice.ErrMalformedEvent, http.StatusBadRequest},
		{"unknown session", paymentservice.ErrUnknownSession, http.StatusBadRequest},
		{"internal failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader string
			service := &FakePaymentService{
				ProcessWebhookFn: func(ctx context.Context, payload []byte, signatureHeader string, now time.Time) error {
					gotHeader = signatureHeader
					return tt.serviceErr
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
			req.Header.Set(SignatureHeader, "t=1,v1=deadbeef")
			rec := httptest.NewRecorder()

			newTestHandlers(service).HandleWebhook(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "t=1,v1=deadbeef", gotHeader)
		})
	}
}

func TestHandleListPackages(t *testing.T) {
	service := &FakePaymentService{
		ListPackagesFn: func(ctx context.Context) ([]paymentdb.VotePackage, error) {
			return []paymentdb.VotePackage{
				{ID: 1, Tier: paymentdb.TierBronze, PriceCents: 499, BaseVotes: 10},
				{ID: 2, Tier: paymentdb.TierSilver, PriceCents: 999, BaseVotes: 30, BonusVotes: 5},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/packages", nil)
	rec := httptest.NewRecorder()

	newTestHandlers(service).HandleListPackages(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"bronze"`)
	assert.Contains(t, rec.Body.String(), `"silver"`)
}

func TestHandleCreateCheckout_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader([]byte(`{"package_id":1}`)))
	rec := httptest.NewRecorder()

	newTestHandlers(&FakePaymentService{}).HandleCreateCheckout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
