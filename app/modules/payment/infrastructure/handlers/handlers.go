package paymenthandlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	paymentservice "github.com/runway-club/votewalk/app/modules/payment/application"
	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
	userhandlers "github.com/runway-club/votewalk/app/modules/user/infrastructure/handlers"
	"github.com/runway-club/votewalk/internal/observability/attr"
)

// SignatureHeader carries the webhook HMAC signature.
const SignatureHeader = "Webhook-Signature"

// maxWebhookBody caps webhook payloads at 64 KiB.
const maxWebhookBody = 64 << 10

// PaymentHandlers serves the package catalog, checkout, and the provider
// webhook.
type PaymentHandlers struct {
	service paymentservice.Service
	logger  *slog.Logger
}

func NewPaymentHandlers(service paymentservice.Service, logger *slog.Logger) *PaymentHandlers {
	return &PaymentHandlers{
		service: service,
		logger:  logger,
	}
}

func (h *PaymentHandlers) HandleListPackages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	packages, err := h.service.ListPackages(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list packages", attr.Error(err))
		http.Error(w, "failed to list packages", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(packages)
}

type checkoutRequest struct {
	PackageID int64 `json:"package_id"`
}

func (h *PaymentHandlers) HandleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := userhandlers.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.CreateCheckout(ctx, identity.UserUUID, req.PackageID)
	if err != nil {
		if errors.Is(err, paymentdb.ErrPackageNotFound) {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "Checkout failed", attr.Error(err))
		http.Error(w, "checkout failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(session)
}

// HandleWebhook consumes provider deliveries. Bad signatures and malformed
// events get 400 so the provider can alert; replays get 200 so retries stop.
func (h *PaymentHandlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	err = h.service.ProcessWebhook(ctx, payload, r.Header.Get(SignatureHeader), time.Now())
	if err != nil {
		switch {
		case errors.Is(err, paymentservice.ErrInvalidSignature),
			errors.Is(err, paymentservice.ErrStaleSignature),
			errors.Is(err, paymentservice.ErrMalformedEvent),
			errors.Is(err, paymentservice.ErrUnknownSession):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "Webhook processing failed", attr.Error(err))
			http.Error(w, "webhook processing failed", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
