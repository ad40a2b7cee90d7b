package paymentservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
)

// CheckoutSession is the hosted-checkout redirect handed to the client.
type CheckoutSession struct {
	PurchaseUUID uuid.UUID `json:"purchase_uuid"`
	SessionID    string    `json:"session_id"`
	CheckoutURL  string    `json:"checkout_url"`
}

// WebhookEvent is the provider payload shape the webhook consumes.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				UserID    string `json:"userId"`
				PackageID string `json:"packageId"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// Service defines payment operations.
type Service interface {
	ListPackages(ctx context.Context) ([]paymentdb.VotePackage, error)
	CreateCheckout(ctx context.Context, userUUID uuid.UUID, packageID int64) (*CheckoutSession, error)

	// ProcessWebhook verifies the signature, completes the purchase
	// idempotently, and credits the package votes on first completion.
	ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string, now time.Time) error
}
