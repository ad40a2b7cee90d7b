package paymenthandlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	paymentservice "github.com/runway-club/votewalk/app/modules/payment/application"
	paymentdb "github.com/runway-club/votewalk/app/modules/payment/infrastructure/repositories"
)

type FakePaymentService struct {
	ListPackagesFn   func(ctx context.Context) ([]paymentdb.VotePackage, error)
	CreateCheckoutFn func(ctx context.Context, userUUID uuid.UUID, packageID int64) (*paymentservice.CheckoutSession, error)
	ProcessWebhookFn func(ctx context.Context, payload []byte, signatureHeader string, now time.Time) error
}

func (f *FakePaymentService) ListPackages(ctx context.Context) ([]paymentdb.VotePackage, error) {
	if f.ListPackagesFn != nil {
		return f.ListPackagesFn(ctx)
	}
	return nil, nil
}

func (f *FakePaymentService) CreateCheckout(ctx context.Context, userUUID uuid.UUID, packageID int64) (*paymentservice.CheckoutSession, error) {
	if f.CreateCheckoutFn != nil {
		return f.CreateCheckoutFn(ctx, userUUID, packageID)
	}
	return &paymentservice.CheckoutSession{SessionID: "cs_fake"}, nil
}

func (f *FakePaymentService) ProcessWebhook(ctx context.Context, payload []byte, signatureHeader string, now time.Time) error {
	if f.ProcessWebhookFn != nil {
		return f.ProcessWebhookFn(ctx, payload, signatureHeader, now)
	}
	return nil
}

var _ paymentservice.Service = (*FakePaymentService)(nil)
