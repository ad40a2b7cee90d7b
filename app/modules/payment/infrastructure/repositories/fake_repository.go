package paymentdb

import "context"

// FakeRepository is a fake implementation of Repository for testing.
type FakeRepository struct {
	ListPackagesFn   func(ctx context.Context) ([]VotePackage, error)
	GetPackageByIDFn func(ctx context.Context, id int64) (*VotePackage, error)

	CreatePurchaseFn         func(ctx context.Context, purchase *Purchase) error
	GetPurchaseBySessionIDFn func(ctx context.Context, sessionID string) (*Purchase, error)
	CompletePurchaseFn       func(ctx context.Context, sessionID string) (*Purchase, bool, error)
}

func (f *FakeRepository) ListPackages(ctx context.Context) ([]VotePackage, error) {
	if f.ListPackagesFn != nil {
		return f.ListPackagesFn(ctx)
	}
	return nil, nil
}

func (f *FakeRepository) GetPackageByID(ctx context.Context, id int64) (*VotePackage, error) {
	if f.GetPackageByIDFn != nil {
		return f.GetPackageByIDFn(ctx, id)
	}
	return nil, ErrPackageNotFound
}

func (f *FakeRepository) CreatePurchase(ctx context.Context, purchase *Purchase) error {
	if f.CreatePurchaseFn != nil {
		return f.CreatePurchaseFn(ctx, purchase)
	}
	purchase.ID = 1
	return nil
}

func (f *FakeRepository) GetPurchaseBySessionID(ctx context.Context, sessionID string) (*Purchase, error) {
	if f.GetPurchaseBySessionIDFn != nil {
		return f.GetPurchaseBySessionIDFn(ctx, sessionID)
	}
	return nil, ErrPurchaseNotFound
}

func (f *FakeRepository) CompletePurchase(ctx context.Context, sessionID string) (*Purchase, bool, error) {
	if f.CompletePurchaseFn != nil {
		return f.CompletePurchaseFn(ctx, sessionID)
	}
	return nil, false, ErrPurchaseNotFound
}

var _ Repository = (*FakeRepository)(nil)
