package paymentdb

import (
	"context"
	"errors"
)

var (
	ErrPackageNotFound  = errors.New("vote package not found")
	ErrPurchaseNotFound = errors.New("purchase not found")
)

// Repository defines payment data operations.
type Repository interface {
	ListPackages(ctx context.Context) ([]VotePackage, error)
	GetPackageByID(ctx context.Context, id int64) (*VotePackage, error)

	CreatePurchase(ctx context.Context, purchase *Purchase) error
	GetPurchaseBySessionID(ctx context.Context, sessionID string) (*Purchase, error)

	// CompletePurchase atomically flips a pending purchase to completed.
	// The bool reports whether this call did the completion; false means
	// the purchase was already completed (webhook replay).
	CompletePurchase(ctx context.Context, sessionID string) (*Purchase, bool, error)
}

var _ Repository = (*PaymentDBImpl)(nil)
