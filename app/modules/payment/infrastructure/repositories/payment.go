package paymentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// PaymentDBImpl is a repository for packages and purchases.
type PaymentDBImpl struct {
	DB *bun.DB
}

// ListPackages returns the package catalog, cheapest first.
func (db *PaymentDBImpl) ListPackages(ctx context.Context) ([]VotePackage, error) {
	var packages []VotePackage
	err := db.DB.NewSelect().
		Model(&packages).
		OrderExpr("price_cents ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return packages, nil
}

// GetPackageByID retrieves one package.
func (db *PaymentDBImpl) GetPackageByID(ctx context.Context, id int64) (*VotePackage, error) {
	pkg := &VotePackage{}
	err := db.DB.NewSelect().Model(pkg).Where("vp.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// CreatePurchase inserts a pending purchase.
func (db *PaymentDBImpl) CreatePurchase(ctx context.Context, purchase *Purchase) error {
	_, err := db.DB.NewInsert().Model(purchase).Returning("*").Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// GetPurchaseBySessionID retrieves a purchase by its provider session id.
func (db *PaymentDBImpl) GetPurchaseBySessionID(ctx context.Context, sessionID string) (*Purchase, error) {
	purchase := &Purchase{}
	err := db.DB.NewSelect().Model(purchase).Where("provider_session_id = ?", sessionID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return purchase, nil
}

// CompletePurchase flips a pending purchase to completed in one statement. A
// replayed webhook finds no pending row and gets the already-completed
// purchase back with false.
func (db *PaymentDBImpl) CompletePurchase(ctx context.Context, sessionID string) (*Purchase, bool, error) {
	purchase := &Purchase{}
	err := db.DB.NewUpdate().
		Model(purchase).
		Set("status = ?", PurchaseCompleted).
		Set("completed_at = now()").
		Where("provider_session_id = ? AND status = ?", sessionID, PurchasePending).
		Returning("*").
		Scan(ctx)
	if err == nil {
		return purchase, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to complete purchase: %w", err)
	}

	existing, err := db.GetPurchaseBySessionID(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}
