package paymentdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// PackageTier is a closed enumeration of purchasable vote bundles.
type PackageTier string

const (
	TierBronze   PackageTier = "bronze"
	TierSilver   PackageTier = "silver"
	TierGold     PackageTier = "gold"
	TierDiamond  PackageTier = "diamond"
	TierPlatinum PackageTier = "platinum"
)

func (t PackageTier) IsValid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold, TierDiamond, TierPlatinum:
		return true
	}
	return false
}

// PurchaseStatus tracks a checkout session's lifecycle.
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseCompleted PurchaseStatus = "completed"
)

func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchasePending, PurchaseCompleted:
		return true
	}
	return false
}

// VotePackage is a purchasable vote bundle. The catalog is seeded by
// migration and read-only at runtime.
type VotePackage struct {
	bun.BaseModel `bun:"table:vote_packages,alias:vp"`

	ID         int64       `bun:"id,pk,autoincrement" json:"id"`
	Tier       PackageTier `bun:"tier,notnull,unique" json:"tier"`
	PriceCents int64       `bun:"price_cents,notnull" json:"price_cents"`
	Currency   string      `bun:"currency,notnull,default:'USD'" json:"currency"`
	BaseVotes  int64       `bun:"base_votes,notnull" json:"base_votes"`
	BonusVotes int64       `bun:"bonus_votes,notnull,default:0" json:"bonus_votes"`
}

// TotalVotes is the number of ballots a completed purchase credits.
func (p *VotePackage) TotalVotes() int64 {
	return p.BaseVotes + p.BonusVotes
}

// Purchase is one checkout session. ProviderSessionID is unique, which makes
// webhook replays idempotent.
type Purchase struct {
	bun.BaseModel `bun:"table:purchases,alias:p"`

	ID                int64          `bun:"id,pk,autoincrement" json:"id"`
	UUID              uuid.UUID      `bun:"uuid,notnull,type:uuid,default:gen_random_uuid()" json:"uuid"`
	UserUUID          uuid.UUID      `bun:"user_uuid,notnull,type:uuid" json:"user_uuid"`
	PackageID         int64          `bun:"package_id,notnull" json:"package_id"`
	ProviderSessionID string         `bun:"provider_session_id,notnull,unique" json:"provider_session_id"`
	Status            PurchaseStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt         time.Time      `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	CompletedAt       *time.Time     `bun:"completed_at,nullzero" json:"completed_at,omitempty"`
}
