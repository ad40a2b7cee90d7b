package paymentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating vote_packages and purchases tables...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS vote_packages (
				id BIGSERIAL PRIMARY KEY,
				tier TEXT NOT NULL UNIQUE,
				price_cents BIGINT NOT NULL,
				currency TEXT NOT NULL DEFAULT 'USD',
				base_votes BIGINT NOT NULL,
				bonus_votes BIGINT NOT NULL DEFAULT 0
			);

			INSERT INTO vote_packages (tier, price_cents, currency, base_votes, bonus_votes) VALUES
				('bronze',    499,  'USD',  10,  0),
				('silver',    999,  'USD',  25,  5),
				('gold',      1999, 'USD',  60,  15),
				('diamond',   4999, 'USD',  175, 50),
				('platinum',  9999, 'USD',  400, 150)
			ON CONFLICT (tier) DO NOTHING;

			CREATE TABLE IF NOT EXISTS purchases (
				id BIGSERIAL PRIMARY KEY,
				uuid UUID NOT NULL DEFAULT gen_random_uuid(),
				user_uuid UUID NOT NULL,
				package_id BIGINT NOT NULL REFERENCES vote_packages (id),
				provider_session_id TEXT NOT NULL UNIQUE,
				status TEXT NOT NULL DEFAULT 'pending',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				completed_at TIMESTAMPTZ
			);
			CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases (user_uuid);
		`)
		if err != nil {
			return fmt.Errorf("failed to create payment tables: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS purchases;
			DROP TABLE IF EXISTS vote_packages;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop payment tables: %w", err)
		}
		return nil
	})
}
