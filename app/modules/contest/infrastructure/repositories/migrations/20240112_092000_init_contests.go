package contestmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating contests table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS contests (
				id BIGSERIAL PRIMARY KEY,
				title TEXT NOT NULL,
				description TEXT,
				starts_at TIMESTAMPTZ NOT NULL,
				ends_at TIMESTAMPTZ NOT NULL,
				prize_amount BIGINT NOT NULL DEFAULT 0,
				prize_currency TEXT NOT NULL DEFAULT 'USD',
				banner_url TEXT,
				status TEXT NOT NULL DEFAULT 'upcoming',
				winner_model_id BIGINT,
				winner_entry_id BIGINT,
				winning_votes BIGINT NOT NULL DEFAULT 0,
				announced BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_contests_status ON contests (status);
			CREATE INDEX IF NOT EXISTS idx_contests_ends_at ON contests (ends_at) WHERE status != 'completed';
		`)
		if err != nil {
			return fmt.Errorf("failed to create contests table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS contests;`)
		if err != nil {
			return fmt.Errorf("failed to drop contests table: %w", err)
		}
		return nil
	})
}
