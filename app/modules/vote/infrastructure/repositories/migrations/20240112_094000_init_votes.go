package votemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating votes table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS votes (
				id BIGSERIAL PRIMARY KEY,
				entry_id BIGINT NOT NULL REFERENCES contest_entries (id) ON DELETE CASCADE,
				voter_key TEXT NOT NULL,
				vote_type TEXT NOT NULL DEFAULT 'free',
				weight INT NOT NULL DEFAULT 1,
				package_id BIGINT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_votes_entry ON votes (entry_id);
			CREATE INDEX IF NOT EXISTS idx_votes_voter_key ON votes (voter_key);
		`)
		if err != nil {
			return fmt.Errorf("failed to create votes table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS votes;`)
		if err != nil {
			return fmt.Errorf("failed to drop votes table: %w", err)
		}
		return nil
	})
}
