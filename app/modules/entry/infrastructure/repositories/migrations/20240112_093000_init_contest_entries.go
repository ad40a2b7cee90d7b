package entrymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating contest_entries table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS contest_entries (
				id BIGSERIAL PRIMARY KEY,
				contest_id BIGINT NOT NULL REFERENCES contests(id) ON DELETE CASCADE,
				model_id BIGINT NOT NULL REFERENCES models(id),
				title TEXT NOT NULL,
				description TEXT,
				photo_url TEXT NOT NULL,
				votes BIGINT NOT NULL DEFAULT 0,
				ranking INT,
				status TEXT NOT NULL DEFAULT 'pending',
				submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				reviewed_at TIMESTAMPTZ,
				UNIQUE(contest_id, model_id)
			);
			CREATE INDEX IF NOT EXISTS idx_entries_contest_status ON contest_entries (contest_id, status);
		`)
		if err != nil {
			return fmt.Errorf("failed to create contest_entries table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS contest_entries;`)
		if err != nil {
			return fmt.Errorf("failed to drop contest_entries table: %w", err)
		}
		return nil
	})
}
