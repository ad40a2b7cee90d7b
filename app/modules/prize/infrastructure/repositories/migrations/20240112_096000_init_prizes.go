package prizemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating prize_requests and complaints tables...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS prize_requests (
				id BIGSERIAL PRIMARY KEY,
				contest_id BIGINT NOT NULL REFERENCES contests (id),
				model_id BIGINT NOT NULL REFERENCES models (id),
				user_uuid UUID NOT NULL,
				message TEXT NOT NULL,
				contact_info TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'pending',
				admin_notes TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (contest_id, model_id)
			);

			CREATE TABLE IF NOT EXISTS complaints (
				id BIGSERIAL PRIMARY KEY,
				reporter_uuid UUID,
				subject TEXT NOT NULL,
				message TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'open',
				priority TEXT NOT NULL DEFAULT 'normal',
				admin_notes TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_complaints_status ON complaints (status);
		`)
		if err != nil {
			return fmt.Errorf("failed to create prize tables: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS complaints;
			DROP TABLE IF EXISTS prize_requests;
		`)
		if err != nil {
			return fmt.Errorf("failed to drop prize tables: %w", err)
		}
		return nil
	})
}
