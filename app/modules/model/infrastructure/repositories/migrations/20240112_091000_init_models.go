package modelmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating models table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS models (
				id BIGSERIAL PRIMARY KEY,
				uuid UUID NOT NULL UNIQUE DEFAULT gen_random_uuid(),
				user_uuid UUID NOT NULL UNIQUE REFERENCES users(uuid),
				display_name TEXT NOT NULL,
				stage_name TEXT,
				bio TEXT,
				avatar_url TEXT,
				total_votes BIGINT NOT NULL DEFAULT 0,
				bonus_votes BIGINT NOT NULL DEFAULT 0,
				active_contest_votes BIGINT NOT NULL DEFAULT 0,
				contests_joined INT NOT NULL DEFAULT 0,
				contests_won INT NOT NULL DEFAULT 0,
				active BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_models_total_votes ON models (total_votes DESC);
		`)
		if err != nil {
			return fmt.Errorf("failed to create models table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS models;`)
		if err != nil {
			return fmt.Errorf("failed to drop models table: %w", err)
		}
		return nil
	})
}
