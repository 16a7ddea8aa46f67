package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations executes all database migrations
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Check if table exists
	var exists bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = 'analysis'
		)
	`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if analysis table exists: %w", err)
	}

	if exists {
		return nil
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis (
			id UUID PRIMARY KEY,
			car_name VARCHAR(200) NOT NULL,
			brand VARCHAR(100) NOT NULL,
			rarity VARCHAR(20),
			number_produced VARCHAR(200),
			result_en JSONB NOT NULL,
			result_vi JSONB NOT NULL,
			processing_ms BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analysis table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_analysis_brand
		ON analysis(brand)
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_analysis_brand: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_analysis_created_at
		ON analysis(created_at DESC)
	`)
	if err != nil {
		return fmt.Errorf("failed to create idx_analysis_created_at: %w", err)
	}

	return nil
}
