package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// schemaVersion is the target schema version. Version 1 added the
// optional handle column to gamblers.
const schemaVersion = 1

// RunMigrations creates the schema and applies any pending additive
// migrations. It is safe to run on every startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Base schema. The gamblers table intentionally omits handle here:
	// the column is added by the versioned migration below, so legacy
	// databases and fresh ones converge on the same shape.
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS gamblers (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			tally BIGINT[] NOT NULL,
			balance_cents BIGINT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_gamblers_balance ON gamblers(balance_cents DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to create gamblers table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS ledger (
			trans_id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES gamblers(id),
			value INT NOT NULL CHECK (value BETWEEN 1 AND 64),
			paytable TEXT,
			bet_cents BIGINT
		);
		CREATE INDEX IF NOT EXISTS idx_ledger_user_id ON ledger(user_id);
	`)
	if err != nil {
		return fmt.Errorf("failed to create ledger table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INT NOT NULL
		);
		INSERT INTO schema_version (version)
		SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM schema_version);
	`)
	if err != nil {
		return fmt.Errorf("failed to init schema version: %w", err)
	}

	version, err := currentVersion(ctx, pool)
	if err != nil {
		return err
	}

	// v1: add the optional handle column, applied exactly once.
	if version < 1 {
		_, err = pool.Exec(ctx, `
			ALTER TABLE gamblers ADD COLUMN IF NOT EXISTS handle TEXT;
			UPDATE schema_version SET version = 1;
		`)
		if err != nil {
			return fmt.Errorf("failed to apply handle migration: %w", err)
		}
		log.Info().Int("version", 1).Msg("Applied schema migration")
	}

	log.Info().Int("version", schemaVersion).Msg("All migrations completed")
	return nil
}

// currentVersion reads the stored schema version.
func currentVersion(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var version int
	err := pool.QueryRow(ctx, `SELECT version FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}
