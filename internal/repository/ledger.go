package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"slot-machine-bot/internal/model"
)

// LedgerRepository handles the append-only play audit log and the
// transactional persistence of a play.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// RecordPlay persists one play atomically: the gambler's updated tally
// and balance plus the appended ledger row commit together or not at
// all. The caller passes the gambler with the post-play state.
func (r *LedgerRepository) RecordPlay(ctx context.Context, g *model.Gambler, entry *model.LedgerEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin play transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE gamblers
		SET tally = $2, balance_cents = $3
		WHERE id = $1
	`, g.ID, g.Tally, g.BalanceCents)
	if err != nil {
		return fmt.Errorf("failed to update gambler state: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO ledger (user_id, value, paytable, bet_cents)
		VALUES ($1, $2, $3, $4)
	`, entry.GamblerID, entry.Value, entry.Paytable, entry.BetCents)
	if err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit play transaction: %w", err)
	}

	return nil
}

// GetByGamblerID retrieves a gambler's most recent ledger entries.
func (r *LedgerRepository) GetByGamblerID(ctx context.Context, gamblerID int64, limit int) ([]*model.LedgerEntry, error) {
	const query = `
		SELECT trans_id, user_id, value, paytable, bet_cents
		FROM ledger
		WHERE user_id = $1
		ORDER BY trans_id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, gamblerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		err := rows.Scan(&e.TransID, &e.GamblerID, &e.Value, &e.Paytable, &e.BetCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}

	return entries, nil
}

// CountForGambler returns the number of ledger rows for a gambler.
func (r *LedgerRepository) CountForGambler(ctx context.Context, gamblerID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ledger WHERE user_id = $1`, gamblerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}
	return n, nil
}
