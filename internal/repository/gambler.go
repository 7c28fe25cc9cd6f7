// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slot-machine-bot/internal/model"
)

// Common errors for repository operations.
var (
	ErrGamblerNotFound = errors.New("gambler not found")
)

// GamblerRepository handles gambler account persistence.
type GamblerRepository struct {
	pool *pgxpool.Pool
}

// NewGamblerRepository creates a new GamblerRepository instance.
func NewGamblerRepository(pool *pgxpool.Pool) *GamblerRepository {
	return &GamblerRepository{pool: pool}
}

// Create provisions a new gambler with a zero balance and an all-zero
// tally. An empty handle is stored as NULL.
func (r *GamblerRepository) Create(ctx context.Context, id int64, name, handle string) (*model.Gambler, error) {
	const query = `
		INSERT INTO gamblers (id, name, tally, balance_cents, handle)
		VALUES ($1, $2, $3, 0, NULLIF($4, ''))
		RETURNING id, name, tally, balance_cents, handle
	`

	var g model.Gambler
	err := r.pool.QueryRow(ctx, query, id, name, model.NewTally(), handle).Scan(
		&g.ID,
		&g.Name,
		&g.Tally,
		&g.BalanceCents,
		&g.Handle,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gambler: %w", err)
	}

	return &g, nil
}

// GetByID retrieves a gambler by id.
// Returns ErrGamblerNotFound if no row exists.
func (r *GamblerRepository) GetByID(ctx context.Context, id int64) (*model.Gambler, error) {
	const query = `
		SELECT id, name, tally, balance_cents, handle
		FROM gamblers
		WHERE id = $1
	`

	var g model.Gambler
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Tally,
		&g.BalanceCents,
		&g.Handle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGamblerNotFound
		}
		return nil, fmt.Errorf("failed to get gambler: %w", err)
	}

	return &g, nil
}

// GetOrCreate retrieves a gambler by id, provisioning one on first sight.
func (r *GamblerRepository) GetOrCreate(ctx context.Context, id int64, name, handle string) (*model.Gambler, bool, error) {
	g, err := r.GetByID(ctx, id)
	if err == nil {
		return g, false, nil
	}
	if !errors.Is(err, ErrGamblerNotFound) {
		return nil, false, err
	}

	g, err = r.Create(ctx, id, name, handle)
	if err != nil {
		// Handle race condition: a concurrent play might have provisioned
		// the same gambler between the read and the insert.
		g, err = r.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		return g, false, nil
	}

	return g, true, nil
}

// UpdateIdentity refreshes display metadata without touching balance or
// tally. It never provisions.
func (r *GamblerRepository) UpdateIdentity(ctx context.Context, id int64, name, handle string) error {
	const query = `
		UPDATE gamblers
		SET name = $2, handle = NULLIF($3, '')
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, name, handle)
	if err != nil {
		return fmt.Errorf("failed to update identity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGamblerNotFound
	}

	return nil
}

// Rank returns the 1-based rank of a gambler by descending balance:
// the count of strictly greater balances plus one. Equal balances share
// the same number. Returns 0 when the gambler does not exist.
func (r *GamblerRepository) Rank(ctx context.Context, id int64) (int, error) {
	var balance int64
	err := r.pool.QueryRow(ctx, `SELECT balance_cents FROM gamblers WHERE id = $1`, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance for rank: %w", err)
	}

	var above int
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM gamblers WHERE balance_cents > $1`, balance).Scan(&above)
	if err != nil {
		return 0, fmt.Errorf("failed to count rank: %w", err)
	}

	return above + 1, nil
}

// Leaderboard retrieves the top N gamblers by balance.
func (r *GamblerRepository) Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	const query = `
		SELECT id, name, tally, balance_cents
		FROM gamblers
		ORDER BY balance_cents DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*model.LeaderboardEntry
	for rows.Next() {
		var g model.Gambler
		err := rows.Scan(&g.ID, &g.Name, &g.Tally, &g.BalanceCents)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, &model.LeaderboardEntry{
			ID:           g.ID,
			Name:         g.Name,
			BalanceCents: g.BalanceCents,
			TotalPlays:   g.TotalPlays(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return entries, nil
}
