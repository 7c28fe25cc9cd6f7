// Package service provides business logic implementations.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"slot-machine-bot/internal/model"
	"slot-machine-bot/internal/paytable"
	"slot-machine-bot/internal/pkg/lock"
	"slot-machine-bot/internal/repository"
	"slot-machine-bot/internal/slot"
)

// ErrStorageUnavailable wraps backend failures on read paths. Callers
// see it on lookups and leaderboard queries; the mutating play path
// never surfaces it.
var ErrStorageUnavailable = errors.New("storage unavailable")

// GamblerStore is the account persistence the ledger needs.
type GamblerStore interface {
	GetOrCreate(ctx context.Context, id int64, name, handle string) (*model.Gambler, bool, error)
	UpdateIdentity(ctx context.Context, id int64, name, handle string) error
	Rank(ctx context.Context, id int64) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error)
}

// PlayStore persists one play as a single atomic transaction.
type PlayStore interface {
	RecordPlay(ctx context.Context, g *model.Gambler, entry *model.LedgerEntry) error
}

// PlayStatus reports how a play concluded.
type PlayStatus int

const (
	// StatusApplied means the balance, tally and ledger row committed.
	StatusApplied PlayStatus = iota
	// StatusRolledBack means persistence failed and the whole play was
	// rolled back; the reported balance is the pre-play balance.
	StatusRolledBack
	// StatusSimulated means simulation mode short-circuited the play
	// without touching persisted state.
	StatusSimulated
)

// PlayResult is the outcome of one play.
type PlayResult struct {
	BalanceCents int64
	Status       PlayStatus
}

// LedgerService owns account state transitions. Each instance holds its
// own combination space and paytable, constructed once and shared
// read-only across plays.
type LedgerService struct {
	gamblers GamblerStore
	plays    PlayStore
	space    *slot.Space
	paytable *paytable.Paytable
	locks    *lock.GamblerLock

	// simulation turns Play into a pure no-op returning 0.
	simulation bool
}

// NewLedgerService creates a new LedgerService instance.
func NewLedgerService(
	gamblers GamblerStore,
	plays PlayStore,
	space *slot.Space,
	pt *paytable.Paytable,
	simulation bool,
) *LedgerService {
	return &LedgerService{
		gamblers:   gamblers,
		plays:      plays,
		space:      space,
		paytable:   pt,
		locks:      lock.NewGamblerLock(),
		simulation: simulation,
	}
}

// Paytable returns the active paytable.
func (s *LedgerService) Paytable() *paytable.Paytable {
	return s.paytable
}

// Space returns the combination space.
func (s *LedgerService) Space() *slot.Space {
	return s.space
}

// GetOrCreate returns the persisted gambler, provisioning a zero-balance
// account on first sight of the id.
func (s *LedgerService) GetOrCreate(ctx context.Context, id int64, name, handle string) (*model.Gambler, error) {
	g, _, err := s.gamblers.GetOrCreate(ctx, id, name, handle)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return g, nil
}

// RefreshIdentity updates display metadata for an existing gambler.
// Unknown ids are left unprovisioned.
func (s *LedgerService) RefreshIdentity(ctx context.Context, id int64, name, handle string) error {
	err := s.gamblers.UpdateIdentity(ctx, id, name, handle)
	if err == nil || errors.Is(err, repository.ErrGamblerNotFound) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

// Rank returns the 1-based rank by descending balance, computed as the
// count of strictly greater balances plus one. Equal balances share a
// rank. Returns 0 for unknown ids.
func (s *LedgerService) Rank(ctx context.Context, id int64) (int, error) {
	rank, err := s.gamblers.Rank(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return rank, nil
}

// Leaderboard returns the top gamblers by balance.
func (s *LedgerService) Leaderboard(ctx context.Context, limit int) ([]*model.LeaderboardEntry, error) {
	entries, err := s.gamblers.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return entries, nil
}

// Play applies one slot machine outcome to an account: debit the bet,
// credit the paytable payout, bump the outcome tally and append the
// audit row, all in one storage transaction.
//
// Plays for the same gambler are serialized by a per-account lock, so
// the read-modify-write cannot lose updates under concurrency.
//
// A persistence failure is absorbed: the transaction rolls back and the
// result carries the pre-play balance with StatusRolledBack. A play must
// never crash the caller and must never apply half an update. The only
// returned errors are an out-of-range outcome value and a failed
// account load.
func (s *LedgerService) Play(ctx context.Context, id int64, name, handle string, value int, betCents int64) (PlayResult, error) {
	if s.simulation {
		return PlayResult{BalanceCents: 0, Status: StatusSimulated}, nil
	}

	combo, err := s.space.Combination(value)
	if err != nil {
		return PlayResult{}, err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	g, _, err := s.gamblers.GetOrCreate(ctx, id, name, handle)
	if err != nil {
		return PlayResult{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	mult := s.paytable.Resolve(combo)
	newBalance := g.BalanceCents - betCents + mult*betCents

	tally := make([]int64, len(g.Tally))
	copy(tally, g.Tally)
	tally[value-1]++

	updated := &model.Gambler{
		ID:           g.ID,
		Name:         g.Name,
		Tally:        tally,
		BalanceCents: newBalance,
		Handle:       g.Handle,
	}
	entry := &model.LedgerEntry{
		GamblerID: id,
		Value:     value,
		Paytable:  s.paytable.Serialized(),
		BetCents:  betCents,
	}

	if err := s.plays.RecordPlay(ctx, updated, entry); err != nil {
		log.Error().
			Err(err).
			Int64("gambler_id", id).
			Int("value", value).
			Msg("Play transaction failed, balance unchanged")
		return PlayResult{BalanceCents: g.BalanceCents, Status: StatusRolledBack}, nil
	}

	return PlayResult{BalanceCents: newBalance, Status: StatusApplied}, nil
}
