// Package model defines the persisted data models for the slot machine bot.
package model

// TallySize is the number of distinct slot outcomes tracked per gambler,
// one counter per Telegram dice value.
const TallySize = 64

// Gambler is one account row: identity metadata, the per-outcome play
// tally and the running balance in cents. Balances may go negative.
type Gambler struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Tally        []int64 `db:"tally"`
	BalanceCents int64   `db:"balance_cents"`
	Handle       *string `db:"handle"`
}

// TotalPlays sums the tally.
func (g *Gambler) TotalPlays() int64 {
	var total int64
	for _, n := range g.Tally {
		total += n
	}
	return total
}

// NewTally returns an all-zero tally of the fixed length.
func NewTally() []int64 {
	return make([]int64, TallySize)
}

// LedgerEntry is one append-only audit row for a single play. Rows are
// written once inside the play transaction and never updated.
type LedgerEntry struct {
	TransID   int64  `db:"trans_id"`
	GamblerID int64  `db:"user_id"`
	Value     int    `db:"value"`
	Paytable  string `db:"paytable"`
	BetCents  int64  `db:"bet_cents"`
}

// LeaderboardEntry is the per-account summary returned by leaderboard
// queries.
type LeaderboardEntry struct {
	ID           int64
	Name         string
	BalanceCents int64
	TotalPlays   int64
}
