// Property-based tests for play arithmetic.
package service

import (
	"context"
	"testing"

	"pgregory.net/rapid"

	"slot-machine-bot/internal/model"
	"slot-machine-bot/internal/slot"
)

// TestPlayArithmeticProperty checks that for any starting balance, bet
// and outcome value, an applied play moves the balance by exactly
// (multiplier - 1) * bet and bumps exactly one tally counter.
func TestPlayArithmeticProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		initialBalance := rapid.Int64Range(-100000, 100000).Draw(rt, "initialBalance")
		bet := rapid.Int64Range(1, 10000).Draw(rt, "bet")
		value := rapid.IntRange(slot.MinValue, slot.MaxValue).Draw(rt, "value")

		gamblers := newFakeGamblerStore()
		plays := &fakePlayStore{gamblers: gamblers}
		pt := defaultTable(t)
		svc := NewLedgerService(gamblers, plays, slot.NewSpace(), pt, false)

		gamblers.gamblers[1] = &model.Gambler{
			ID:           1,
			Name:         "Alice",
			Tally:        model.NewTally(),
			BalanceCents: initialBalance,
		}

		result, err := svc.Play(context.Background(), 1, "Alice", "alice", value, bet)
		if err != nil {
			rt.Fatalf("Play failed: %v", err)
		}
		if result.Status != StatusApplied {
			rt.Fatalf("unexpected status %d", result.Status)
		}

		combo, err := svc.Space().Combination(value)
		if err != nil {
			rt.Fatalf("Combination(%d) failed: %v", value, err)
		}
		mult := pt.Resolve(combo)

		want := initialBalance - bet + mult*bet
		if result.BalanceCents != want {
			rt.Fatalf("balance mismatch: got %d, want %d (mult=%d)", result.BalanceCents, want, mult)
		}

		g := gamblers.gamblers[1]
		if g.Tally[value-1] != 1 {
			rt.Fatalf("tally[%d] = %d, want 1", value-1, g.Tally[value-1])
		}
		if g.TotalPlays() != 1 {
			rt.Fatalf("total plays = %d, want 1", g.TotalPlays())
		}
	})
}
