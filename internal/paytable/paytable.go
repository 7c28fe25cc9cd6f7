// Package paytable resolves slot combinations to payout multipliers
// through an ordered list of wildcard-capable match patterns.
package paytable

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slot-machine-bot/internal/pkg/money"
	"slot-machine-bot/internal/slot"
)

// ErrInvalidPaytable is returned when the configured paytable is empty
// or contains a malformed entry. The bot refuses to start in that case.
var ErrInvalidPaytable = errors.New("invalid paytable")

// MatchSymbol is one pattern position: a concrete symbol or a wildcard.
type MatchSymbol struct {
	Symbol   slot.Symbol
	Wildcard bool
}

// Matches reports whether this pattern position accepts the reel symbol.
func (m MatchSymbol) Matches(s slot.Symbol) bool {
	return m.Wildcard || m.Symbol == s
}

func (m MatchSymbol) String() string {
	if m.Wildcard {
		return "ANY"
	}
	return m.Symbol.String()
}

// Entry is one paytable row: a 3-position pattern and its multiplier.
type Entry struct {
	Combo      [3]MatchSymbol
	PayoutMult int64
}

// Matches reports whether the combination satisfies every position.
func (e Entry) Matches(c slot.Combination) bool {
	for i, m := range e.Combo {
		if !m.Matches(c[i]) {
			return false
		}
	}
	return true
}

// EntryConfig is the external configuration shape of one entry.
type EntryConfig struct {
	Combo      []string `mapstructure:"combo" json:"combo"`
	PayoutMult int64    `mapstructure:"payout_mult" json:"payout_mult"`
}

// Paytable is the ordered match list. Order is significant: Resolve
// returns the first matching entry, so specific patterns must be
// configured before their wildcard generalizations.
type Paytable struct {
	entries    []Entry
	serialized string
}

// New builds a paytable from configuration. The list must be non-empty
// and every combo must have exactly 3 tokens.
func New(cfgs []EntryConfig) (*Paytable, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: no entries configured", ErrInvalidPaytable)
	}

	entries := make([]Entry, 0, len(cfgs))
	for i, cfg := range cfgs {
		if len(cfg.Combo) != 3 {
			return nil, fmt.Errorf("%w: entry %d has %d combo tokens, want 3", ErrInvalidPaytable, i, len(cfg.Combo))
		}
		var e Entry
		for j, token := range cfg.Combo {
			e.Combo[j] = parseToken(token)
		}
		e.PayoutMult = cfg.PayoutMult
		entries = append(entries, e)
	}

	raw, err := json.Marshal(cfgs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPaytable, err)
	}

	return &Paytable{entries: entries, serialized: string(raw)}, nil
}

// parseToken maps a config token to a pattern position. Unrecognized
// tokens degrade to wildcard rather than failing the whole table.
func parseToken(token string) MatchSymbol {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "BAR":
		return MatchSymbol{Symbol: slot.Bar}
	case "GRAPE":
		return MatchSymbol{Symbol: slot.Grape}
	case "LEMON":
		return MatchSymbol{Symbol: slot.Lemon}
	case "SEVEN":
		return MatchSymbol{Symbol: slot.Seven}
	default:
		return MatchSymbol{Wildcard: true}
	}
}

// Resolve returns the multiplier of the first entry matching the
// combination, or 0 when nothing matches.
func (p *Paytable) Resolve(c slot.Combination) int64 {
	for _, e := range p.entries {
		if e.Matches(c) {
			return e.PayoutMult
		}
	}
	return 0
}

// Entries returns the configured entries in resolution order.
func (p *Paytable) Entries() []Entry {
	return p.entries
}

// Serialized returns the JSON snapshot stored with every ledger row.
func (p *Paytable) Serialized() string {
	return p.serialized
}

// Render produces the player-facing paytable listing for the given bet,
// one line per entry plus the active bet amount.
func (p *Paytable) Render(betCents int64) string {
	var b strings.Builder
	b.WriteString("Payout:\n")

	for _, e := range p.entries {
		amount := money.FormatCents(e.PayoutMult * betCents)
		b.WriteString(fmt.Sprintf("%s: x%d (%s)\n", describeCombo(e.Combo), e.PayoutMult, amount))
	}

	b.WriteString(fmt.Sprintf("\nBet Amount = %s", money.FormatCents(betCents)))
	return b.String()
}

// describeCombo classifies a pattern for display:
// no wildcards reads as a literal triple, two wildcards as "Any X",
// one wildcard over a concrete pair as "Any two X", and everything
// else lists the concrete symbols in pattern order.
func describeCombo(combo [3]MatchSymbol) string {
	var concrete []slot.Symbol
	wildcards := 0
	for _, m := range combo {
		if m.Wildcard {
			wildcards++
		} else {
			concrete = append(concrete, m.Symbol)
		}
	}

	switch {
	case wildcards == 0:
		s := combo[0].Symbol.String()
		return s + s + s
	case wildcards == 2 && len(concrete) == 1:
		return "Any " + concrete[0].String()
	case wildcards == 1 && concrete[0] == concrete[1]:
		return "Any two " + concrete[0].String()
	default:
		var names strings.Builder
		for _, s := range concrete {
			names.WriteString(s.String())
		}
		return "Any combo of " + names.String()
	}
}
