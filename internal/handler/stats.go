package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"slot-machine-bot/internal/config"
	"slot-machine-bot/internal/model"
	"slot-machine-bot/internal/pkg/money"
	"slot-machine-bot/internal/service"
	"slot-machine-bot/internal/slot"
)

// StatsHandler serves the read-only commands: /stat, /paytable and
// /leaderboard.
type StatsHandler struct {
	cfg    *config.Config
	ledger *service.LedgerService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(cfg *config.Config, ledger *service.LedgerService) *StatsHandler {
	return &StatsHandler{cfg: cfg, ledger: ledger}
}

// HandleStat replies with a gambler's performance summary. Replying to
// someone else's message reports that gambler instead of the sender.
func (h *StatsHandler) HandleStat(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	// Keep the sender's display metadata fresh.
	if err := h.ledger.RefreshIdentity(ctx, sender.ID, fullName(sender), sender.Username); err != nil {
		log.Warn().Err(err).Int64("gambler_id", sender.ID).Msg("Identity refresh failed")
	}

	target := sender
	if msg := c.Message(); msg != nil && msg.ReplyTo != nil && msg.ReplyTo.Sender != nil {
		target = msg.ReplyTo.Sender
	}

	g, err := h.ledger.GetOrCreate(ctx, target.ID, fullName(target), target.Username)
	if err != nil {
		log.Error().Err(err).Int64("gambler_id", target.ID).Msg("Stat lookup failed")
		return c.Reply("The house is counting its money, try again later.")
	}

	display := g.Name
	if g.Handle != nil && *g.Handle != "" {
		display = "@" + *g.Handle
	}

	space := h.ledger.Space()
	var b strings.Builder
	fmt.Fprintf(&b, "%s's Performance\n", display)
	fmt.Fprintf(&b, "Total Plays: %d\n\nWins:\n", g.TotalPlays())
	for _, sym := range slot.Symbols() {
		triple := space.TripleValue(sym)
		name := sym.String()
		fmt.Fprintf(&b, "%s%s%s: %d\n", name, name, name, g.Tally[triple-1])
	}
	fmt.Fprintf(&b, "\nBalance: %s", money.FormatCents(g.BalanceCents))

	return c.Reply(b.String())
}

// HandlePaytable replies with the rendered paytable for the active bet.
func (h *StatsHandler) HandlePaytable(c tele.Context) error {
	return c.Reply(h.ledger.Paytable().Render(h.cfg.Game.BetCents))
}

// HandleLeaderboard replies with the top balances, marking the sender
// and appending their off-board rank when they have played but did not
// make the cut.
func (h *StatsHandler) HandleLeaderboard(c tele.Context) error {
	ctx := context.Background()
	sender := c.Sender()
	if sender == nil {
		return nil
	}

	top, err := h.ledger.Leaderboard(ctx, h.cfg.Game.LeaderboardLimit)
	if err != nil {
		log.Error().Err(err).Msg("Leaderboard query failed")
		return c.Reply("The house is counting its money, try again later.")
	}

	// Accounts that never played don't belong on the board.
	played := make([]*model.LeaderboardEntry, 0, len(top))
	for _, e := range top {
		if e.TotalPlays > 0 {
			played = append(played, e)
		}
	}

	if len(played) == 0 {
		return c.Reply("No gambling has taken place yet... Be the first to win big! 🎰")
	}

	g, err := h.ledger.GetOrCreate(ctx, sender.ID, fullName(sender), sender.Username)
	if err != nil {
		log.Error().Err(err).Int64("gambler_id", sender.ID).Msg("Leaderboard self lookup failed")
		return c.Reply("The house is counting its money, try again later.")
	}

	rank, err := h.ledger.Rank(ctx, sender.ID)
	if err != nil {
		log.Warn().Err(err).Int64("gambler_id", sender.ID).Msg("Rank lookup failed")
	}

	var b strings.Builder
	b.WriteString("🎰 Gambling Leaderboard 🎰\n\n")

	senderOnBoard := false
	for i, e := range played {
		indicator := ""
		if e.ID == sender.ID {
			indicator = " (You)"
			senderOnBoard = true
		}
		fmt.Fprintf(&b, "%d. %s: %s%s\n", i+1, e.Name, money.FormatCents(e.BalanceCents), indicator)
	}

	switch {
	case g.TotalPlays() > 0 && !senderOnBoard:
		b.WriteString("...\n")
		fmt.Fprintf(&b, "%d. %s: %s (You)\n", rank, g.Name, money.FormatCents(g.BalanceCents))
	case g.TotalPlays() == 0:
		b.WriteString("\nYou haven't tried your luck yet... Send the 🎰 emoji to win big!")
	}

	return c.Reply(b.String())
}
