// Package handler provides Telegram bot command and message handlers.
package handler

import (
	"context"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"slot-machine-bot/internal/config"
	"slot-machine-bot/internal/pkg/money"
	"slot-machine-bot/internal/service"
	"slot-machine-bot/internal/slot"
)

// slotMachineEmoji is the dice type Telegram uses for 🎰 messages.
const slotMachineEmoji = "🎰"

// PlayHandler processes incoming slot machine dice messages.
type PlayHandler struct {
	cfg    *config.Config
	ledger *service.LedgerService
}

// NewPlayHandler creates a new PlayHandler.
func NewPlayHandler(cfg *config.Config, ledger *service.LedgerService) *PlayHandler {
	return &PlayHandler{cfg: cfg, ledger: ledger}
}

// HandleDice handles any dice message and plays the ones that are slot
// machines. Forwarded dice are ignored so old results cannot be
// replayed for credit.
func (h *PlayHandler) HandleDice(c tele.Context) error {
	ctx := context.Background()
	msg := c.Message()
	sender := c.Sender()

	if msg == nil || msg.Dice == nil || sender == nil {
		return nil
	}
	if msg.Dice.Type != slotMachineEmoji {
		return nil
	}
	if msg.IsForwarded() {
		return nil
	}

	value := msg.Dice.Value
	bet := h.cfg.Game.BetCents

	result, err := h.ledger.Play(ctx, sender.ID, fullName(sender), sender.Username, value, bet)
	if err != nil {
		log.Error().Err(err).Int64("gambler_id", sender.ID).Int("value", value).Msg("Play rejected")
		return nil
	}

	category, err := h.ledger.Space().Category(value)
	if err != nil {
		return nil
	}

	log.Info().
		Str("name", fullName(sender)).
		Int64("gambler_id", sender.ID).
		Str("combo", category.Name()).
		Str("balance", money.FormatCents(result.BalanceCents)).
		Int("status", int(result.Status)).
		Msg("Slot machine play")

	// Celebrate the triples.
	switch category.Kind {
	case slot.CategoryTripleSeven:
		return c.Reply("Ahoy!")
	case slot.CategoryTripleBar, slot.CategoryTripleLemon, slot.CategoryTripleGrape:
		return c.Reply("✨")
	}
	return nil
}

// fullName builds a display name from a Telegram user.
func fullName(u *tele.User) string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
