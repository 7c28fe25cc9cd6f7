// Package main is the entry point for the slot machine gambling bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"slot-machine-bot/internal/bot"
	"slot-machine-bot/internal/config"
	"slot-machine-bot/internal/paytable"
	"slot-machine-bot/internal/pkg/db"
	"slot-machine-bot/internal/repository"
	"slot-machine-bot/internal/service"
	"slot-machine-bot/internal/slot"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	if cfg.Bot.Simulation {
		log.Warn().Msg("Simulation mode enabled: plays will not touch the database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if err := repository.RunMigrations(ctx, dbPool.Pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	gamblerRepo := repository.NewGamblerRepository(dbPool.Pool)
	ledgerRepo := repository.NewLedgerRepository(dbPool.Pool)

	pt, err := paytable.New(cfg.Game.Paytable)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid paytable configuration")
	}

	ledgerService := service.NewLedgerService(
		gamblerRepo,
		ledgerRepo,
		slot.NewSpace(),
		pt,
		cfg.Bot.Simulation,
	)

	deps := &bot.Dependencies{
		Config: cfg,
		Ledger: ledgerService,
	}

	telegramBot, err := bot.New(deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
