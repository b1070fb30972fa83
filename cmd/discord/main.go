// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "modbot/internal/command/info"
	_ "modbot/internal/command/moderation"

	"modbot/internal/command"
	"modbot/internal/command/core"
	"modbot/internal/config"
	"modbot/internal/discord"
	"modbot/internal/logging"
	"modbot/internal/middleware"
	"modbot/internal/pager"
	"modbot/internal/settings"
	"modbot/pkg/cmd"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("discord bot stopped")
		os.Exit(1)
	}
	log.Info().Msg("discord bot exited cleanly")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer closer.Close()

	log.Info().Msg("starting discord bot")

	st := settings.New(cfg.OwnerID, cfg.CommandPrefix)
	store := pager.NewStore(cfg.PagerCapacity, cfg.PagerTTL)
	command.RegisterCommand(
		core.NewHelpCommand(store, cfg.HelpPageSize),
		middleware.WithAuthorization(),
		middleware.WithCommandLogger(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	bot := discord.New(cfg, st, cmd.DefaultRegistry)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	return g.Wait()
}
