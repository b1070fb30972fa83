// Package discord owns the discordgo session: it routes gateway events to the
// command registry, keeps slash commands in sync and runs the presence job.
package discord

import (
	"context"
	"fmt"
	"time"

	"modbot/internal/config"
	"modbot/internal/logging"
	"modbot/internal/presence"
	"modbot/internal/settings"
	"modbot/pkg/cmd"
	"modbot/pkg/jobmgr"
	"modbot/pkg/retrylimit"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	settings *settings.Settings
	registry *cmd.Registry
	jobs     *jobmgr.Manager
	syncer   *commandSyncer
	log      zerolog.Logger
}

// New returns a bot serving the commands of registry.
func New(cfg *config.Config, st *settings.Settings, registry *cmd.Registry) *Bot {
	return &Bot{
		cfg:      cfg,
		settings: st,
		registry: registry,
		log:      logging.Component("discord"),
	}
}

// Run connects to Discord and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.configureIntents()

	// Jobs outlive the shutdown signal until stopJobs, so they finish before
	// the session closes.
	b.jobs = jobmgr.NewManager(context.WithoutCancel(ctx), func(ev jobmgr.Event) {
		e := b.log.Info()
		if ev.Err != nil {
			e = b.log.Error().Err(ev.Err)
		}
		e.Str("job", ev.Job).Str("state", string(ev.State)).Msg("job")
	})
	b.syncer = newCommandSyncer(dg, retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5))

	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) { b.onReady(ctx, s, r) })
	dg.AddHandler(func(s *discordgo.Session, g *discordgo.GuildCreate) { b.onGuildCreate(ctx, s, g) })
	dg.AddHandler(b.onGuildDelete)
	dg.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) { b.onInteractionCreate(ctx, s, i) })
	dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) { b.onMessageCreate(ctx, s, m) })

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	rotator := presence.New(dg, presence.Options{
		Interval: b.cfg.StatusInterval,
		Hold:     b.cfg.StatusHold,
		Location: b.cfg.Location(),
		Guilds:   func() int { return guildCount(dg.State) },
	})
	if err := b.jobs.StartAsync("presence", rotator.Run); err != nil {
		return fmt.Errorf("start presence: %w", err)
	}

	<-ctx.Done()
	b.log.Info().Msg("shutdown signal received, cleaning up")
	stopJobs(b.jobs, 10*time.Second, b.log)
	return nil
}

// stopJobs stops every running job and waits up to timeout for them to return.
func stopJobs(jobs *jobmgr.Manager, timeout time.Duration, log zerolog.Logger) {
	done := make(chan struct{})
	go func() {
		for _, name := range jobs.List() {
			if err := jobs.Stop(name); err != nil {
				log.Debug().Err(err).Str("job", name).Msg("job already stopped")
			}
		}
		jobs.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn().Str("jobs", jobs.Status()).Msg("jobs still running at shutdown")
	}
}

// configureIntents configures the Discord intents
func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
}

// guildCount is the number of servers the session is in.
func guildCount(state *discordgo.State) int {
	if state == nil {
		return 0
	}
	state.RLock()
	defer state.RUnlock()
	return len(state.Guilds)
}
