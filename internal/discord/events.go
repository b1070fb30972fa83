package discord

import (
	"context"
	"strings"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/logging"
	"modbot/internal/settings"
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// onReady publishes slash commands to every guild the bot is in.
func (b *Bot) onReady(ctx context.Context, s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("discord bot is running")

	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}
	ids := make([]string, 0, len(r.Guilds))
	for _, g := range r.Guilds {
		ids = append(ids, g.ID)
	}

	defs := commandDefinitions(b.registry)
	go func() {
		if err := b.syncer.SyncAll(ctx, appID, ids, defs); err != nil {
			b.log.Error().Err(err).Msg("failed to register slash commands")
		}
	}()
}

// onGuildCreate publishes slash commands to a guild the bot joined or that
// became available.
func (b *Bot) onGuildCreate(ctx context.Context, s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	b.log.Debug().Str("guild", g.ID).Str("name", g.Name).Msg("guild available")

	appID := s.State.User.ID
	defs := commandDefinitions(b.registry)
	go func() {
		if err := b.syncer.Sync(ctx, appID, g.ID, defs); err != nil {
			b.log.Error().Err(err).Str("guild", g.ID).Msg("failed to register slash commands")
		}
	}()
}

// onGuildDelete forgets the commands published to a guild the bot left, so
// rejoining publishes them again.
func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	b.log.Info().Str("guild", g.ID).Msg("removed from guild")
	b.syncer.Forget(g.ID)
}

func (b *Bot) onInteractionCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	r := &router{registry: b.registry, settings: b.settings}
	r.interaction(ctx, s, s.State.User, i)
}

func (b *Bot) onMessageCreate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	r := &router{registry: b.registry, settings: b.settings}
	r.message(ctx, s, s.State.User, m)
}

// router hands events to the registered commands.
type router struct {
	registry *cmd.Registry
	settings *settings.Settings
}

func (r *router) interaction(ctx context.Context, s bot.Session, self *discordgo.User, i *discordgo.InteractionCreate) {
	log := logging.Component("router")

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		c := r.registry.Get(name)
		if c == nil {
			log.Warn().Str("command", name).Msg("unknown command")
			_ = bot.RespondEphemeral(s, i, "Unknown command.")
			return
		}
		r.run(ctx, c, &command.SlashInteractionContext{Session: s, Event: i, Self: self, Settings: r.settings})

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		name, _, _ := strings.Cut(customID, ":")
		c := r.registry.Get(name)
		if c == nil {
			log.Warn().Str("custom_id", customID).Msg("no command for component")
			return
		}
		r.run(ctx, c, &command.ComponentInteractionContext{Session: s, Event: i, Self: self, Settings: r.settings})

	default:
		log.Debug().Int("type", int(i.Type)).Msg("ignoring interaction")
	}
}

// message serves the legacy prefix commands, "<prefix><name>", for commands
// that answer messages.
func (r *router) message(ctx context.Context, s bot.Session, self *discordgo.User, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || (self != nil && m.Author.ID == self.ID) {
		return
	}
	rest, ok := strings.CutPrefix(strings.TrimSpace(m.Content), r.settings.Prefix())
	if !ok {
		return
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}
	c := r.registry.Get(strings.ToLower(fields[0]))
	if c == nil {
		return
	}
	if meta, ok := command.Meta(c); !ok || !meta.HandlesMessages() {
		return
	}
	r.run(ctx, c, &command.MessageContext{Session: s, Event: m, Settings: r.settings}, fields[1:]...)
}

func (r *router) run(ctx context.Context, c cmd.Command, data interface{}, args ...string) {
	// Commands answer the user themselves; the logger middleware records failures.
	_ = c.Run(ctx, &cmd.Invocation{Args: args, Data: data})
}
