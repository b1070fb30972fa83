package command

import (
	"context"

	"modbot/internal/bot"
	"modbot/internal/settings"
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts (what the runtime passes when executing).

type SlashInteractionContext struct {
	Session  bot.Session
	Event    *discordgo.InteractionCreate
	Self     *discordgo.User
	Settings *settings.Settings
}

type ComponentInteractionContext struct {
	Session  bot.Session
	Event    *discordgo.InteractionCreate
	Self     *discordgo.User
	Settings *settings.Settings
}

type MessageContext struct {
	Session  bot.Session
	Event    *discordgo.MessageCreate
	Settings *settings.Settings
}

// Providers: how a command is registered with Discord.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type ComponentInteractionHandler interface {
	Component(*ComponentInteractionContext) error
}

// MessageHandler is implemented by commands that also answer prefix messages.
type MessageHandler interface {
	Message(*MessageContext) error
}

// HelpProvider supplies the line shown for a command in /help.
type HelpProvider interface {
	Help() string
}

// OwnerRestricted marks commands only the configured owner may run.
type OwnerRestricted interface {
	OwnerOnly() bool
}

// DiscordMeta lets middleware read Group/Category/Permissions without
// depending on the concrete command type.
type DiscordMeta interface {
	Group() string
	Category() string
	UserPermissions() []int64
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in the
// universal registry, delegating every optional provider to the inner command.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string             { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string      { return a.Cmd.Description() }
func (a *DiscordAdapter) Group() string            { return a.Cmd.Group() }
func (a *DiscordAdapter) Category() string         { return a.Cmd.Category() }
func (a *DiscordAdapter) UserPermissions() []int64 { return a.Cmd.UserPermissions() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	switch data := inv.Data.(type) {
	case *ComponentInteractionContext:
		return a.Component(data)
	case *MessageContext:
		if mh, ok := a.Cmd.(MessageHandler); ok {
			return mh.Message(data)
		}
		return nil
	}
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func (a *DiscordAdapter) Component(ctx *ComponentInteractionContext) error {
	if ch, ok := a.Cmd.(ComponentInteractionHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

// HandlesMessages reports whether the command answers prefix messages.
func (a *DiscordAdapter) HandlesMessages() bool {
	_, ok := a.Cmd.(MessageHandler)
	return ok
}

func (a *DiscordAdapter) Help() string {
	if hp, ok := a.Cmd.(HelpProvider); ok {
		return hp.Help()
	}
	return a.Cmd.Description()
}

func (a *DiscordAdapter) OwnerOnly() bool {
	if or, ok := a.Cmd.(OwnerRestricted); ok {
		return or.OwnerOnly()
	}
	return false
}

// RegisterCommand registers a Discord command with the default registry and applies middlewares.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	RegisterCommandTo(cmd.DefaultRegistry, discordCmd, mws...)
}

// RegisterCommandTo is RegisterCommand against an explicit registry.
func RegisterCommandTo(r *cmd.Registry, discordCmd DiscordCommand, mws ...cmd.Middleware) {
	r.Register(cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...))
}

// Meta returns the Discord metadata of a possibly wrapped command.
func Meta(c cmd.Command) (*DiscordAdapter, bool) {
	a, ok := cmd.Root(c).(*DiscordAdapter)
	return a, ok
}
