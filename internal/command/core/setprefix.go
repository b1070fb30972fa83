package core

import (
	"errors"
	"fmt"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"
	"modbot/internal/settings"

	"github.com/bwmarrin/discordgo"
)

type SetPrefixCommand struct{}

func (c *SetPrefixCommand) Name() string             { return "setprefix" }
func (c *SetPrefixCommand) Description() string      { return "Change the bot prefix" }
func (c *SetPrefixCommand) Help() string             { return "⚙️ Change the bot prefix" }
func (c *SetPrefixCommand) Group() string            { return "core" }
func (c *SetPrefixCommand) Category() string         { return "⚙️ Settings" }
func (c *SetPrefixCommand) UserPermissions() []int64 { return []int64{} }
func (c *SetPrefixCommand) OwnerOnly() bool          { return true }

func (c *SetPrefixCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minLen := 1
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "new_prefix",
				Description: "The new command prefix",
				Required:    true,
				MinLength:   &minLen,
				MaxLength:   settings.MaxPrefixLength,
			},
		},
	}
}

func (c *SetPrefixCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	actor := ""
	if u := command.Invoker(e); u != nil {
		actor = u.ID
	}
	prefix := command.OptionsOf(e).String("new_prefix", "")

	if _, err := context.Settings.SetPrefix(actor, prefix); err != nil {
		switch {
		case errors.Is(err, settings.ErrNotOwner):
			_ = bot.RespondError(s, e, "Error", "You don't have permission to change the prefix.")
			return fmt.Errorf("%w: %w", command.ErrPermissionDenied, err)
		case errors.Is(err, settings.ErrInvalidPrefix):
			_ = bot.RespondError(s, e, "❌ Error", fmt.Sprintf("The prefix must be 1 to %d characters long.", settings.MaxPrefixLength))
			return fmt.Errorf("%w: %w", command.ErrValidation, err)
		default:
			return err
		}
	}

	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:       "Set Prefix",
		Description: fmt.Sprintf("Prefix has been changed to %s", prefix),
		Color:       bot.ColorGreen,
	})
}

func init() {
	command.RegisterCommand(&SetPrefixCommand{}, middleware.Default()...)
}
