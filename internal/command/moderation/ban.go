package moderation

import (
	"errors"
	"fmt"
	"time"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type BanCommand struct{}

func (c *BanCommand) Name() string        { return "ban" }
func (c *BanCommand) Description() string { return "Ban a user from the server" }
func (c *BanCommand) Help() string        { return "🔨 Ban a user from the server" }
func (c *BanCommand) Group() string       { return "moderation" }
func (c *BanCommand) Category() string    { return "🛡️ Moderation" }
func (c *BanCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionBanMembers}
}

func (c *BanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionBanMembers)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "The user to ban",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why the user is being banned",
			},
		},
	}
}

func (c *BanCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	opts := command.OptionsOf(e)
	target := command.ResolveUser(e, opts, "user")
	if target == nil {
		_ = bot.RespondEphemeral(s, e, "Please choose a user to ban.")
		return fmt.Errorf("%w: user is required", command.ErrValidation)
	}
	reason := opts.String("reason", defaultReason)

	// Keep the user's message history.
	if apiErr := s.GuildBanCreateWithReason(e.GuildID, target.ID, reason, 0); apiErr != nil {
		err := command.Classify(apiErr)
		msg := fmt.Sprintf("An error occurred: %v", apiErr)
		if errors.Is(err, command.ErrForbidden) {
			msg = "I do not have permission to ban this user."
		}
		_ = bot.RespondEphemeral(s, e, msg)
		return err
	}

	invoker := command.Invoker(e)
	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:       "🔨 User Banned",
		Description: fmt.Sprintf("%s has been banned from the server.", target.Mention()),
		Color:       bot.ColorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Banned by", Value: mention(invoker)},
			{Name: "Reason", Value: reason},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")},
		Footer:    bot.ExecutedFooter("Banned Command Executed", invoker),
		Timestamp: bot.Timestamp(time.Now()),
	})
}

func init() {
	command.RegisterCommand(&BanCommand{}, middleware.Default()...)
}
