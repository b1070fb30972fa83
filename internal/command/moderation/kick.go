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

const defaultReason = "No reason provided"

type KickCommand struct{}

func (c *KickCommand) Name() string        { return "kick" }
func (c *KickCommand) Description() string { return "Kick a user from the server" }
func (c *KickCommand) Help() string        { return "👢 Kick a user from the server" }
func (c *KickCommand) Group() string       { return "moderation" }
func (c *KickCommand) Category() string    { return "🛡️ Moderation" }
func (c *KickCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionKickMembers}
}

func (c *KickCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionKickMembers)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "The member to kick",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Why the member is being kicked",
			},
		},
	}
}

func (c *KickCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	opts := command.OptionsOf(e)
	target := command.ResolveUser(e, opts, "member")
	if target == nil {
		_ = bot.RespondError(s, e, "❌ Error", "Please choose a member of this server.")
		return fmt.Errorf("%w: member is required", command.ErrValidation)
	}
	reason := opts.String("reason", defaultReason)

	if err := s.GuildMemberDeleteWithReason(e.GuildID, target.ID, reason); err != nil {
		err = command.Classify(err)
		msg := command.Describe(err)
		if errors.Is(err, command.ErrForbidden) {
			msg = "I do not have permission to kick this member."
		}
		_ = bot.RespondError(s, e, "❌ Error", msg)
		return err
	}

	invoker := command.Invoker(e)
	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:       "👢 Member Kicked",
		Description: fmt.Sprintf("%s has been kicked from the server.", target.Mention()),
		Color:       bot.ColorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Kicked By", Value: mention(invoker), Inline: true},
			{Name: "Reason", Value: reason, Inline: true},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("")},
		Footer:    bot.ExecutedFooter("Kicked Command Executed", invoker),
		Timestamp: bot.Timestamp(time.Now()),
	})
}

func mention(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	return u.Mention()
}

func init() {
	command.RegisterCommand(&KickCommand{}, middleware.Default()...)
}
