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

const (
	maxSlowmode       = 21600
	slowmodeThumbnail = "https://cdn3.emoji.gg/emojis/8597-discord-channel-from-vega.png"
)

type slowmodeArgs struct {
	Seconds int `validate:"min=0,max=21600"`
}

type SlowmodeCommand struct{}

func (c *SlowmodeCommand) Name() string        { return "slowmode" }
func (c *SlowmodeCommand) Description() string { return "Set the slow mode delay for the current channel" }
func (c *SlowmodeCommand) Help() string        { return "🐌 Set the slow mode delay for the current channel" }
func (c *SlowmodeCommand) Group() string       { return "moderation" }
func (c *SlowmodeCommand) Category() string    { return "🛡️ Moderation" }
func (c *SlowmodeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageChannels}
}

func (c *SlowmodeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionManageChannels)
	minSeconds := 0.0
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "seconds",
				Description: "Delay between messages in seconds (0 turns slow mode off)",
				Required:    true,
				MinValue:    &minSeconds,
				MaxValue:    maxSlowmode,
			},
		},
	}
}

func (c *SlowmodeCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	args := slowmodeArgs{Seconds: int(command.OptionsOf(e).Int("seconds", 0))}
	if err := command.ValidateArgs(args); err != nil {
		_ = bot.RespondError(s, e, "❌ Error", fmt.Sprintf("Slow mode must be between 0 and %d seconds.", maxSlowmode))
		return err
	}

	if _, err := s.ChannelEdit(e.ChannelID, &discordgo.ChannelEdit{RateLimitPerUser: &args.Seconds}); err != nil {
		err = command.Classify(err)
		msg := command.Describe(err)
		if errors.Is(err, command.ErrForbidden) {
			msg = "I do not have permission to set slow mode in this channel."
		}
		_ = bot.RespondError(s, e, "❌ Error", msg)
		return err
	}

	invoker := command.Invoker(e)
	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:       "🐌 Slow Mode Set",
		Description: fmt.Sprintf("Slow mode has been set to %d seconds.", args.Seconds),
		Color:       bot.ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Set By", Value: mention(invoker), Inline: true},
			{Name: "Channel", Value: fmt.Sprintf("<#%s>", e.ChannelID), Inline: true},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: slowmodeThumbnail},
		Footer:    bot.ExecutedFooter("Slowmode Command Executed", invoker),
		Timestamp: bot.Timestamp(time.Now()),
	})
}

func init() {
	command.RegisterCommand(&SlowmodeCommand{}, middleware.Default()...)
}
