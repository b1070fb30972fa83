package info

import (
	"fmt"
	"time"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

type AvatarCommand struct{}

func (c *AvatarCommand) Name() string             { return "avatar" }
func (c *AvatarCommand) Description() string      { return "Get a user's avatar" }
func (c *AvatarCommand) Help() string             { return "🖼️ Get a user's avatar" }
func (c *AvatarCommand) Group() string            { return "info" }
func (c *AvatarCommand) Category() string         { return "🕯️ Information" }
func (c *AvatarCommand) UserPermissions() []int64 { return []int64{} }

func (c *AvatarCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "Whose avatar to show (defaults to you)",
			},
		},
	}
}

func (c *AvatarCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	user := command.ResolveUser(e, command.OptionsOf(e), "user")
	if user == nil {
		user = command.Invoker(e)
	}
	if user == nil {
		_ = bot.RespondError(s, e, "❌ Error", "I could not find that user.")
		return fmt.Errorf("%w: no user to show", command.ErrNotFound)
	}

	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("🖼️ Avatar of %s", user.Username),
		Color:     bot.ColorBlue,
		Image:     &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
		Timestamp: bot.Timestamp(time.Now()),
	})
}

func init() {
	command.RegisterCommand(
		&AvatarCommand{},
		middleware.WithAuthorization(),
		middleware.WithCommandLogger(),
	)
}
