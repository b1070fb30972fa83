package info

import (
	"fmt"
	"strconv"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"
	"modbot/pkg/util"

	"github.com/bwmarrin/discordgo"
)

const dateTimeTpl = "YYYY-MM-DD hh:mm:ss"

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string             { return "serverinfo" }
func (c *ServerInfoCommand) Description() string      { return "Get information about the server" }
func (c *ServerInfoCommand) Help() string             { return "ℹ️ Get information about the server" }
func (c *ServerInfoCommand) Group() string            { return "info" }
func (c *ServerInfoCommand) Category() string         { return "🕯️ Information" }
func (c *ServerInfoCommand) UserPermissions() []int64 { return []int64{} }

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ServerInfoCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	guild, err := s.GuildWithCounts(e.GuildID)
	if err != nil {
		err = command.Classify(err)
		_ = bot.RespondError(s, e, "❌ Error", command.Describe(err))
		return err
	}

	members := guild.ApproximateMemberCount
	if members == 0 {
		members = guild.MemberCount
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Server Info - %s", guild.Name),
		Color: bot.ColorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID)},
			{Name: "Members", Value: strconv.Itoa(members)},
			{Name: "Created At", Value: snowflakeTime(guild.ID)},
		},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}
	return bot.RespondEmbed(s, e, embed)
}

// snowflakeTime renders the creation time encoded in a Discord ID.
func snowflakeTime(id string) string {
	t, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return "unknown"
	}
	return util.FormatTimeTpl(t.UTC(), dateTimeTpl)
}

func init() {
	command.RegisterCommand(&ServerInfoCommand{}, middleware.Default()...)
}
