package info

import (
	"fmt"
	"time"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"
	"modbot/pkg/util"

	"github.com/bwmarrin/discordgo"
)

type UserInfoCommand struct{}

func (c *UserInfoCommand) Name() string             { return "userinfo" }
func (c *UserInfoCommand) Description() string      { return "Get information about a user" }
func (c *UserInfoCommand) Help() string             { return "👤 Get information about a user" }
func (c *UserInfoCommand) Group() string            { return "info" }
func (c *UserInfoCommand) Category() string         { return "🕯️ Information" }
func (c *UserInfoCommand) UserPermissions() []int64 { return []int64{} }

func (c *UserInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Who to look up (defaults to you)",
			},
		},
	}
}

func (c *UserInfoCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	member := command.ResolveMember(e, command.OptionsOf(e), "member")
	if member == nil {
		member = e.Member
	}
	if member == nil || member.User == nil {
		_ = bot.RespondError(s, e, "❌ Error", "That user is not a member of this server.")
		return fmt.Errorf("%w: member", command.ErrNotFound)
	}
	user := member.User

	roles, err := s.GuildRoles(e.GuildID)
	if err != nil {
		err = command.Classify(err)
		_ = bot.RespondError(s, e, "❌ Error", command.Describe(err))
		return err
	}
	top, color := topRole(member, roles)

	topMention := "@everyone"
	if top != nil {
		topMention = top.Mention()
	}
	joined := "unknown"
	if !member.JoinedAt.IsZero() {
		joined = util.FormatTimeTpl(member.JoinedAt.UTC(), dateTimeTpl)
	}

	avatar := user.AvatarURL("")
	invoker := command.Invoker(e)
	return bot.RespondEmbed(s, e, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("👤 User Info - %s", user.Username),
		Description: fmt.Sprintf("Here is the information about %s", user.Mention()),
		Color:       color,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: avatar},
		Author:      &discordgo.MessageEmbedAuthor{Name: user.Username, IconURL: avatar},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Username", Value: user.Username, Inline: true},
			{Name: "User ID", Value: user.ID, Inline: true},
			{Name: "Joined Server", Value: joined, Inline: true},
			{Name: "Joined Discord", Value: snowflakeTime(user.ID), Inline: true},
			{Name: "Top Role", Value: topMention, Inline: true},
		},
		Footer:    bot.ExecutedFooter("UserInfo Command Executed", invoker),
		Timestamp: bot.Timestamp(time.Now()),
	})
}

// topRole returns the member's highest role and the color of its highest
// colored role. Both are zero when the member has no roles.
func topRole(member *discordgo.Member, roles []*discordgo.Role) (*discordgo.Role, int) {
	held := make(map[string]bool, len(member.Roles))
	for _, id := range member.Roles {
		held[id] = true
	}

	var top, colored *discordgo.Role
	for _, r := range roles {
		if !held[r.ID] {
			continue
		}
		if top == nil || r.Position > top.Position {
			top = r
		}
		if r.Color != 0 && (colored == nil || r.Position > colored.Position) {
			colored = r
		}
	}
	if colored == nil {
		return top, 0
	}
	return top, colored.Color
}

func init() {
	command.RegisterCommand(&UserInfoCommand{}, middleware.Default()...)
}
