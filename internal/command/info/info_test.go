package info

import (
	"net/http"
	"testing"
	"time"

	"modbot/internal/bot/bottest"
	"modbot/internal/command"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 175928847299117063 was created at 2016-04-30 11:18:25.796 UTC.
const knownSnowflake = "175928847299117063"

func slashEvent(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   "g1",
		ChannelID: "c1",
		Member: &discordgo.Member{
			User:     &discordgo.User{ID: knownSnowflake, Username: "caller"},
			Roles:    []string{"r-low", "r-high", "r-plain"},
			JoinedAt: time.Date(2020, time.February, 3, 4, 5, 6, 0, time.UTC),
		},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: opts,
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users:   map[string]*discordgo.User{"other": {ID: "other", Username: "someone"}},
				Members: map[string]*discordgo.Member{"other": {Roles: []string{}}},
			},
		},
	}}
}

func userOpt(name string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: "other"}
}

func ctxFor(s *bottest.Session, e *discordgo.InteractionCreate) *command.SlashInteractionContext {
	return &command.SlashInteractionContext{Session: s, Event: e}
}

func TestAvatar(t *testing.T) {
	s := bottest.New()
	require.NoError(t, (&AvatarCommand{}).Run(ctxFor(s, slashEvent("avatar"))))
	assert.Equal(t, "🖼️ Avatar of caller", s.LastResponse().Data.Embeds[0].Title)
	assert.NotEmpty(t, s.LastResponse().Data.Embeds[0].Image.URL)

	require.NoError(t, (&AvatarCommand{}).Run(ctxFor(s, slashEvent("avatar", userOpt("user")))))
	assert.Equal(t, "🖼️ Avatar of someone", s.LastResponse().Data.Embeds[0].Title)
}

func TestAvatar_NoUser(t *testing.T) {
	s := bottest.New()
	e := slashEvent("avatar")
	e.Member = nil

	err := (&AvatarCommand{}).Run(ctxFor(s, e))

	require.ErrorIs(t, err, command.ErrNotFound)
	resp := s.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	assert.Equal(t, "❌ Error", resp.Data.Embeds[0].Title)
}

func TestServerInfo(t *testing.T) {
	s := bottest.New()
	s.Guild = &discordgo.Guild{ID: knownSnowflake, Name: "Mods", OwnerID: "7", ApproximateMemberCount: 321}

	require.NoError(t, (&ServerInfoCommand{}).Run(ctxFor(s, slashEvent("serverinfo"))))
	embed := s.LastResponse().Data.Embeds[0]
	assert.Equal(t, "Server Info - Mods", embed.Title)
	assert.Equal(t, "<@7>", embed.Fields[0].Value)
	assert.Equal(t, "321", embed.Fields[1].Value)
	assert.Equal(t, "2016-04-30 11:18:25", embed.Fields[2].Value)
	assert.Nil(t, embed.Thumbnail)
}

func TestServerInfo_NotFound(t *testing.T) {
	s := bottest.New()
	s.Errors["GuildWithCounts"] = &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound, Status: "404 Not Found"}}

	err := (&ServerInfoCommand{}).Run(ctxFor(s, slashEvent("serverinfo")))
	require.ErrorIs(t, err, command.ErrNotFound)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, s.LastResponse().Data.Flags)
}

func TestUserInfo(t *testing.T) {
	s := bottest.New()
	s.Roles = []*discordgo.Role{
		{ID: "r-high", Name: "Admin", Position: 9, Color: 0},
		{ID: "r-low", Name: "Member", Position: 1, Color: 0x00ff00},
		{ID: "r-plain", Name: "Helper", Position: 5, Color: 0xff0000},
		{ID: "r-other", Name: "Owner", Position: 20, Color: 0x0000ff},
	}

	require.NoError(t, (&UserInfoCommand{}).Run(ctxFor(s, slashEvent("userinfo"))))
	embed := s.LastResponse().Data.Embeds[0]
	assert.Equal(t, "👤 User Info - caller", embed.Title)
	assert.Equal(t, 0xff0000, embed.Color)

	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "caller", fields["Username"])
	assert.Equal(t, knownSnowflake, fields["User ID"])
	assert.Equal(t, "2020-02-03 04:05:06", fields["Joined Server"])
	assert.Equal(t, "2016-04-30 11:18:25", fields["Joined Discord"])
	assert.Equal(t, "<@&r-high>", fields["Top Role"])
}

func TestUserInfo_MemberWithoutRoles(t *testing.T) {
	s := bottest.New()
	require.NoError(t, (&UserInfoCommand{}).Run(ctxFor(s, slashEvent("userinfo", userOpt("member")))))

	embed := s.LastResponse().Data.Embeds[0]
	assert.Equal(t, "👤 User Info - someone", embed.Title)
	assert.Zero(t, embed.Color)
	assert.Equal(t, "@everyone", embed.Fields[4].Value)
	assert.Equal(t, "unknown", embed.Fields[2].Value)
}
