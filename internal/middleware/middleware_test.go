package middleware

import (
	"context"
	"testing"

	"modbot/internal/bot/bottest"
	"modbot/internal/command"
	"modbot/internal/settings"
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kickLike struct{ runs int }

func (k *kickLike) Name() string             { return "kick" }
func (k *kickLike) Description() string      { return "Kick a user" }
func (k *kickLike) Group() string            { return "test" }
func (k *kickLike) Category() string         { return "🛡️ Moderation" }
func (k *kickLike) UserPermissions() []int64 { return []int64{discordgo.PermissionKickMembers} }
func (k *kickLike) Run(interface{}) error {
	k.runs++
	return nil
}

func slash(guildID string, perms int64) *discordgo.InteractionCreate {
	i := &discordgo.Interaction{
		Type:      discordgo.InteractionApplicationCommand,
		GuildID:   guildID,
		ChannelID: "c1",
		Data:      discordgo.ApplicationCommandInteractionData{Name: "kick"},
	}
	if guildID != "" {
		i.Member = &discordgo.Member{User: &discordgo.User{ID: "u1", Username: "mod"}, Permissions: perms}
	} else {
		i.User = &discordgo.User{ID: "u1", Username: "mod"}
	}
	return &discordgo.InteractionCreate{Interaction: i}
}

func run(t *testing.T, c cmd.Command, s *bottest.Session, e *discordgo.InteractionCreate) error {
	t.Helper()
	return c.Run(context.Background(), &cmd.Invocation{Data: &command.SlashInteractionContext{
		Session:  s,
		Event:    e,
		Settings: settings.New("42", "+"),
	}})
}

func register(k *kickLike) cmd.Command {
	r := cmd.NewRegistry()
	command.RegisterCommandTo(r, k, Default()...)
	return r.Get("kick")
}

func TestWithAuthorization_DeniesWithoutPermission(t *testing.T) {
	k := &kickLike{}
	s := bottest.New()

	err := run(t, register(k), s, slash("g1", discordgo.PermissionSendMessages))

	require.ErrorIs(t, err, command.ErrPermissionDenied)
	assert.Zero(t, k.runs)
	resp := s.LastResponse()
	require.NotNil(t, resp)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	require.Len(t, resp.Data.Embeds, 1)
	assert.Equal(t, "❌ Permission Denied", resp.Data.Embeds[0].Title)
	assert.Contains(t, resp.Data.Embeds[0].Description, "Kick Members")
}

func TestWithAuthorization_AllowsHolder(t *testing.T) {
	k := &kickLike{}
	s := bottest.New()

	require.NoError(t, run(t, register(k), s, slash("g1", discordgo.PermissionKickMembers)))
	assert.Equal(t, 1, k.runs)
	assert.Empty(t, s.Responses)
}

func TestWithGuildOnly_RefusesDM(t *testing.T) {
	k := &kickLike{}
	s := bottest.New()
	c := cmd.Apply(&command.DiscordAdapter{Cmd: k}, WithGuildOnly())

	require.NoError(t, run(t, c, s, slash("", 0)))
	assert.Zero(t, k.runs)
	resp := s.LastResponse()
	require.NotNil(t, resp)
	assert.Contains(t, resp.Data.Embeds[0].Description, "only be used in a server")
}
