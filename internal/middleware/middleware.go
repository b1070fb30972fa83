// Package middleware holds the cmd.Middleware chain every Discord command is
// registered with: logging, the guild check and the authorization guard.
package middleware

import (
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Default is the chain commands register with, outermost last.
func Default() []cmd.Middleware {
	return []cmd.Middleware{WithGuildOnly(), WithAuthorization(), WithCommandLogger()}
}

func withInteraction(ev *zerolog.Event, guildID, channelID string, user *discordgo.User) *zerolog.Event {
	ev = ev.Str("guild", guildID).Str("channel", channelID)
	if user != nil {
		ev = ev.Str("user", user.ID).Str("username", user.Username)
	}
	return ev
}
