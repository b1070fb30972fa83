package middleware

import (
	"context"
	"errors"
	"time"

	"modbot/internal/command"
	"modbot/internal/logging"
	"modbot/pkg/cmd"

	"github.com/rs/zerolog"
)

// WithCommandLogger wraps a command to log its execution.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)
			log := logging.Component("command")

			var ev *zerolog.Event
			switch {
			case err == nil:
				ev = log.Info()
			case errors.Is(err, command.ErrPermissionDenied), errors.Is(err, command.ErrValidation):
				ev = log.Warn().Err(err)
			default:
				ev = log.Error().Err(err)
			}

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				ev = withInteraction(ev, v.Event.GuildID, v.Event.ChannelID, command.Invoker(v.Event)).Str("kind", "slash")
			case *command.ComponentInteractionContext:
				ev = withInteraction(ev, v.Event.GuildID, v.Event.ChannelID, command.Invoker(v.Event)).Str("kind", "component")
			case *command.MessageContext:
				ev = ev.Str("kind", "message").Str("guild", v.Event.GuildID).Str("channel", v.Event.ChannelID)
				if v.Event.Author != nil {
					ev = ev.Str("user", v.Event.Author.ID)
				}
			}

			if meta, ok := command.Meta(c); ok {
				ev = ev.Str("group", meta.Group())
			}
			ev.Str("command", c.Name()).Dur("took", time.Since(start)).Msg("command executed")
			return err
		})
	}
}
