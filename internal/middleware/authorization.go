package middleware

import (
	"context"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/pkg/cmd"
)

// WithAuthorization runs the authorization guard before the command. A denied
// caller gets an ephemeral explanation and the command body never runs.
func WithAuthorization() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			var auth command.Authorization
			var respond func(string) error

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				auth = command.Authorize(c, command.ActorFromInteraction(v.Event), v.Settings)
				respond = func(msg string) error {
					return bot.RespondEmbedEphemeral(v.Session, v.Event, bot.ErrorEmbed("❌ Permission Denied", msg))
				}
			case *command.ComponentInteractionContext:
				auth = command.Authorize(c, command.ActorFromInteraction(v.Event), v.Settings)
				respond = func(msg string) error {
					return bot.RespondEmbedEphemeral(v.Session, v.Event, bot.ErrorEmbed("❌ Permission Denied", msg))
				}
			default:
				return c.Run(ctx, inv)
			}

			if auth.Allowed() {
				return c.Run(ctx, inv)
			}
			if err := respond(auth.Message()); err != nil {
				return command.Classify(err)
			}
			return auth.Err()
		})
	}
}
