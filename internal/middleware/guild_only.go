package middleware

import (
	"context"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/pkg/cmd"
)

// WithGuildOnly wraps a command to refuse invocations from DMs.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				if v.Event.GuildID == "" {
					return bot.RespondEmbedEphemeral(v.Session, v.Event,
						bot.ErrorEmbed("❌ Error", "This command can only be used in a server."))
				}
			case *command.MessageContext:
				if v.Event.GuildID == "" {
					return nil
				}
			}
			return c.Run(ctx, inv)
		})
	}
}
