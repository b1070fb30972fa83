package moderation

import (
	"fmt"
	"strconv"
	"time"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/middleware"

	"github.com/bwmarrin/discordgo"
)

const (
	defaultPurgeAmount = 5
	// Discord refuses to bulk delete messages older than two weeks.
	bulkDeleteMaxAge = 14 * 24 * time.Hour
	bulkDeleteLimit  = 100
	purgeThumbnail   = "https://cdn-icons-png.flaticon.com/512/619/619034.png"
)

type purgeArgs struct {
	Amount int `validate:"min=1,max=100"`
}

type PurgeCommand struct {
	// Now is the clock used to tell bulk-deletable messages apart. Nil means time.Now.
	Now func() time.Time
}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Clear messages from the channel" }
func (c *PurgeCommand) Help() string        { return "🗑️ Clear messages from the channel" }
func (c *PurgeCommand) Group() string       { return "moderation" }
func (c *PurgeCommand) Category() string    { return "🧹 Cleanup" }
func (c *PurgeCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionAdministrator}
}

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	perms := int64(discordgo.PermissionAdministrator)
	return &discordgo.ApplicationCommand{
		Name:                     c.Name(),
		Description:              c.Description(),
		DefaultMemberPermissions: &perms,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many messages to clear (1-100, default 5)",
			},
		},
	}
}

func (c *PurgeCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	args := purgeArgs{Amount: int(command.OptionsOf(e).Int("amount", defaultPurgeAmount))}
	if err := command.ValidateArgs(args); err != nil {
		_ = bot.RespondError(s, e, "❌ Error", "Please provide a number between 1 and 100 for the amount to clear.")
		return err
	}

	if err := bot.RespondDeferredEphemeral(s, e); err != nil {
		return command.Classify(err)
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	deleted, err := purgeMessages(s, e.ChannelID, args.Amount+1, now())
	if err != nil {
		err = command.Classify(err)
		_ = bot.FollowupEmbedEphemeral(s, e, bot.ErrorEmbed("❌ Error", command.Describe(err)))
		return err
	}

	invoker := command.Invoker(e)
	return bot.FollowupEmbedEphemeral(s, e, &discordgo.MessageEmbed{
		Title:       "🧹 Messages Cleared",
		Description: "messages have been cleared.",
		Color:       bot.ColorGreen,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: purgeThumbnail},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🧹 Purged By", Value: mention(invoker), Inline: true},
			{Name: "🗑️ Number of Messages", Value: strconv.Itoa(max(deleted-1, 0)), Inline: true},
		},
		Footer:    bot.ExecutedFooter("Purge Command Executed", invoker),
		Timestamp: bot.Timestamp(now()),
	})
}

// purgeMessages deletes up to limit of the newest messages in a channel and
// returns how many were deleted. Recent messages go through bulk delete in
// batches of at most 100; older ones are deleted one at a time.
func purgeMessages(s bot.Session, channelID string, limit int, now time.Time) (int, error) {
	msgs, err := fetchMessages(s, channelID, limit)
	if err != nil {
		return 0, err
	}

	var recent, old []string
	for _, m := range msgs {
		if now.Sub(m.Timestamp) < bulkDeleteMaxAge {
			recent = append(recent, m.ID)
		} else {
			old = append(old, m.ID)
		}
	}

	deleted := 0
	for start := 0; start < len(recent); start += bulkDeleteLimit {
		batch := recent[start:min(start+bulkDeleteLimit, len(recent))]
		if len(batch) == 1 {
			err = s.ChannelMessageDelete(channelID, batch[0])
		} else {
			err = s.ChannelMessagesBulkDelete(channelID, batch)
		}
		if err != nil {
			return deleted, fmt.Errorf("delete messages: %w", err)
		}
		deleted += len(batch)
	}
	for _, id := range old {
		if err := s.ChannelMessageDelete(channelID, id); err != nil {
			return deleted, fmt.Errorf("delete message %s: %w", id, err)
		}
		deleted++
	}
	return deleted, nil
}

// fetchMessages pages back through channel history, newest first.
func fetchMessages(s bot.Session, channelID string, limit int) ([]*discordgo.Message, error) {
	var out []*discordgo.Message
	before := ""
	for len(out) < limit {
		page, err := s.ChannelMessages(channelID, min(limit-len(out), bulkDeleteLimit), before, "", "")
		if err != nil {
			return out, fmt.Errorf("fetch messages: %w", err)
		}
		if len(page) == 0 {
			break
		}
		out = append(out, page...)
		before = page[len(page)-1].ID
	}
	return out, nil
}

func init() {
	command.RegisterCommand(&PurgeCommand{}, middleware.Default()...)
}
