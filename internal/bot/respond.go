package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Embed colors, matching the palette users know from the original bot.
const (
	ColorBlue   = 0x3498db
	ColorGreen  = 0x2ecc71
	ColorOrange = 0xe67e22
	ColorRed    = 0xe74c3c
)

// --- Interaction responses ---

// RespondEmbed sends a public embed response to an interaction.
func RespondEmbed(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondEmbedEphemeral sends an embed only the invoking user can see.
func RespondEmbedEphemeral(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags:  discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// RespondEphemeral sends a plain ephemeral message.
func RespondEphemeral(s Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbedWithComponents sends an embed plus message components.
func RespondEmbedWithComponents(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// UpdateMessage replaces the embed and components of the message a component
// interaction came from.
func UpdateMessage(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// RespondDeferredEphemeral acknowledges an interaction ephemerally without an immediate reply.
func RespondDeferredEphemeral(s Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// --- Followup messages ---

// FollowupEmbedEphemeral sends an ephemeral embed followup message.
func FollowupEmbedEphemeral(s Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	return err
}

// --- Embeds ---

// ErrorEmbed is the red embed every command uses to report a failure.
func ErrorEmbed(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       ColorRed,
	}
}

// RespondError reports a failure to the invoking user only.
func RespondError(s Session, i *discordgo.InteractionCreate, title, description string) error {
	return RespondEmbedEphemeral(s, i, ErrorEmbed(title, description))
}

// ExecutedFooter is the "<Command> Command Executed" footer stamped with the
// invoker's avatar.
func ExecutedFooter(text string, invoker *discordgo.User) *discordgo.MessageEmbedFooter {
	footer := &discordgo.MessageEmbedFooter{Text: text}
	if invoker != nil {
		footer.IconURL = invoker.AvatarURL("")
	}
	return footer
}

// Timestamp formats t the way embeds expect it.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
