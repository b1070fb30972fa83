package core

import (
	"fmt"
	"sort"
	"strings"

	"modbot/internal/bot"
	"modbot/internal/command"
	"modbot/internal/config"
	"modbot/internal/pager"
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

const (
	helpTitle       = "🔹 Help - Commands List 🔹"
	helpDescription = "Here are the available commands you can use:"
	legacyHelp      = "I use slash commands now. Type `/help` to see everything I can do."

	// Button custom IDs look like help:next:<session id>.
	helpPrefix = "help:"
	actionPrev = "prev"
	actionNext = "next"
)

// HelpCommand shows every other command in a paginated, ephemeral embed with
// Previous/Next buttons only its invoker can press.
type HelpCommand struct {
	Registry *cmd.Registry
	Store    *pager.Store
	PageSize int
}

// NewHelpCommand returns the help command listing the default registry.
func NewHelpCommand(store *pager.Store, pageSize int) *HelpCommand {
	return &HelpCommand{Registry: cmd.DefaultRegistry, Store: store, PageSize: pageSize}
}

func (c *HelpCommand) Name() string             { return "help" }
func (c *HelpCommand) Description() string      { return "List all commands and their descriptions" }
func (c *HelpCommand) Group() string            { return "core" }
func (c *HelpCommand) Category() string         { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 { return []int64{} }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

// Message answers "<prefix>help" with a pointer to the slash command.
func (c *HelpCommand) Message(ctx *command.MessageContext) error {
	_, err := ctx.Session.ChannelMessageSend(ctx.Event.ChannelID, legacyHelp)
	return command.Classify(err)
}

func (c *HelpCommand) Run(ctx interface{}) error {
	context, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil
	}
	s, e := context.Session, context.Event

	owner := ""
	if u := command.Invoker(e); u != nil {
		owner = u.ID
	}

	pages := pager.Paginate(helpTitle, helpDescription, HelpEntries(c.Registry), c.PageSize)
	viewer, err := pager.NewViewer(owner, pages)
	if err != nil {
		_ = bot.RespondError(s, e, "❌ Error", "There are no commands to show.")
		return err
	}
	id := c.Store.Open(viewer)

	view := viewer.Current()
	if err := bot.RespondEmbedWithComponents(s, e, helpEmbed(view, context.Self), helpButtons(id, view), true); err != nil {
		c.Store.Close(id)
		return command.Classify(err)
	}
	return nil
}

func (c *HelpCommand) Component(ctx *command.ComponentInteractionContext) error {
	s, e := ctx.Session, ctx.Event

	action, id, ok := parseCustomID(e.MessageComponentData().CustomID)
	if !ok {
		return nil
	}

	viewer, ok := c.Store.Get(id)
	if !ok {
		return bot.RespondEphemeral(s, e, "This help menu has expired. Run /help again.")
	}
	if u := command.Invoker(e); u == nil || u.ID != viewer.Owner() {
		return bot.RespondError(s, e, "❌ Permission Denied", "Only the user who opened this help menu can turn its pages.")
	}

	var view pager.View
	switch action {
	case actionNext:
		view = viewer.Advance()
	case actionPrev:
		view = viewer.Retreat()
	default:
		view = viewer.Current()
	}
	c.Store.Touch(id)

	if err := bot.UpdateMessage(s, e, helpEmbed(view, ctx.Self), helpButtons(id, view)); err != nil {
		return command.Classify(err)
	}
	return nil
}

// HelpEntries lists every command except help, ordered by category weight
// and then by name.
func HelpEntries(r *cmd.Registry) []pager.Entry {
	type item struct {
		weight int
		name   string
		help   string
	}
	var items []item
	for _, c := range r.Ordered() {
		meta, ok := command.Meta(c)
		if !ok || meta.Name() == "help" {
			continue
		}
		items = append(items, item{
			weight: config.CategoryWeight(meta.Category()),
			name:   meta.Name(),
			help:   meta.Help(),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].weight != items[j].weight {
			return items[i].weight < items[j].weight
		}
		return items[i].name < items[j].name
	})

	entries := make([]pager.Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, pager.Entry{Name: "/" + it.name, Description: it.help})
	}
	return entries
}

func helpEmbed(view pager.View, self *discordgo.User) *discordgo.MessageEmbed {
	page := view.Page
	embed := &discordgo.MessageEmbed{
		Title:       page.Title,
		Description: page.Description,
		Color:       bot.ColorBlue,
		Footer:      &discordgo.MessageEmbedFooter{Text: page.Footer},
	}
	for _, entry := range page.Entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  entry.Name,
			Value: entry.Description,
		})
	}
	if self != nil {
		avatar := self.AvatarURL("")
		embed.Author = &discordgo.MessageEmbedAuthor{Name: self.Username, IconURL: avatar}
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	}
	return embed
}

func helpButtons(id string, view pager.View) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Previous",
				Style:    discordgo.PrimaryButton,
				CustomID: customID(actionPrev, id),
				Disabled: !view.PrevEnabled,
			},
			discordgo.Button{
				Label:    "Next",
				Style:    discordgo.PrimaryButton,
				CustomID: customID(actionNext, id),
				Disabled: !view.NextEnabled,
			},
		}},
	}
}

func customID(action, id string) string {
	return fmt.Sprintf("%s%s:%s", helpPrefix, action, id)
}

func parseCustomID(s string) (action, id string, ok bool) {
	rest, found := strings.CutPrefix(s, helpPrefix)
	if !found {
		return "", "", false
	}
	action, id, found = strings.Cut(rest, ":")
	if !found || id == "" {
		return "", "", false
	}
	return action, id, true
}
