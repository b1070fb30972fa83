package command

import (
	"github.com/bwmarrin/discordgo"
)

// Options indexes the top-level options of a slash command by name.
type Options map[string]*discordgo.ApplicationCommandInteractionDataOption

// OptionsOf returns the options of a slash command interaction.
func OptionsOf(e *discordgo.InteractionCreate) Options {
	opts := Options{}
	if e == nil || e.Type != discordgo.InteractionApplicationCommand {
		return opts
	}
	for _, opt := range e.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}
	return opts
}

// Int returns the integer option, or def when absent.
func (o Options) Int(name string, def int64) int64 {
	if opt, ok := o[name]; ok {
		return opt.IntValue()
	}
	return def
}

// String returns the string option, or def when absent or empty.
func (o Options) String(name, def string) string {
	if opt, ok := o[name]; ok {
		if v := opt.StringValue(); v != "" {
			return v
		}
	}
	return def
}

// UserID returns the snowflake of a user option, or "" when absent.
func (o Options) UserID(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	if id, ok := opt.Value.(string); ok {
		return id
	}
	return ""
}

// ResolveUser looks up a user option in the interaction's resolved data.
func ResolveUser(e *discordgo.InteractionCreate, opts Options, name string) *discordgo.User {
	id := opts.UserID(name)
	if id == "" {
		return nil
	}
	data := e.ApplicationCommandData()
	if data.Resolved == nil {
		return nil
	}
	if u, ok := data.Resolved.Users[id]; ok {
		return u
	}
	return nil
}

// ResolveMember looks up a member option in the interaction's resolved data.
// Resolved members carry no User, so it is filled in when known.
func ResolveMember(e *discordgo.InteractionCreate, opts Options, name string) *discordgo.Member {
	id := opts.UserID(name)
	if id == "" {
		return nil
	}
	data := e.ApplicationCommandData()
	if data.Resolved == nil {
		return nil
	}
	m, ok := data.Resolved.Members[id]
	if !ok {
		return nil
	}
	if m.User == nil {
		m.User = data.Resolved.Users[id]
	}
	return m
}

// Invoker returns the user behind an interaction, in a guild or in DMs.
func Invoker(e *discordgo.InteractionCreate) *discordgo.User {
	if e == nil {
		return nil
	}
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	return e.User
}
