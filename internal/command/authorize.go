package command

import (
	"fmt"
	"strings"

	"modbot/internal/settings"
	"modbot/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// Decision is the outcome of the authorization guard.
type Decision int

const (
	Allowed Decision = iota
	DeniedMissingPermission
	DeniedNotOwner
	DeniedOutsideGuild
)

// Authorization is the typed result of Authorize.
type Authorization struct {
	Decision Decision
	// Required lists the permissions of which the caller holds none.
	Required []int64
}

func (a Authorization) Allowed() bool { return a.Decision == Allowed }

// Err returns nil when allowed, otherwise an error wrapping ErrPermissionDenied.
func (a Authorization) Err() error {
	if a.Allowed() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrPermissionDenied, a.Message())
}

// Message is the user-facing explanation of a denial.
func (a Authorization) Message() string {
	switch a.Decision {
	case DeniedNotOwner:
		return "Only the bot owner can use this command."
	case DeniedOutsideGuild:
		return "This command can only be used in a server."
	case DeniedMissingPermission:
		names := make([]string, 0, len(a.Required))
		for _, p := range a.Required {
			names = append(names, PermissionName(p))
		}
		return fmt.Sprintf("You need at least one of the following permissions to run this command:\n`%s`",
			strings.Join(names, "`, `"))
	default:
		return ""
	}
}

// Actor is who is invoking a command and what they hold in the channel.
type Actor struct {
	UserID      string
	GuildID     string
	Permissions int64
}

// ActorFromInteraction extracts the caller from an interaction. Member
// permissions are the ones Discord computed for the interaction's channel.
func ActorFromInteraction(e *discordgo.InteractionCreate) Actor {
	a := Actor{GuildID: e.GuildID}
	if u := Invoker(e); u != nil {
		a.UserID = u.ID
	}
	if e.Member != nil {
		a.Permissions = e.Member.Permissions
	}
	return a
}

// Authorize is the single guard every command passes through before it runs.
// Owner-only commands admit exactly the owner. Other commands admit callers
// holding any of the command's permissions, administrators always pass, and
// commands without requirements are open.
func Authorize(c cmd.Command, actor Actor, s *settings.Settings) Authorization {
	meta, ok := Meta(c)
	if !ok {
		return Authorization{Decision: Allowed}
	}

	if meta.OwnerOnly() {
		if s != nil && s.IsOwner(actor.UserID) {
			return Authorization{Decision: Allowed}
		}
		return Authorization{Decision: DeniedNotOwner}
	}

	required := meta.UserPermissions()
	if len(required) == 0 {
		return Authorization{Decision: Allowed}
	}
	if actor.GuildID == "" {
		return Authorization{Decision: DeniedOutsideGuild}
	}
	if actor.Permissions&discordgo.PermissionAdministrator != 0 {
		return Authorization{Decision: Allowed}
	}
	for _, p := range required {
		if actor.Permissions&p != 0 {
			return Authorization{Decision: Allowed}
		}
	}
	return Authorization{Decision: DeniedMissingPermission, Required: required}
}

var permissionNames = map[int64]string{
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageChannels:  "Manage Channels",
	discordgo.PermissionManageGuild:     "Manage Server",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionModerateMembers: "Moderate Members",
}

// PermissionName returns a readable permission name, or its hex value.
func PermissionName(p int64) string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}
