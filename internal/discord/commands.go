package discord

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"sync"

	"modbot/internal/command"
	"modbot/internal/logging"
	"modbot/pkg/cmd"
	"modbot/pkg/retrylimit"
	"modbot/pkg/util"

	"github.com/bwmarrin/discordgo"
)

// syncWorkers bounds how many guilds are synced at once.
const syncWorkers = 4

// commandAPI is the part of the session used to publish slash commands.
type commandAPI interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// commandSyncer publishes the registry's slash commands per guild. A guild is
// only overwritten when the definitions differ from what was last published,
// or is being published, to it during this process's lifetime.
type commandSyncer struct {
	api     commandAPI
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.RetryConfig

	mu     sync.Mutex
	hashes map[string]string
}

func newCommandSyncer(api commandAPI, limiter *retrylimit.AdaptiveLimiter) *commandSyncer {
	retry := retrylimit.DefaultRetryConfig()
	retry.MaxAttempts = 5
	return &commandSyncer{
		api:     api,
		limiter: limiter,
		retry:   retry,
		hashes:  make(map[string]string),
	}
}

// SyncAll publishes the commands to every guild, a few guilds at a time. A
// guild that fails does not stop the others; all failures are returned joined.
func (c *commandSyncer) SyncAll(ctx context.Context, appID string, guildIDs []string, defs []*discordgo.ApplicationCommand) error {
	var mu sync.Mutex
	var errs []error
	err := util.Parallel(ctx, guildIDs, syncWorkers, func(ctx context.Context, guildID string) error {
		if err := c.Sync(ctx, appID, guildID, defs); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
		return nil
	})
	return errors.Join(append(errs, err)...)
}

// Sync publishes the commands to one guild.
func (c *commandSyncer) Sync(ctx context.Context, appID, guildID string, defs []*discordgo.ApplicationCommand) error {
	log := logging.Component("discord")
	hash := hashCommands(defs)

	// The hash is claimed before publishing so a concurrent sync of the same
	// guild sees it and skips; it is rolled back if publishing fails.
	c.mu.Lock()
	prev, known := c.hashes[guildID]
	if known && prev == hash {
		c.mu.Unlock()
		log.Debug().Str("guild", guildID).Msg("slash commands unchanged")
		return nil
	}
	c.hashes[guildID] = hash
	c.mu.Unlock()

	err := retrylimit.WithRetryConfig(ctx, func() error {
		_, err := c.api.ApplicationCommandBulkOverwrite(appID, guildID, defs)
		return retryable(err)
	}, c.limiter, c.retry)
	if err != nil {
		c.mu.Lock()
		if c.hashes[guildID] == hash {
			if known {
				c.hashes[guildID] = prev
			} else {
				delete(c.hashes, guildID)
			}
		}
		c.mu.Unlock()
		return fmt.Errorf("sync commands for guild %s: %w", guildID, err)
	}

	log.Info().Str("guild", guildID).Int("commands", len(defs)).Msg("slash commands registered")
	return nil
}

// Forget drops what is known about a guild so the next sync publishes again.
func (c *commandSyncer) Forget(guildID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.hashes, guildID)
}

// commandDefinitions returns the slash definitions of every registered
// command, walking through middleware wrappers.
func commandDefinitions(r *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range r.GetAll() {
		slash, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		def := slash.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}

// apiError exposes the status of a Discord REST error to the retry loop.
type apiError struct {
	err    error
	status int
}

func (e *apiError) Error() string   { return e.err.Error() }
func (e *apiError) Unwrap() error   { return e.err }
func (e *apiError) StatusCode() int { return e.status }

// retryable marks client errors as fatal and passes rate-limit and server
// errors on with their status so they are retried.
func retryable(err error) error {
	if err == nil {
		return nil
	}
	var rl *discordgo.RateLimitError
	if errors.As(err, &rl) {
		return &apiError{err: err, status: http.StatusTooManyRequests}
	}
	var rest *discordgo.RESTError
	if errors.As(err, &rest) && rest.Response != nil {
		status := rest.Response.StatusCode
		if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
			return &retrylimit.FatalError{Err: err}
		}
		return &apiError{err: err, status: status}
	}
	return err
}

// hashCommands returns a deterministic SHA-1 of the definitions' stable fields.
func hashCommands(defs []*discordgo.ApplicationCommand) string {
	stable := make([]map[string]interface{}, 0, len(defs))
	for _, d := range defs {
		entry := map[string]interface{}{
			"name":        d.Name,
			"description": d.Description,
			"type":        d.Type,
		}
		if d.DefaultMemberPermissions != nil {
			entry["permissions"] = *d.DefaultMemberPermissions
		}
		if len(d.Options) > 0 {
			entry["options"] = normalizeOptions(d.Options)
		}
		stable = append(stable, entry)
	}
	sort.Slice(stable, func(i, j int) bool {
		return stable[i]["name"].(string) < stable[j]["name"].(string)
	})
	data, _ := json.Marshal(stable)
	return fmt.Sprintf("%x", sha1.Sum(data))
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if o.MinValue != nil {
			entry["min_value"] = *o.MinValue
		}
		if o.MaxValue != 0 {
			entry["max_value"] = o.MaxValue
		}
		if o.MinLength != nil {
			entry["min_length"] = *o.MinLength
		}
		if o.MaxLength != 0 {
			entry["max_length"] = o.MaxLength
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
