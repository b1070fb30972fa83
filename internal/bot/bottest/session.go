// Package bottest provides an in-memory bot.Session for handler tests.
package bottest

import (
	"sort"
	"sync"

	"modbot/internal/bot"

	"github.com/bwmarrin/discordgo"
)

var _ bot.Session = (*Session)(nil)

// Removal records a kick or a ban.
type Removal struct {
	GuildID string
	UserID  string
	Reason  string
	Days    int
}

// Session records every call made through it. Channel history lives in
// Messages, newest first, the order Discord returns it in.
type Session struct {
	mu sync.Mutex

	Responses    []*discordgo.InteractionResponse
	Followups    []*discordgo.WebhookParams
	Sent         map[string][]string
	Messages     map[string][]*discordgo.Message
	BulkDeleted  [][]string
	Deleted      []string
	ChannelEdits map[string]*discordgo.ChannelEdit
	Kicks        []Removal
	Bans         []Removal
	Guild        *discordgo.Guild
	Roles        []*discordgo.Role

	// Errors makes the named method fail with the given error.
	Errors map[string]error
}

// New returns an empty fake session.
func New() *Session {
	return &Session{
		Sent:         map[string][]string{},
		Messages:     map[string][]*discordgo.Message{},
		ChannelEdits: map[string]*discordgo.ChannelEdit{},
		Errors:       map[string]error{},
	}
}

// LastResponse returns the most recent interaction response, or nil.
func (s *Session) LastResponse() *discordgo.InteractionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Responses) == 0 {
		return nil
	}
	return s.Responses[len(s.Responses)-1]
}

// LastFollowup returns the most recent followup, or nil.
func (s *Session) LastFollowup() *discordgo.WebhookParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Followups) == 0 {
		return nil
	}
	return s.Followups[len(s.Followups)-1]
}

// DeletedCount is the number of messages removed by bulk or single deletes.
func (s *Session) DeletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.Deleted)
	for _, batch := range s.BulkDeleted {
		n += len(batch)
	}
	return n
}

func (s *Session) fail(method string) error {
	return s.Errors[method]
}

func (s *Session) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InteractionRespond"); err != nil {
		return err
	}
	s.Responses = append(s.Responses, resp)
	return nil
}

func (s *Session) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("FollowupMessageCreate"); err != nil {
		return nil, err
	}
	s.Followups = append(s.Followups, data)
	return &discordgo.Message{Content: data.Content, Embeds: data.Embeds}, nil
}

func (s *Session) ChannelMessageSend(channelID, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ChannelMessageSend"); err != nil {
		return nil, err
	}
	s.Sent[channelID] = append(s.Sent[channelID], content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

// ChannelMessages returns up to limit of the newest messages in the channel,
// older than beforeID when it is set. afterID and aroundID are ignored.
func (s *Session) ChannelMessages(channelID string, limit int, beforeID, _, _ string, _ ...discordgo.RequestOption) ([]*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ChannelMessages"); err != nil {
		return nil, err
	}
	msgs := s.Messages[channelID]
	if beforeID != "" {
		for i, m := range msgs {
			if m.ID == beforeID {
				msgs = msgs[i+1:]
				break
			}
		}
	}
	if limit > 0 && limit < len(msgs) {
		msgs = msgs[:limit]
	}
	return append([]*discordgo.Message(nil), msgs...), nil
}

func (s *Session) ChannelMessagesBulkDelete(channelID string, messages []string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ChannelMessagesBulkDelete"); err != nil {
		return err
	}
	s.BulkDeleted = append(s.BulkDeleted, append([]string(nil), messages...))
	s.remove(channelID, messages...)
	return nil
}

func (s *Session) ChannelMessageDelete(channelID, messageID string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ChannelMessageDelete"); err != nil {
		return err
	}
	s.Deleted = append(s.Deleted, messageID)
	s.remove(channelID, messageID)
	return nil
}

func (s *Session) remove(channelID string, ids ...string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.Messages[channelID][:0]
	for _, m := range s.Messages[channelID] {
		if !drop[m.ID] {
			kept = append(kept, m)
		}
	}
	s.Messages[channelID] = kept
}

func (s *Session) ChannelEdit(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("ChannelEdit"); err != nil {
		return nil, err
	}
	s.ChannelEdits[channelID] = data
	ch := &discordgo.Channel{ID: channelID}
	if data.RateLimitPerUser != nil {
		ch.RateLimitPerUser = *data.RateLimitPerUser
	}
	return ch, nil
}

func (s *Session) GuildMemberDeleteWithReason(guildID, userID, reason string, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GuildMemberDeleteWithReason"); err != nil {
		return err
	}
	s.Kicks = append(s.Kicks, Removal{GuildID: guildID, UserID: userID, Reason: reason})
	return nil
}

func (s *Session) GuildBanCreateWithReason(guildID, userID, reason string, days int, _ ...discordgo.RequestOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GuildBanCreateWithReason"); err != nil {
		return err
	}
	s.Bans = append(s.Bans, Removal{GuildID: guildID, UserID: userID, Reason: reason, Days: days})
	return nil
}

func (s *Session) GuildWithCounts(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GuildWithCounts"); err != nil {
		return nil, err
	}
	if s.Guild == nil {
		return &discordgo.Guild{ID: guildID}, nil
	}
	return s.Guild, nil
}

// GuildRoles returns the configured roles sorted by position, highest last.
func (s *Session) GuildRoles(_ string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GuildRoles"); err != nil {
		return nil, err
	}
	roles := append([]*discordgo.Role(nil), s.Roles...)
	sort.Slice(roles, func(i, j int) bool { return roles[i].Position < roles[j].Position })
	return roles, nil
}
