// Package settings holds the bot's mutable runtime settings.
//
// Reads are open to everyone. Writes are restricted to the owner identity
// the Settings was created with; any other caller gets ErrNotOwner and the
// value is left unchanged. Nothing here survives a restart.
package settings

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// DefaultPrefix is the legacy text-command prefix.
	DefaultPrefix   = "+"
	MaxPrefixLength = 16
)

var (
	ErrNotOwner      = errors.New("only the bot owner can change settings")
	ErrInvalidPrefix = errors.New("prefix must be 1 to 16 characters with no whitespace")
)

type Settings struct {
	mu      sync.RWMutex
	ownerID string
	prefix  string
}

// New returns settings owned by ownerID. An empty prefix means DefaultPrefix.
func New(ownerID, prefix string) *Settings {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Settings{ownerID: ownerID, prefix: prefix}
}

// IsOwner reports whether userID may change settings.
func (s *Settings) IsOwner(userID string) bool {
	return userID != "" && userID == s.ownerID
}

// Prefix returns the current command prefix.
func (s *Settings) Prefix() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefix
}

// SetPrefix changes the prefix on behalf of actorID and returns the previous one.
func (s *Settings) SetPrefix(actorID, prefix string) (string, error) {
	if !s.IsOwner(actorID) {
		return s.Prefix(), ErrNotOwner
	}
	if prefix == "" || utf8.RuneCountInString(prefix) > MaxPrefixLength || strings.ContainsAny(prefix, " \t\r\n") {
		return s.Prefix(), ErrInvalidPrefix
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.prefix
	s.prefix = prefix
	return old, nil
}
