package pager

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store keeps open viewers by session ID. It holds at most capacity viewers,
// evicting the least recently used, and drops viewers idle for longer than
// ttl. A ttl of zero keeps viewers until they are evicted.
type Store struct {
	cache *expirable.LRU[string, *Viewer]
}

// NewStore returns an empty store.
func NewStore(capacity int, ttl time.Duration) *Store {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Store{cache: expirable.NewLRU[string, *Viewer](capacity, nil, ttl)}
}

// Open stores v under a fresh session ID.
func (s *Store) Open(v *Viewer) string {
	id := uuid.NewString()
	s.cache.Add(id, v)
	return id
}

// Get returns the viewer for id, if it is still open.
func (s *Store) Get(id string) (*Viewer, bool) {
	return s.cache.Get(id)
}

// Touch restarts the idle timer of an open viewer.
func (s *Store) Touch(id string) {
	if v, ok := s.cache.Peek(id); ok {
		s.cache.Add(id, v)
	}
}

// Close forgets a viewer.
func (s *Store) Close(id string) {
	s.cache.Remove(id)
}

// Len is the number of open viewers.
func (s *Store) Len() int {
	return s.cache.Len()
}
