package settings

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_SetPrefix(t *testing.T) {
	tests := []struct {
		name    string
		actor   string
		prefix  string
		wantErr error
		want    string
	}{
		{name: "owner changes prefix", actor: "42", prefix: "!", want: "!"},
		{name: "non-owner is rejected", actor: "7", prefix: "!", wantErr: ErrNotOwner, want: "+"},
		{name: "anonymous is rejected", actor: "", prefix: "!", wantErr: ErrNotOwner, want: "+"},
		{name: "empty prefix", actor: "42", prefix: "", wantErr: ErrInvalidPrefix, want: "+"},
		{name: "whitespace prefix", actor: "42", prefix: "a b", wantErr: ErrInvalidPrefix, want: "+"},
		{name: "too long", actor: "42", prefix: "abcdefghijklmnopq", wantErr: ErrInvalidPrefix, want: "+"},
		{name: "sixteen runes", actor: "42", prefix: "🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹", want: "🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹🔹"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("42", "")
			old, err := s.SetPrefix(tt.actor, tt.prefix)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, "+", old)
			assert.Equal(t, tt.want, s.Prefix())
		})
	}
}

func TestSettings_ConcurrentAccess(t *testing.T) {
	s := New("42", "?")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.SetPrefix("42", "!")
		}()
		go func() {
			defer wg.Done()
			_ = s.Prefix()
		}()
	}
	wg.Wait()
	assert.Equal(t, "!", s.Prefix())
}
