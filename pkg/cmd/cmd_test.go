package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCommand struct {
	name string
	ran  int
}

func (s *stubCommand) Name() string        { return s.name }
func (s *stubCommand) Description() string { return s.name + " description" }
func (s *stubCommand) Run(context.Context, *Invocation) error {
	s.ran++
	return nil
}

func TestRegistry_OrderedKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubCommand{name: "purge"})
	r.Register(&stubCommand{name: "avatar"})
	r.Register(&stubCommand{name: "kick"})
	r.Register(&stubCommand{name: "avatar"})

	var ordered, sorted []string
	for _, c := range r.Ordered() {
		ordered = append(ordered, c.Name())
	}
	for _, c := range r.GetAll() {
		sorted = append(sorted, c.Name())
	}

	assert.Equal(t, []string{"purge", "avatar", "kick"}, ordered)
	assert.Equal(t, []string{"avatar", "kick", "purge"}, sorted)
	assert.Equal(t, 3, r.Len())
	assert.Nil(t, r.Get("ban"))
}

func TestApply_LastMiddlewareIsOutermost(t *testing.T) {
	var trace []string
	mark := func(label string) Middleware {
		return func(c Command) Command {
			return Wrap(c, func(ctx context.Context, inv *Invocation) error {
				trace = append(trace, label)
				return c.Run(ctx, inv)
			})
		}
	}

	inner := &stubCommand{name: "help"}
	wrapped := Apply(inner, mark("first"), mark("second"))

	require.NoError(t, wrapped.Run(context.Background(), &Invocation{}))
	assert.Equal(t, []string{"second", "first"}, trace)
	assert.Equal(t, 1, inner.ran)
	assert.Same(t, inner, Root(wrapped))
	assert.Equal(t, "help", wrapped.Name())
}
