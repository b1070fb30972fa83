// Package cmd provides a transport-agnostic command core: a command is something
// with a name, description, and Run(ctx, invocation). Discord registration and
// dispatch live in adapters that wrap this.
package cmd

import "context"

// Invocation carries what a runner hands to a command. Data holds the adapter's
// own context (for Discord: the session plus the triggering event).
type Invocation struct {
	Args []string
	Data interface{}
}

// Command is the universal contract: identity plus execution.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
