// Package presence rotates the bot's "playing" status between the server
// count and the current date and time.
package presence

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"modbot/internal/logging"
	"modbot/pkg/util"
)

// Updater sets the bot's game status. *discordgo.Session satisfies it.
type Updater interface {
	UpdateGameStatus(idle int, name string) error
}

// Step is one status update, applied After the start of its tick.
type Step struct {
	After  time.Duration
	Status string
}

// Plan returns the updates for a tick. Even ticks show the server count. Odd
// ticks show the date immediately and the time after hold, both taken from
// the same clock reading.
func Plan(tick uint64, now time.Time, guilds int, hold time.Duration) []Step {
	if tick%2 == 0 {
		return []Step{{Status: fmt.Sprintf("/help | %d servers", guilds)}}
	}
	return []Step{
		{Status: "Day: " + util.FormatTimeTpl(now, "DD/MM/YYYY")},
		{After: hold, Status: "Time: " + util.FormatTimeTpl(now, "hh:mm AP")},
	}
}

// Options configures a Rotator. Zero values fall back to the defaults.
type Options struct {
	Interval time.Duration
	Hold     time.Duration
	Location *time.Location
	// Guilds reports how many servers the bot is in.
	Guilds func() int

	// Now and After replace the wall clock in tests.
	Now   func() time.Time
	After func(time.Duration) <-chan time.Time
}

const (
	DefaultInterval = 10 * time.Second
	DefaultHold     = 5 * time.Second
)

// Rotator is a two-state machine driven by a ticker. Ticks never overlap.
type Rotator struct {
	updater Updater
	opts    Options

	mu   sync.Mutex
	tick uint64
}

// New returns a rotator that starts in the server-count state.
func New(u Updater, opts Options) *Rotator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Hold < 0 || opts.Hold >= opts.Interval {
		opts.Hold = min(DefaultHold, opts.Interval/2)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Guilds == nil {
		opts.Guilds = func() int { return 0 }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.After == nil {
		opts.After = time.After
	}
	return &Rotator{updater: u, opts: opts}
}

// Ticks is how many ticks have run.
func (r *Rotator) Ticks() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tick
}

// Tick runs one tick. The state flips exactly once per call, even when an
// update fails; the remaining steps of a failed tick still run and the
// errors are joined.
func (r *Rotator) Tick(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := Plan(r.tick, r.opts.Now().In(r.opts.Location), r.opts.Guilds(), r.opts.Hold)
	r.tick++

	var errs []error
	var elapsed time.Duration
	for _, step := range steps {
		if wait := step.After - elapsed; wait > 0 {
			select {
			case <-ctx.Done():
				return errors.Join(append(errs, ctx.Err())...)
			case <-r.opts.After(wait):
			}
			elapsed = step.After
		}
		if err := r.updater.UpdateGameStatus(0, step.Status); err != nil {
			errs = append(errs, fmt.Errorf("update status %q: %w", step.Status, err))
		}
	}
	return errors.Join(errs...)
}

// Run ticks immediately and then every interval until ctx is cancelled.
// Failed ticks are logged and the schedule continues.
func (r *Rotator) Run(ctx context.Context) error {
	log := logging.Component("presence")
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for {
		if err := r.Tick(ctx); err != nil && ctx.Err() == nil {
			log.Warn().Err(err).Uint64("tick", r.Ticks()).Msg("presence update failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
