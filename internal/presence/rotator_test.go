package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	statuses []string
	fail     map[string]error
}

func (r *recorder) UpdateGameStatus(_ int, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, name)
	return r.fail[name]
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.statuses...)
}

type fakeClock struct {
	now    time.Time
	waits  []time.Duration
	waitMu sync.Mutex
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waitMu.Lock()
	c.waits = append(c.waits, d)
	c.waitMu.Unlock()
	ch := make(chan time.Time, 1)
	ch <- c.now.Add(d)
	return ch
}

func newRotator(u Updater, clock *fakeClock, guilds int) *Rotator {
	return New(u, Options{
		Interval: 10 * time.Second,
		Hold:     5 * time.Second,
		Location: time.UTC,
		Guilds:   func() int { return guilds },
		Now:      clock.Now,
		After:    clock.After,
	})
}

func TestPlan(t *testing.T) {
	now := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)

	assert.Equal(t, []Step{{Status: "/help | 3 servers"}}, Plan(0, now, 3, 5*time.Second))
	assert.Equal(t, []Step{
		{Status: "Day: 05/03/2024"},
		{After: 5 * time.Second, Status: "Time: 14:07 PM"},
	}, Plan(1, now, 3, 5*time.Second))
	assert.Equal(t, Plan(0, now, 3, time.Second), Plan(2, now, 3, time.Second))
}

func TestRotator_Alternates(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{now: time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)}
	r := newRotator(rec, clock, 2)

	for i := 0; i < 4; i++ {
		require.NoError(t, r.Tick(context.Background()))
	}

	assert.Equal(t, []string{
		"/help | 2 servers",
		"Day: 05/03/2024", "Time: 09:30 AM",
		"/help | 2 servers",
		"Day: 05/03/2024", "Time: 09:30 AM",
	}, rec.all())
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, clock.waits)
	assert.Equal(t, uint64(4), r.Ticks())
}

func TestRotator_FailedUpdateStillFlipsState(t *testing.T) {
	boom := errors.New("gateway closed")
	rec := &recorder{fail: map[string]error{"/help | 1 servers": boom}}
	clock := &fakeClock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newRotator(rec, clock, 1)

	err := r.Tick(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), r.Ticks())

	require.NoError(t, r.Tick(context.Background()))
	assert.Equal(t, []string{"/help | 1 servers", "Day: 01/01/2024", "Time: 00:00 AM"}, rec.all())
}

func TestRotator_CancelledDuringHold(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	r := New(rec, Options{
		Interval: 10 * time.Second,
		Hold:     5 * time.Second,
		Location: time.UTC,
		After: func(time.Duration) <-chan time.Time {
			cancel()
			return make(chan time.Time)
		},
	})

	require.NoError(t, r.Tick(ctx))
	err := r.Tick(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, rec.all(), 2)
	assert.Equal(t, uint64(2), r.Ticks())
}

func TestRotator_RunStopsOnCancel(t *testing.T) {
	rec := &recorder{}
	clock := &fakeClock{now: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
	r := newRotator(rec, clock, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool { return len(rec.all()) >= 1 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, []string{"/help | 1 servers"}, rec.all())
}

func TestNew_Defaults(t *testing.T) {
	r := New(&recorder{}, Options{Hold: time.Minute})
	assert.Equal(t, DefaultInterval, r.opts.Interval)
	assert.Equal(t, DefaultHold, r.opts.Hold)
	assert.Equal(t, time.UTC, r.opts.Location)
}
