// Package jobmgr runs named background jobs with cancellation, lifecycle
// callbacks and in-memory tracking of what is running.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(ctx, func(ev jobmgr.Event) {
//	    log.Info().Str("job", ev.Job).Str("state", string(ev.State)).Msg("job")
//	})
//
//	err := jm.StartAsync("presence", func(ctx context.Context) error {
//	    // do work until ctx is cancelled
//	    return nil
//	})
//
//	// later...
//	_ = jm.Stop("presence")
//	jm.Wait()
//
// No retry logic, no persistence. Jobs are removed on completion.
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// State is a job lifecycle state.
type State string

const (
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Event is delivered to the Reporter on every lifecycle change.
type Event struct {
	Job   string
	State State
	Err   error
}

// Reporter receives lifecycle events for jobs.
type Reporter func(Event)

type job struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Manager starts, stops and tracks jobs. It is safe for concurrent use.
// Every job's context derives from the manager's parent context.
type Manager struct {
	parent   context.Context
	mu       sync.Mutex
	jobs     map[string]*job
	wg       sync.WaitGroup
	reporter Reporter
}

// NewManager creates a Manager bound to parent. The reporter may be nil.
func NewManager(parent context.Context, reporter Reporter) *Manager {
	if parent == nil {
		parent = context.Background()
	}
	return &Manager{
		parent:   parent,
		jobs:     make(map[string]*job),
		reporter: reporter,
	}
}

// StartAsync runs a job in a separate goroutine and returns immediately.
// Starting a name that is already running is an error.
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("job '%s' is already running", name)
	}
	ctx, cancel := context.WithCancel(m.parent)
	j := &job{cancel: cancel, done: make(chan struct{})}
	m.jobs[name] = j
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer close(j.done)
		defer cancel()

		m.report(Event{Job: name, State: StateRunning})
		err := runner(ctx)

		m.mu.Lock()
		if m.jobs[name] == j {
			delete(m.jobs, name)
		}
		m.mu.Unlock()

		m.finish(name, err)
	}()

	return nil
}

// Stop cancels a running job by name and waits for it to return.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	j, ok := m.jobs[name]
	if ok {
		delete(m.jobs, name)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("job '%s' not running", name)
	}
	j.cancel()
	<-j.done
	return nil
}

// Wait blocks until every async job has returned.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// List returns the sorted names of active jobs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Status returns a human-readable summary of active jobs, e.g.
// "Running jobs: presence".
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

func (m *Manager) finish(name string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		m.report(Event{Job: name, State: StateError, Err: err})
		return
	}
	m.report(Event{Job: name, State: StateDone})
}

func (m *Manager) report(ev Event) {
	if m.reporter != nil {
		m.reporter(ev)
	}
}
