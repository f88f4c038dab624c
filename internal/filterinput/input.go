// Package filterinput debounces free-text filter typing into committed filter values.
package filterinput

import (
	"sync"
	"time"
)

// DefaultDelay is the idle window after the last keystroke before a commit.
const DefaultDelay = 400 * time.Millisecond

// Input holds a draft value and commits it after the user stops typing.
// Only the last keystroke in a burst can commit. A commit only happens when
// the draft differs from the last committed value.
type Input struct {
	mu        sync.Mutex
	clock     Clock
	delay     time.Duration
	commit    func(value string)
	draft     string
	committed string
	timer     Timer
	seq       uint64
	closed    bool
}

// Option configures an Input.
type Option func(*Input)

// WithClock overrides the clock used for scheduling.
func WithClock(c Clock) Option {
	return func(in *Input) { in.clock = c }
}

// WithDelay overrides the idle window. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(in *Input) {
		if d > 0 {
			in.delay = d
		}
	}
}

// New creates an Input starting at the committed value. commit is called
// outside the lock, so it may call back into the Input.
func New(committed string, commit func(value string), opts ...Option) *Input {
	in := &Input{
		clock:     RealClock{},
		delay:     DefaultDelay,
		commit:    commit,
		draft:     committed,
		committed: committed,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Type records a keystroke and restarts the idle timer.
func (in *Input) Type(value string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	in.draft = value
	in.stopLocked()
	in.seq++
	seq := in.seq
	in.timer = in.clock.AfterFunc(in.delay, func() { in.fire(seq) })
}

// Sync resets draft and committed to a value changed elsewhere (for example
// by clearing all filters) and drops any pending commit.
func (in *Input) Sync(committed string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.stopLocked()
	in.draft = committed
	in.committed = committed
}

// Close drops any pending commit. Later keystrokes are ignored.
func (in *Input) Close() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.stopLocked()
	in.closed = true
}

// Draft returns the current draft.
func (in *Input) Draft() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.draft
}

// Committed returns the last committed value.
func (in *Input) Committed() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.committed
}

// Pending reports whether a commit is scheduled.
func (in *Input) Pending() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.timer != nil
}

// Delay returns the idle window.
func (in *Input) Delay() time.Duration {
	return in.delay
}

func (in *Input) stopLocked() {
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	// Invalidate a callback that already started but has not taken the lock.
	in.seq++
}

func (in *Input) fire(seq uint64) {
	in.mu.Lock()
	if in.closed || seq != in.seq {
		in.mu.Unlock()
		return
	}
	in.timer = nil
	if in.draft == in.committed {
		in.mu.Unlock()
		return
	}
	value := in.draft
	in.committed = value
	commit := in.commit
	in.mu.Unlock()

	if commit != nil {
		commit(value)
	}
}
