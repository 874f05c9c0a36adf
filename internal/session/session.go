package session

import (
	"context"
	"sync"
)

// MaxDrain is the bounded number of commands applied per UI tick so a
// fast producer cannot starve input handling.
const MaxDrain = 1000

// CommandKind enumerates producer commands.
type CommandKind int

// Command kinds.
const (
	CommandAddItem CommandKind = iota
	CommandAddBatch
	CommandUpdateIndicator
	CommandSetStatus
)

// Command is one producer mutation, applied by the UI loop in FIFO
// order.
type Command struct {
	Kind      CommandKind
	Text      string
	Batch     []string
	Indicator Indicator
	Status    GlobalStatus
}

// Outcome is the terminal result of a session. Cancellation is a
// normal outcome, not an error.
type Outcome struct {
	Cancelled bool
	Selected  []string
}

// Session carries commands from any number of producer goroutines to
// the single UI loop, and the terminal outcome back. All methods are
// safe for concurrent use; only the UI loop calls Drain and Resolve.
type Session struct {
	mu      sync.Mutex
	pending []Command
	closed  bool
	outcome Outcome
	done    chan struct{}
}

// New creates an open session.
func New() *Session {
	return &Session{
		done: make(chan struct{}),
	}
}

// Add enqueues a single item.
func (s *Session) Add(text string) error {
	return s.push(Command{Kind: CommandAddItem, Text: text})
}

// AddWithIndicator enqueues an item that starts with an indicator.
func (s *Session) AddWithIndicator(text string, ind Indicator) error {
	return s.push(Command{Kind: CommandAddItem, Text: text, Indicator: ind})
}

// AddBatch enqueues many items as one command.
func (s *Session) AddBatch(texts []string) error {
	if len(texts) == 0 {
		return ErrEmptyBatch
	}
	batch := make([]string, len(texts))
	copy(batch, texts)
	return s.push(Command{Kind: CommandAddBatch, Batch: batch})
}

// SetIndicator updates the indicator of a previously added item,
// keyed by item text.
func (s *Session) SetIndicator(text string, ind Indicator) error {
	return s.push(Command{Kind: CommandUpdateIndicator, Text: text, Indicator: ind})
}

// SetGlobalStatus replaces the session-wide status line.
func (s *Session) SetGlobalStatus(st GlobalStatus) error {
	return s.push(Command{Kind: CommandSetStatus, Status: st})
}

func (s *Session) push(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.pending = append(s.pending, cmd)
	return nil
}

// Drain removes and returns up to max pending commands in FIFO order.
// Pass max <= 0 for MaxDrain. Only the UI loop calls this.
func (s *Session) Drain(max int) []Command {
	if max <= 0 {
		max = MaxDrain
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.pending)
	if n == 0 {
		return nil
	}
	if n > max {
		n = max
	}

	out := make([]Command, n)
	copy(out, s.pending[:n])
	rest := copy(s.pending, s.pending[n:])
	s.pending = s.pending[:rest]
	return out
}

// Pending returns the number of queued commands.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Resolve records the terminal outcome and closes the session.
// The first call wins; later calls are no-ops.
func (s *Session) Resolve(outcome Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.outcome = outcome
	close(s.done)
}

// Closed reports whether the session reached a terminal state.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Done returns a channel closed on resolution.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the session resolves or ctx is done.
func (s *Session) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
