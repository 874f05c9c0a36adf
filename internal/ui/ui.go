// Package ui runs the single cooperative render and input loop. Each
// tick drains session commands, re-filters when dirty, dispatches one
// input event and paints the changed cells.
package ui

import (
	"context"
	"time"

	"github.com/siftlabs/sift/internal/fuzzy"
	"github.com/siftlabs/sift/internal/logging"
	"github.com/siftlabs/sift/internal/screen"
	"github.com/siftlabs/sift/internal/session"
)

// Loop timing. Input polling bounds the tick; the spinner advances on
// its own slower interval.
const (
	DefaultPollInterval    = 50 * time.Millisecond
	DefaultSpinnerInterval = 80 * time.Millisecond
)

// spinnerFrames are the Braille animation frames.
var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Config controls the loop's behavior and layout.
type Config struct {
	// Multi enables multi-select mode.
	Multi bool

	// Prompt is drawn before the query. Defaults to "> ".
	Prompt string

	// InitialQuery pre-fills the query.
	InitialQuery string

	// Height fixes the view to a number of rows. Zero means use
	// HeightPercent or the full terminal.
	Height int

	// HeightPercent sizes the view as a percentage of the terminal.
	HeightPercent int

	// ShowHelp draws the key binding line at the bottom.
	ShowHelp bool

	// ShowStatus draws the global status line.
	ShowStatus bool

	// LoadingMessage is the initial status message while ShowStatus
	// is set and no producer has set a status yet.
	LoadingMessage string

	// Dedupe drops near-duplicate items via similarity bucketing.
	Dedupe bool

	// PollInterval and SpinnerInterval override the loop timing.
	// Zero values use the defaults.
	PollInterval    time.Duration
	SpinnerInterval time.Duration

	Theme  Theme
	Logger *logging.Logger
}

func (c *Config) fillDefaults() {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SpinnerInterval <= 0 {
		c.SpinnerInterval = DefaultSpinnerInterval
	}
	if c.Logger == nil {
		c.Logger = logging.Discard
	}
}

// viewHeight resolves the height mode against the terminal height:
// fixed rows, percentage, or fullscreen.
func (c *Config) viewHeight(termHeight int) int {
	h := termHeight
	switch {
	case c.Height > 0:
		h = c.Height
	case c.HeightPercent > 0:
		h = termHeight * c.HeightPercent / 100
	}
	if h > termHeight {
		h = termHeight
	}
	if h < 3 {
		h = min(3, termHeight)
	}
	return h
}

// Loop owns every piece of UI state: the item list, indicators,
// filter results, scroll offset and the selection state machine. Only
// Run's goroutine touches it.
type Loop struct {
	backend screen.Backend
	surface *screen.Surface
	sess    *session.Session
	matcher *fuzzy.Matcher
	bucket  *fuzzy.Bucketer
	state   *session.State
	cfg     Config
	log     *logging.Logger

	items      []fuzzy.Item
	indicators map[string]session.Indicator
	status     session.GlobalStatus
	matches    []fuzzy.Match
	offset     int
	frame      int
	lastSpin   time.Time
	dirty      bool
}

// New creates a loop over an initialized backend.
func New(backend screen.Backend, sess *session.Session, cfg Config) *Loop {
	cfg.fillDefaults()

	mode := session.ModeSingle
	if cfg.Multi {
		mode = session.ModeMulti
	}

	var bucket *fuzzy.Bucketer
	if cfg.Dedupe {
		bucket = fuzzy.NewBucketer()
	}

	status := session.HiddenStatus()
	if cfg.ShowStatus {
		status = session.Loading(cfg.LoadingMessage)
	}

	return &Loop{
		backend:    backend,
		surface:    screen.NewSurface(backend),
		sess:       sess,
		matcher:    fuzzy.NewMatcher(fuzzy.DefaultOptions()),
		bucket:     bucket,
		state:      session.NewState(mode, cfg.InitialQuery),
		cfg:        cfg,
		log:        cfg.Logger.WithComponent("ui"),
		indicators: make(map[string]session.Indicator),
		status:     status,
		dirty:      true,
	}
}

// Run drives the loop until the session resolves or ctx is done.
// Context cancellation resolves the session as cancelled.
func (l *Loop) Run(ctx context.Context) (session.Outcome, error) {
	l.log.Debug("loop started")

	for {
		select {
		case <-ctx.Done():
			l.state.Cancel()
			l.sess.Resolve(l.state.Outcome())
			return l.state.Outcome(), ctx.Err()
		default:
		}

		l.applyCommands()

		if l.dirty {
			l.refilter()
		}

		l.advanceSpinner()
		l.render()

		if ev, ok := l.backend.PollEvent(l.cfg.PollInterval); ok {
			l.dispatch(ev)
		}

		if l.state.Done() {
			outcome := l.state.Outcome()
			l.sess.Resolve(outcome)
			l.log.Debug("loop resolved: cancelled=%v selected=%d", outcome.Cancelled, len(outcome.Selected))
			return outcome, nil
		}
	}
}

// applyCommands drains a bounded batch of producer commands.
func (l *Loop) applyCommands() {
	cmds := l.sess.Drain(session.MaxDrain)
	if len(cmds) == 0 {
		return
	}

	mutated := false
	for _, cmd := range cmds {
		switch cmd.Kind {
		case session.CommandAddItem:
			l.addItem(cmd.Text)
			if cmd.Indicator.Kind != session.IndicatorNone {
				l.indicators[cmd.Text] = cmd.Indicator
			}
			mutated = true
		case session.CommandAddBatch:
			for _, text := range cmd.Batch {
				l.addItem(text)
			}
			mutated = true
		case session.CommandUpdateIndicator:
			if cmd.Indicator.Kind == session.IndicatorNone {
				delete(l.indicators, cmd.Text)
			} else {
				l.indicators[cmd.Text] = cmd.Indicator
			}
		case session.CommandSetStatus:
			l.status = cmd.Status
		}
	}

	if mutated {
		// Cached rankings are stale the moment the item set changes.
		l.matcher.Invalidate()
		l.dirty = true
	}
}

func (l *Loop) addItem(text string) {
	item := fuzzy.Item{Text: text, Index: len(l.items)}
	l.items = append(l.items, item)
	if l.bucket != nil {
		l.bucket.Add(item)
	}
}

// refilter recomputes the visible matches and clamps the cursor.
func (l *Loop) refilter() {
	l.matches = l.matcher.Match(l.state.Query(), l.items)
	if l.bucket != nil {
		l.matches = l.bucket.Dedupe(l.matches)
	}
	l.state.SetVisible(len(l.matches))
	l.dirty = false
}

func (l *Loop) advanceSpinner() {
	if time.Since(l.lastSpin) < l.cfg.SpinnerInterval {
		return
	}
	l.frame = (l.frame + 1) % len(spinnerFrames)
	l.lastSpin = time.Now()
}

// dispatch routes one event to the state machine.
func (l *Loop) dispatch(ev screen.Event) {
	switch ev.Type {
	case screen.EventResize:
		l.surface.Resize(ev.Width, ev.Height)
	case screen.EventKey:
		l.dispatchKey(ev)
	}
}

func (l *Loop) dispatchKey(ev screen.Event) {
	switch ev.Key {
	case screen.KeyCtrlC, screen.KeyCtrlQ:
		l.state.Cancel()

	case screen.KeyEscape:
		// Two stages: first clear the query, then cancel.
		if !l.state.ClearQuery() {
			l.state.Cancel()
			return
		}
		l.dirty = true

	case screen.KeyEnter:
		l.confirm()

	case screen.KeyUp:
		l.state.MoveCursor(-1)
	case screen.KeyDown:
		l.state.MoveCursor(1)
	case screen.KeyPageUp:
		l.state.MoveCursorClamped(-l.pageSize())
	case screen.KeyPageDown:
		l.state.MoveCursorClamped(l.pageSize())
	case screen.KeyHome:
		l.state.MoveCursorClamped(-len(l.matches))
	case screen.KeyEnd:
		l.state.MoveCursorClamped(len(l.matches))

	case screen.KeyTab:
		l.toggleCurrent()
		l.state.MoveCursorClamped(1)
	case screen.KeyBacktab:
		l.toggleCurrent()
		l.state.MoveCursorClamped(-1)

	case screen.KeyBackspace:
		if l.state.Backspace() {
			l.dirty = true
		}

	case screen.KeyCtrlU:
		if l.state.ClearQuery() {
			l.dirty = true
		}

	case screen.KeyRune:
		if ev.Rune == ' ' && l.state.Multi() {
			l.toggleCurrent()
			return
		}
		if ev.Rune != 0 && l.state.TypeRune(ev.Rune) {
			l.dirty = true
		}
	}
}

func (l *Loop) pageSize() int {
	_, h := l.surface.Size()
	avail := l.cfg.viewHeight(h) - l.reservedRows()
	if avail < 1 {
		avail = 1
	}
	return avail
}

func (l *Loop) currentText() string {
	cursor := l.state.Cursor()
	if cursor < 0 || cursor >= len(l.matches) {
		return ""
	}
	return l.matches[cursor].Item.Text
}

func (l *Loop) toggleCurrent() {
	l.state.ToggleSelection(l.currentText())
}

// confirm resolves the session. Multi mode returns the marked items in
// insertion order, even when nothing is marked; single mode returns the
// item under the cursor.
func (l *Loop) confirm() {
	var ordered []string
	if l.state.Multi() {
		for _, item := range l.items {
			if l.state.IsSelected(item.Text) {
				ordered = append(ordered, item.Text)
			}
		}
	}
	l.state.Confirm(l.currentText(), ordered)
}
