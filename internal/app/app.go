// Package app wires configuration, input sources, the terminal backend
// and the UI loop into the finder application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/siftlabs/sift/internal/config"
	"github.com/siftlabs/sift/internal/logging"
	"github.com/siftlabs/sift/internal/screen"
	"github.com/siftlabs/sift/internal/session"
	"github.com/siftlabs/sift/internal/source"
	"github.com/siftlabs/sift/internal/ui"
)

// Options are the command line settings layered over the config file.
type Options struct {
	// Multi enables multi-select mode.
	Multi bool

	// Query pre-fills the search query.
	Query string

	// Prompt overrides the configured prompt when non-empty.
	Prompt string

	// Height and HeightPercent override the configured view height
	// when positive.
	Height        int
	HeightPercent int

	// File reads items from a file instead of stdin.
	File string

	// Items are direct candidates from the command line. They take
	// precedence over File and stdin.
	Items []string

	// ConfigPath overrides the default config file location.
	ConfigPath string

	// Stdin overrides os.Stdin, for tests.
	Stdin io.Reader

	// Dedupe drops near-duplicate items.
	Dedupe bool
}

// App is the assembled application.
type App struct {
	opts     Options
	cfg      config.Config
	log      *logging.Logger
	logClose func()
}

// New loads the configuration and prepares the application. The first
// run seeds a default config file; failure to do so is not fatal.
func New(opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
		_ = config.WriteDefault(path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	a := &App{
		opts:     opts,
		cfg:      cfg,
		log:      logging.Discard,
		logClose: func() {},
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.log = logging.New(f, logging.ParseLevel(cfg.LogLevel))
		a.logClose = func() { f.Close() }
	}

	return a, nil
}

// Close releases application resources.
func (a *App) Close() {
	a.logClose()
}

// Run executes one finder session and returns its outcome.
func (a *App) Run(ctx context.Context) (session.Outcome, error) {
	sess := session.New()

	stream, err := a.loadInput(ctx, sess)
	if err != nil {
		return session.Outcome{}, err
	}

	backend, err := screen.NewTerminal()
	if err != nil {
		return session.Outcome{}, err
	}
	if err := backend.Init(); err != nil {
		return session.Outcome{}, err
	}
	defer backend.Fini()

	loop := ui.New(backend, sess, a.uiConfig(stream))

	a.log.Info("session started: multi=%v query=%q", a.opts.Multi, a.opts.Query)
	outcome, err := loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return outcome, err
	}
	return outcome, nil
}

// loadInput enqueues the candidate items. Direct arguments and files
// load up front; piped stdin streams in the background so large inputs
// appear as they arrive. Returns true when a producer keeps running.
func (a *App) loadInput(ctx context.Context, sess *session.Session) (bool, error) {
	switch {
	case len(a.opts.Items) > 0:
		items, err := source.Direct(a.opts.Items)
		if err != nil {
			return false, err
		}
		return false, sess.AddBatch(items)

	case a.opts.File != "":
		items, err := source.ReadFile(a.opts.File)
		if err != nil {
			return false, err
		}
		return false, sess.AddBatch(items)

	default:
		stdin := a.opts.Stdin
		if stdin == nil {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				return false, errors.New("no input: pipe items on stdin, pass a file, or list items as arguments")
			}
			stdin = os.Stdin
		}
		go func() {
			err := source.Stream(ctx, sess, stdin, a.cfg.LoadingMessage)
			switch {
			case err == nil:
			case errors.Is(err, source.ErrNoItems):
				_ = sess.SetGlobalStatus(session.Ready("no items received"))
			case errors.Is(err, session.ErrClosed), errors.Is(err, context.Canceled):
			default:
				a.log.Error("input stream: %v", err)
			}
		}()
		return true, nil
	}
}

func (a *App) uiConfig(streaming bool) ui.Config {
	theme := ui.DefaultTheme()
	if a.cfg.AccentColor != "" {
		theme = theme.WithAccent(a.cfg.AccentColor)
	}
	if a.cfg.CursorColor != "" {
		theme = theme.WithCursorColor(a.cfg.CursorColor)
	}

	cfg := ui.Config{
		Multi:          a.opts.Multi,
		Prompt:         a.cfg.Prompt,
		InitialQuery:   a.opts.Query,
		Height:         a.cfg.Height,
		HeightPercent:  a.cfg.HeightPercent,
		ShowHelp:       a.cfg.ShowHelp,
		ShowStatus:     a.cfg.ShowStatus && streaming,
		LoadingMessage: a.cfg.LoadingMessage,
		Dedupe:         a.opts.Dedupe,
		Theme:          theme,
		Logger:         a.log,
	}
	if a.opts.Prompt != "" {
		cfg.Prompt = a.opts.Prompt
	}
	if a.opts.Height > 0 {
		cfg.Height = a.opts.Height
		cfg.HeightPercent = 0
	}
	if a.opts.HeightPercent > 0 {
		cfg.HeightPercent = a.opts.HeightPercent
		cfg.Height = 0
	}
	return cfg
}
