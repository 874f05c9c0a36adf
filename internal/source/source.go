// Package source reads candidate items from stdin, files or direct
// arguments and streams them into a session.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/siftlabs/sift/internal/session"
)

// ErrNoItems indicates the input produced nothing to pick from.
var ErrNoItems = errors.New("no items found")

// streamBatch is how many lines are grouped per session command while
// streaming, so the UI sees items arrive without per-line overhead.
const streamBatch = 256

// ReadLines reads items from r, one per line. Lines are trimmed and
// blank lines dropped.
func ReadLines(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}

// ReadFile reads items from the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	items, err := ReadLines(f)
	if errors.Is(err, ErrNoItems) {
		return nil, fmt.Errorf("%w in %s", ErrNoItems, path)
	}
	return items, err
}

// Direct validates items passed straight on the command line.
func Direct(items []string) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoItems
	}
	return out, nil
}

// Stream reads r line by line and feeds the session in batches until
// EOF or ctx is done. It sets the loading status up front and a ready
// status when the input is exhausted. Intended to run as a goroutine
// alongside the UI loop.
func Stream(ctx context.Context, sess *session.Session, r io.Reader, loadingMessage string) error {
	if err := sess.SetGlobalStatus(session.Loading(loadingMessage)); err != nil {
		return err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	total := 0
	batch := make([]string, 0, streamBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := sess.AddBatch(batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		batch = append(batch, line)
		if len(batch) == streamBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stream input: %w", err)
	}
	if err := flush(); err != nil {
		return err
	}

	if total == 0 {
		return ErrNoItems
	}
	return sess.SetGlobalStatus(session.Ready(""))
}
