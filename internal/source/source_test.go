package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siftlabs/sift/internal/session"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain lines", "one\ntwo\nthree", []string{"one", "two", "three"}},
		{"blank lines dropped", "one\n\ntwo\n  \nthree", []string{"one", "two", "three"}},
		{"whitespace trimmed", "  one  \n\ttwo\t", []string{"one", "two"}},
		{"single line no newline", "only", []string{"only"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadLinesEmpty(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		_, err := ReadLines(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrNoItems, "input %q", input)
	}
}

func TestReadFile(t *testing.T) {
	path := writeTempFile(t, "alpha\nbeta\n")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, got)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("/nonexistent/items.txt")
	assert.Error(t, err)
}

func TestReadFileEmpty(t *testing.T) {
	path := writeTempFile(t, "\n  \n")

	_, err := ReadFile(path)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestDirect(t *testing.T) {
	got, err := Direct([]string{" one ", "", "two"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)

	_, err = Direct(nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestStream(t *testing.T) {
	sess := session.New()
	input := strings.Repeat("item\n", 300)

	err := Stream(context.Background(), sess, strings.NewReader(input), "Loading...")
	require.NoError(t, err)

	cmds := sess.Drain(0)
	var items int
	var last session.GlobalStatus
	for _, cmd := range cmds {
		switch cmd.Kind {
		case session.CommandAddBatch:
			items += len(cmd.Batch)
		case session.CommandSetStatus:
			last = cmd.Status
		}
	}
	assert.Equal(t, 300, items)
	assert.Equal(t, session.StatusReady, last.Kind, "stream should finish with a ready status")
}

func TestStreamEmptyInput(t *testing.T) {
	sess := session.New()

	err := Stream(context.Background(), sess, strings.NewReader("\n\n"), "")
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestStreamClosedSession(t *testing.T) {
	sess := session.New()
	sess.Resolve(session.Outcome{Cancelled: true})

	err := Stream(context.Background(), sess, strings.NewReader("item\n"), "")
	assert.ErrorIs(t, err, session.ErrClosed)
}

func TestShellIntegration(t *testing.T) {
	tests := []struct {
		shell string
		marks []string
	}{
		{"zsh", []string{"key-bindings.zsh", "sift-file-widget", "sift-cd-widget", "sift-history-widget"}},
		{"bash", []string{"key-bindings.bash", "sift-file-widget", "__sift_cd__", "__sift_history__"}},
		{"fish", []string{"key-bindings.fish", "sift-file-widget", "__sift_cd", "__sift_history"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			script, err := ShellIntegration(tt.shell)
			require.NoError(t, err)
			for _, mark := range tt.marks {
				assert.Contains(t, script, mark)
			}
		})
	}
}

func TestShellIntegrationUnsupported(t *testing.T) {
	_, err := ShellIntegration("powershell")
	assert.ErrorContains(t, err, "unsupported shell type")
}
