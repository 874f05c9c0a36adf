package ui

import (
	"fmt"

	"github.com/siftlabs/sift/internal/fuzzy"
	"github.com/siftlabs/sift/internal/screen"
	"github.com/siftlabs/sift/internal/session"
)

// Indicator and selection glyphs.
const (
	glyphSuccess  = '✓'
	glyphFailure  = '✗'
	glyphWarning  = '⚠'
	glyphSelected = '✓'
)

// Key binding lines shown when help is enabled.
const (
	helpSingle = "↑/↓: Navigate | Enter: Select | Esc/Ctrl+C/Ctrl+Q: Exit"
	helpMulti  = "Tab/Space: Toggle | Enter: Confirm | Esc/Ctrl+C/Ctrl+Q: Exit"
)

// reservedRows counts the non-list rows: the prompt, plus the status
// and help lines when enabled.
func (l *Loop) reservedRows() int {
	n := 1
	if l.cfg.ShowStatus && l.status.Kind != session.StatusHidden {
		n++
	}
	if l.cfg.ShowHelp {
		n++
	}
	return n
}

// render draws the full frame into the back buffer and presents the
// diff. The whole frame is rebuilt each tick; the buffer keeps the
// terminal writes down to the changed cells.
func (l *Loop) render() {
	buf := l.surface.Buffer()
	width, termHeight := l.surface.Size()
	if width <= 0 || termHeight <= 0 {
		return
	}

	height := l.cfg.viewHeight(termHeight)
	avail := height - l.reservedRows()
	if avail < 1 {
		avail = 1
	}
	l.scrollTo(avail)

	buf.Clear()

	cursorCol := l.drawPrompt(buf, width)

	row := 1
	for i := 0; i < avail && l.offset+i < len(l.matches); i++ {
		l.drawItem(buf, row, width, l.offset+i)
		row++
	}
	row = 1 + avail

	if l.cfg.ShowStatus && l.status.Kind != session.StatusHidden {
		l.drawStatus(buf, row, width)
		row++
	}
	if l.cfg.ShowHelp {
		l.drawHelp(buf, row, width)
	}

	if n := l.surface.Present(); n > 0 {
		l.log.Debug("presented %d cells", n)
	}
	l.backend.ShowCursor(cursorCol, 0)
}

// scrollTo adjusts the scroll offset so the cursor stays within the
// visible window of avail rows.
func (l *Loop) scrollTo(avail int) {
	cursor := l.state.Cursor()
	if cursor < l.offset {
		l.offset = cursor
	}
	if cursor >= l.offset+avail {
		l.offset = cursor - avail + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// drawPrompt renders the prompt and query on row 0 and returns the
// column where the terminal cursor belongs.
func (l *Loop) drawPrompt(buf *screen.Buffer, width int) int {
	col := buf.SetString(0, 0, l.cfg.Prompt, l.cfg.Theme.Prompt)
	col = buf.SetString(col, 0, l.state.Query(), l.cfg.Theme.Query)
	if col > width-1 {
		col = width - 1
	}
	return col
}

// drawItem renders one match row: indicator, selection mark and the
// item text with matched runes highlighted.
func (l *Loop) drawItem(buf *screen.Buffer, row, width, idx int) {
	match := l.matches[idx]
	atCursor := idx == l.state.Cursor()

	base := l.cfg.Theme.Item
	if atCursor {
		base = l.cfg.Theme.CursorRow
		buf.FillRow(row, screen.NewCell(' ', base))
	}

	col := l.drawIndicator(buf, row, match.Item.Text, base)

	if l.state.Multi() {
		mark := "  "
		style := base
		if l.state.IsSelected(match.Item.Text) {
			mark = string(glyphSelected) + " "
			if !atCursor {
				style = l.cfg.Theme.Selected
			}
		}
		col = buf.SetString(col, row, mark, style)
	}

	l.drawMatchText(buf, row, col, width, match, base)
}

// drawIndicator renders the per-item indicator column and returns the
// next free column. Rows without an indicator get matching padding so
// the item texts line up.
func (l *Loop) drawIndicator(buf *screen.Buffer, row int, text string, base screen.Style) int {
	ind, ok := l.indicators[text]
	if !ok || ind.Kind == session.IndicatorNone {
		return buf.SetString(0, row, "  ", base)
	}

	style := base
	var s string
	switch ind.Kind {
	case session.IndicatorSpinner:
		s = string(spinnerFrames[l.frame])
		style = style.WithForeground(l.cfg.Theme.Spinner.Foreground)
	case session.IndicatorSuccess:
		s = string(glyphSuccess)
		style = style.WithForeground(l.cfg.Theme.Success.Foreground)
	case session.IndicatorError:
		s = string(glyphFailure)
		style = style.WithForeground(l.cfg.Theme.Failure.Foreground)
	case session.IndicatorWarning:
		s = string(glyphWarning)
		style = style.WithForeground(l.cfg.Theme.Warning.Foreground)
	case session.IndicatorText:
		s = ind.Text
		if ind.Color != "" {
			style = style.WithForeground(ColorByName(ind.Color))
		}
	}

	col := buf.SetString(0, row, s, style)
	return buf.SetString(col, row, " ", base)
}

// drawMatchText renders the item text, underlining and bolding the
// runes the query matched.
func (l *Loop) drawMatchText(buf *screen.Buffer, row, col, width int, match fuzzy.Match, base screen.Style) {
	highlight := base.Bold().Underline()

	hits := make(map[int]bool, len(match.Positions))
	for _, p := range match.Positions {
		hits[p] = true
	}

	for i, r := range []rune(match.Item.Text) {
		if col >= width {
			break
		}
		style := base
		if hits[i] {
			style = highlight
		}
		col = buf.SetString(col, row, string(r), style)
	}
}

// drawStatus renders the global status line, with a spinner prefix for
// animated statuses.
func (l *Loop) drawStatus(buf *screen.Buffer, row, width int) {
	msg := l.status.Message
	if l.status.Kind == session.StatusLoading && msg == "" {
		msg = "Loading..."
	}
	if l.status.Kind == session.StatusReady && msg == "" {
		msg = fmt.Sprintf("%d/%d", len(l.matches), len(l.items))
	}

	col := 0
	if l.status.Spinner {
		col = buf.SetString(col, row, string(spinnerFrames[l.frame])+" ", l.cfg.Theme.Spinner)
	}
	buf.SetString(col, row, screen.TruncateToWidth(msg, width-col), l.cfg.Theme.Status)
}

func (l *Loop) drawHelp(buf *screen.Buffer, row, width int) {
	help := helpSingle
	if l.state.Multi() {
		help = helpMulti
	}
	buf.SetString(0, row, screen.TruncateToWidth(help, width), l.cfg.Theme.Help)
}
