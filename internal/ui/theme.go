package ui

import "github.com/siftlabs/sift/internal/screen"

// Theme holds the styles used by the view. The zero value is unusable;
// start from DefaultTheme.
type Theme struct {
	Prompt    screen.Style
	Query     screen.Style
	Item      screen.Style
	CursorRow screen.Style
	Selected  screen.Style
	Success   screen.Style
	Failure   screen.Style
	Warning   screen.Style
	Spinner   screen.Style
	Status    screen.Style
	Help      screen.Style
}

// DefaultTheme returns the standard color scheme.
func DefaultTheme() Theme {
	cursorBg := screen.ColorGray.Darken(0.5)
	return Theme{
		Prompt:    screen.DefaultStyle().WithForeground(screen.ColorCyan).Bold(),
		Query:     screen.DefaultStyle(),
		Item:      screen.DefaultStyle(),
		CursorRow: screen.DefaultStyle().WithForeground(screen.ColorYellow).WithBackground(cursorBg).Bold(),
		Selected:  screen.DefaultStyle().WithForeground(screen.ColorGreen),
		Success:   screen.DefaultStyle().WithForeground(screen.ColorGreen),
		Failure:   screen.DefaultStyle().WithForeground(screen.ColorRed),
		Warning:   screen.DefaultStyle().WithForeground(screen.ColorYellow),
		Spinner:   screen.DefaultStyle().WithForeground(screen.ColorCyan),
		Status:    screen.DefaultStyle().Dim(),
		Help:      screen.DefaultStyle().Dim(),
	}
}

// WithAccent recolors the prompt and selection marks. Invalid hex
// strings leave the theme unchanged.
func (t Theme) WithAccent(hex string) Theme {
	c, err := screen.ColorFromHex(hex)
	if err != nil {
		return t
	}
	t.Prompt = t.Prompt.WithForeground(c)
	t.Selected = t.Selected.WithForeground(c)
	return t
}

// WithCursorColor recolors the cursor row. The row background is a
// darkened blend of the given color so the foreground stays readable.
func (t Theme) WithCursorColor(hex string) Theme {
	c, err := screen.ColorFromHex(hex)
	if err != nil {
		return t
	}
	t.CursorRow = t.CursorRow.
		WithForeground(c).
		WithBackground(c.Blend(screen.ColorBlack, 0.75))
	return t
}

// namedColors maps indicator color names to screen colors.
var namedColors = map[string]screen.Color{
	"black":  screen.ColorBlack,
	"white":  screen.ColorWhite,
	"red":    screen.ColorRed,
	"green":  screen.ColorGreen,
	"yellow": screen.ColorYellow,
	"cyan":   screen.ColorCyan,
	"gray":   screen.ColorGray,
}

// ColorByName resolves an indicator color name, falling back to the
// default foreground.
func ColorByName(name string) screen.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return screen.ColorDefault
}
