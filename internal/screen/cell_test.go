package screen

import (
	"errors"
	"testing"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#ff0000", ColorRed, false},
		{"#00ff00", ColorGreen, false},
		{"#1e90ff", Color{R: 30, G: 144, B: 255}, false},
		{"nope", Color{}, true},
		{"#12345", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equals(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorEquals(t *testing.T) {
	if !ColorDefault.Equals(Color{Default: true}) {
		t.Error("default colors should be equal")
	}
	if ColorRed.Equals(ColorGreen) {
		t.Error("red should not equal green")
	}
	if ColorFromIndex(5).Equals(ColorFromRGB(5, 0, 0)) {
		t.Error("indexed and RGB colors should differ")
	}
	if !ColorFromIndex(5).Equals(ColorFromIndex(5)) {
		t.Error("same palette index should be equal")
	}
}

func TestColorDarken(t *testing.T) {
	dark := ColorWhite.Darken(0.5)
	if dark.R > 140 || dark.R < 115 {
		t.Errorf("darkened white R = %d, want about 127", dark.R)
	}
	// Indexed and default colors pass through untouched.
	if !ColorFromIndex(3).Darken(0.5).Equals(ColorFromIndex(3)) {
		t.Error("indexed color should not be darkened")
	}
	if !ColorDefault.Darken(0.5).Equals(ColorDefault) {
		t.Error("default color should not be darkened")
	}
}

func TestColorBlend(t *testing.T) {
	mid := ColorBlack.Blend(ColorWhite, 0.5)
	if mid.R < 115 || mid.R > 140 {
		t.Errorf("blend midpoint R = %d, want about 127", mid.R)
	}
	if !ColorDefault.Blend(ColorRed, 0.9).Equals(ColorRed) {
		t.Error("blend with default should snap to the nearer color")
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().WithForeground(ColorYellow).WithBackground(ColorDarkGray).Bold().Underline()

	if !s.Foreground.Equals(ColorYellow) || !s.Background.Equals(ColorDarkGray) {
		t.Errorf("style colors = %+v", s)
	}
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrUnderline) {
		t.Errorf("style attrs = %v", s.Attributes)
	}
	if s.Attributes.Has(AttrReverse) {
		t.Error("reverse should not be set")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'日', 2},
		{'한', 2},
		{0x07, 0}, // control
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"日本語", 4, "日本"},
		{"日本語", 3, "日"}, // half a wide rune does not fit
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := TruncateToWidth(tt.s, tt.width); got != tt.want {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestRenderErrorUnwrap(t *testing.T) {
	inner := errors.New("no tty")
	err := NewRenderError("init", inner)

	if !errors.Is(err, inner) {
		t.Error("RenderError should unwrap to the inner error")
	}
	if err.Error() != "render: init: no tty" {
		t.Errorf("message = %q", err.Error())
	}
}
