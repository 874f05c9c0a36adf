package fuzzy

import (
	"fmt"
	"testing"
)

func makeItems(texts ...string) []Item {
	items := make([]Item, len(texts))
	for i, t := range texts {
		items[i] = Item{Text: t, Index: i}
	}
	return items
}

func TestMatcherBasic(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("apple", "banana", "cherry")

	tests := []struct {
		query       string
		wantFirst   string
		wantMatches int
	}{
		{"ap", "apple", 1},
		{"ay", "", 0},
		{"an", "banana", 1},
		{"e", "cherry", 2}, // cherry's hit is earlier in its text
		{"", "apple", 3},   // empty returns all
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches := matcher.Match(tt.query, items)
			if len(matches) != tt.wantMatches {
				t.Errorf("query %q: got %d matches, want %d", tt.query, len(matches), tt.wantMatches)
			}
			if tt.wantMatches > 0 && matches[0].Item.Text != tt.wantFirst {
				t.Errorf("query %q: got first %q, want %q", tt.query, matches[0].Item.Text, tt.wantFirst)
			}
		})
	}
}

func TestMatcherEmptyQueryOrder(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("zebra", "apple", "mango")
	matches := matcher.Match("", items)

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Item.Index != i {
			t.Errorf("position %d: got index %d, want %d", i, m.Item.Index, i)
		}
		if m.Score != 0 {
			t.Errorf("empty query should be unscored, got %d", m.Score)
		}
	}
}

func TestMatcherSubstringOutranksSubsequence(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	// "cfg" is contiguous only in the second item.
	items := makeItems("parse_config_file", "mycfg.toml", "c_f_g_map")

	matches := matcher.Match("cfg", items)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].Item.Text != "mycfg.toml" {
		t.Errorf("substring hit should rank first, got %q", matches[0].Item.Text)
	}
	if matches[0].Score < scoreSubstring {
		t.Errorf("substring score %d below tier floor %d", matches[0].Score, scoreSubstring)
	}
	for _, m := range matches[1:] {
		if m.Score > subsequenceCap {
			t.Errorf("subsequence score %d above cap %d for %q", m.Score, subsequenceCap, m.Item.Text)
		}
	}
}

func TestMatcherScoreTiers(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("main", "main.go", "domain.go")

	matches := matcher.Match("main", items)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	// Exact, then prefix, then interior substring.
	want := []string{"main", "main.go", "domain.go"}
	for i, text := range want {
		if matches[i].Item.Text != text {
			t.Errorf("rank %d: got %q, want %q", i, matches[i].Item.Text, text)
		}
	}
	if matches[0].Score != scoreExact {
		t.Errorf("exact match score = %d, want %d", matches[0].Score, scoreExact)
	}
	if matches[1].Score <= matches[2].Score {
		t.Errorf("prefix should outrank interior: %d <= %d", matches[1].Score, matches[2].Score)
	}
}

func TestMatcherStableTies(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	// Identical texts must keep insertion order.
	items := makeItems("dup", "dup", "dup")
	matches := matcher.Match("dup", items)

	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for i, m := range matches {
		if m.Item.Index != i {
			t.Errorf("tie order broken: position %d has index %d", i, m.Item.Index)
		}
	}
}

func TestMatcherQueryLongerThanItem(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	matches := matcher.Match("application", makeItems("app"))
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestMatcherCaseInsensitive(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("README.md", "readme.txt")

	matches := matcher.Match("readme", items)
	if len(matches) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matches))
	}
}

func TestMatcherCaseSensitive(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseSensitive = true
	matcher := NewMatcher(opts)

	items := makeItems("README.md", "readme.txt")

	matches := matcher.Match("readme", items)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Item.Text != "readme.txt" {
		t.Errorf("expected readme.txt, got %s", matches[0].Item.Text)
	}
}

func TestMatcherSubsequencePositions(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	matches := matcher.Match("fbr", makeItems("foo_bar"))
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	want := []int{0, 4, 6}
	got := matches[0].Positions
	if len(got) != len(want) {
		t.Fatalf("positions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("positions = %v, want %v", got, want)
			break
		}
	}
}

func TestMatcherUTF8(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("日本語ファイル.txt", "中文文件.txt", "Файл.txt")

	tests := []struct {
		query     string
		wantFirst string
	}{
		{"日本", "日本語ファイル.txt"},
		{"文件", "中文文件.txt"},
		{"фай", "Файл.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			matches := matcher.Match(tt.query, items)
			if len(matches) == 0 {
				t.Fatalf("expected match for %q", tt.query)
			}
			if matches[0].Item.Text != tt.wantFirst {
				t.Errorf("expected %q, got %q", tt.wantFirst, matches[0].Item.Text)
			}
			// Positions are rune indices, not byte offsets.
			for _, p := range matches[0].Positions {
				if p >= len([]rune(matches[0].Item.Text)) {
					t.Errorf("position %d out of rune range", p)
				}
			}
		})
	}
}

func TestMatcherWordBoundary(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("getUserById", "agquub")

	// "gub" hits three word boundaries in getUserById.
	matches := matcher.Match("gub", items)
	if len(matches) == 0 {
		t.Fatal("expected matches for 'gub'")
	}
	if matches[0].Item.Text != "getUserById" {
		t.Errorf("expected getUserById first, got %s", matches[0].Item.Text)
	}
}

func TestMatcherInvalidate(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("alpha", "beta")
	first := matcher.Match("a", items)

	// Simulate an item arriving: without invalidation the cached
	// result would go stale.
	items = append(items, Item{Text: "gamma", Index: 2})
	matcher.Invalidate()

	second := matcher.Match("a", items)
	if len(second) <= len(first) {
		t.Errorf("expected more matches after add, got %d then %d", len(first), len(second))
	}
}

func TestMatcherCachedResultsEqual(t *testing.T) {
	matcher := NewMatcher(DefaultOptions())

	items := makeItems("one", "two", "three")
	first := matcher.Match("t", items)
	second := matcher.Match("t", items)

	if len(first) != len(second) {
		t.Fatalf("cached result differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Item.Text != second[i].Item.Text || first[i].Score != second[i].Score {
			t.Errorf("rank %d differs between cached and fresh result", i)
		}
	}
}

func BenchmarkMatcher(b *testing.B) {
	opts := DefaultOptions()
	opts.CacheSize = 0
	matcher := NewMatcher(opts)

	items := make([]Item, 10000)
	for i := range items {
		items[i] = Item{Text: fmt.Sprintf("src/pkg%d/file%d_test.go", i%100, i), Index: i}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.Match("ftest", items)
	}
}
