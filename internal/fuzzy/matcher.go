package fuzzy

import (
	"sort"
	"strings"
	"sync"
)

// Item represents a searchable item.
type Item struct {
	// Text is the string to match against.
	Text string

	// Index is the insertion position, used for stable tie ordering.
	Index int
}

// Match represents a ranked hit with scoring information.
type Match struct {
	// Item is the matched item.
	Item Item

	// Score is the match score (higher is better). Zero for the
	// empty-query pass-through.
	Score int

	// Positions contains the rune indices of matched characters.
	Positions []int
}

// Matcher performs two-pass fuzzy matching over a set of items.
type Matcher struct {
	mu      sync.RWMutex
	cache   *Cache
	scorer  Scorer
	options Options
}

// Options configures the matcher behavior.
type Options struct {
	// CacheSize is the maximum number of cached query results.
	// Set to 0 to disable caching.
	CacheSize int

	// CaseSensitive enables case-sensitive matching.
	// Default is false (case-insensitive).
	CaseSensitive bool
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		CacheSize:     100,
		CaseSensitive: false,
	}
}

// NewMatcher creates a new matcher with the given options.
func NewMatcher(opts Options) *Matcher {
	var cache *Cache
	if opts.CacheSize > 0 {
		cache = NewCache(opts.CacheSize)
	}

	return &Matcher{
		cache:   cache,
		scorer:  SubsequenceScorer{},
		options: opts,
	}
}

// SetScorer sets a custom scoring algorithm for the subsequence pass.
func (m *Matcher) SetScorer(scorer Scorer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scorer = scorer
}

// Match filters items against the query and returns matches sorted by
// score descending. Ties keep insertion order. An empty query returns
// every item in insertion order, unscored.
//
// Substring hits always outrank subsequence hits: substring scores
// start at scoreSubstring while subsequence scores are capped below it.
func (m *Matcher) Match(query string, items []Item) []Match {
	if query == "" {
		return m.passthrough(items)
	}

	if !m.options.CaseSensitive {
		query = strings.ToLower(query)
	}

	if m.cache != nil {
		if cached := m.cache.Get(query); cached != nil {
			return cached
		}
	}

	queryRunes := []rune(query)

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		score, positions := m.matchItem(queryRunes, query, item.Text)
		if score > 0 {
			matches = append(matches, Match{
				Item:      item,
				Score:     score,
				Positions: positions,
			})
		}
	}

	// Stable sort: items were scanned in insertion order, so equal
	// scores keep that order.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if m.cache != nil {
		m.cache.Set(query, matches)
	}

	return matches
}

// Invalidate drops all cached query results. Call after any item
// mutation so stale rankings are never served.
func (m *Matcher) Invalidate() {
	if m.cache != nil {
		m.cache.Clear()
	}
}

// matchItem scores a single item against the query.
// Returns score and matched rune indices, or (0, nil) for a miss.
func (m *Matcher) matchItem(queryRunes []rune, query, text string) (int, []int) {
	if text == "" {
		return 0, nil
	}

	originalRunes := []rune(text)
	textRunes := originalRunes
	folded := text
	if !m.options.CaseSensitive {
		folded = strings.ToLower(text)
		textRunes = []rune(folded)
	}

	if len(queryRunes) > len(textRunes) {
		return 0, nil
	}

	// Pass 1: contiguous substring.
	if start := runeIndex(folded, query); start >= 0 {
		positions := make([]int, len(queryRunes))
		for i := range positions {
			positions[i] = start + i
		}
		return substringScore(len(queryRunes), len(textRunes), start), positions
	}

	// Pass 2: greedy in-order subsequence scan.
	positions := make([]int, 0, len(queryRunes))
	queryIdx := 0
	for i := 0; i < len(textRunes) && queryIdx < len(queryRunes); i++ {
		if textRunes[i] == queryRunes[queryIdx] {
			positions = append(positions, i)
			queryIdx++
		}
	}
	if queryIdx != len(queryRunes) {
		return 0, nil
	}

	m.mu.RLock()
	scorer := m.scorer
	m.mu.RUnlock()

	score := scorer.Score(queryRunes, originalRunes, textRunes, positions)
	if score < 1 {
		score = 1
	}
	if score > subsequenceCap {
		score = subsequenceCap
	}
	return score, positions
}

// passthrough returns all items in insertion order for the empty query.
func (m *Matcher) passthrough(items []Item) []Match {
	matches := make([]Match, len(items))
	for i, item := range items {
		matches[i] = Match{Item: item}
	}
	return matches
}

// runeIndex returns the rune offset of substr in s, or -1.
func runeIndex(s, substr string) int {
	byteIdx := strings.Index(s, substr)
	if byteIdx < 0 {
		return -1
	}
	return len([]rune(s[:byteIdx]))
}

// substringScore ranks contiguous hits: exact, then prefix, then
// interior, with earlier interior positions scoring higher.
func substringScore(qlen, tlen, start int) int {
	if start == 0 {
		if qlen == tlen {
			return scoreExact
		}
		return scorePrefix + qlen*bonusConsecutive
	}
	position := (tlen - start) * 2
	if position > 100 {
		position = 100
	}
	return scoreSubstring + qlen*bonusConsecutive + position
}
