package fuzzy

import "unicode"

// Score tiers. Substring scores start at scoreSubstring; subsequence
// scores are clamped to subsequenceCap so the tiers can never overlap.
const (
	scoreExact     = 10000
	scorePrefix    = 5000
	scoreSubstring = 2500
	subsequenceCap = scoreSubstring - 100

	bonusConsecutive = 40
	bonusBoundary    = 30
	bonusFirstChar   = 20
	bonusPerMatch    = 16

	penaltyGapOpen   = 3
	penaltyGapExtend = 1
	penaltyGapFloor  = 20
)

// Scorer calculates subsequence match scores.
type Scorer interface {
	// Score calculates a match score based on various factors.
	// Higher scores indicate better matches.
	//
	// Parameters:
	//   - queryRunes: the normalized query runes
	//   - originalRunes: original text runes (preserves case)
	//   - textRunes: normalized text runes (lowercase if case-insensitive)
	//   - positions: rune indices of matched characters in text
	Score(queryRunes, originalRunes, textRunes []rune, positions []int) int
}

// SubsequenceScorer is the default scoring algorithm: per-rune base,
// bonuses for consecutive runs, word boundaries and leading position,
// penalties for gaps and long texts.
type SubsequenceScorer struct{}

// Score implements the Scorer interface.
func (s SubsequenceScorer) Score(queryRunes, originalRunes, textRunes []rune, positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	score := len(positions) * bonusPerMatch

	if positions[0] == 0 {
		score += bonusFirstChar
	}

	for i, idx := range positions {
		if isWordBoundary(originalRunes, idx) {
			score += bonusBoundary
		}
		if i == 0 {
			continue
		}
		gap := positions[i] - positions[i-1] - 1
		if gap == 0 {
			score += bonusConsecutive
			continue
		}
		penalty := penaltyGapOpen + (gap-1)*penaltyGapExtend
		if penalty > penaltyGapFloor {
			penalty = penaltyGapFloor
		}
		score -= penalty
	}

	// Shorter texts are more specific matches.
	lengthPenalty := len(textRunes) - len(queryRunes)
	if lengthPenalty > 50 {
		lengthPenalty = 50
	}
	score -= lengthPenalty

	// Earlier first hit wins between otherwise equal items.
	position := len(textRunes) - positions[0]
	if position > 20 {
		position = 20
	}
	score += position

	return score
}

// boundaryRunes are separators that start a new word.
var boundaryRunes = map[rune]bool{
	'/': true, '\\': true, '_': true, '-': true,
	'.': true, ' ': true, ':': true,
}

// isWordBoundary checks if the rune at idx starts a word: text start,
// after a separator, a camelCase edge, or a digit/letter transition.
func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}

	prev := runes[idx-1]
	curr := runes[idx]

	if boundaryRunes[prev] {
		return true
	}
	if unicode.IsLower(prev) && unicode.IsUpper(curr) {
		return true
	}
	if unicode.IsDigit(prev) != unicode.IsDigit(curr) &&
		(unicode.IsLetter(prev) || unicode.IsDigit(prev)) &&
		(unicode.IsLetter(curr) || unicode.IsDigit(curr)) {
		return true
	}

	return false
}
