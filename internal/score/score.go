// Package score compares predicted words against ground truth using
// normalized edit distance.
package score

import (
	"math"
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"

	"github.com/artemgv/ritmo/internal/model"
)

// Normalize lowercases s and strips everything that is not a letter or a
// digit, so case and punctuation never affect scoring.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizedLoss returns the Levenshtein distance between the normalized
// inputs divided by the longer normalized length: 0 for identical words,
// 1 for maximally different ones. Two empty normalized strings are
// identical.
func NormalizedLoss(predicted, actual string) float64 {
	p := Normalize(predicted)
	a := Normalize(actual)
	longer := len([]rune(p))
	if l := len([]rune(a)); l > longer {
		longer = l
	}
	if longer == 0 {
		return 0
	}
	dist := matchr.Levenshtein(p, a)
	return float64(dist) / float64(longer)
}

// IsExactMatch reports whether the two words are equal after
// normalization.
func IsExactMatch(predicted, actual string) bool {
	return Normalize(predicted) == Normalize(actual)
}

// Compare scores one prediction against the actual word at wordIndex.
func Compare(predicted, actual string, wordIndex int) model.PredictionResult {
	return model.PredictionResult{
		Predicted: predicted,
		Actual:    actual,
		Loss:      NormalizedLoss(predicted, actual),
		WordIndex: wordIndex,
	}
}

// Summary is the user-facing roll-up of accumulated prediction stats.
type Summary struct {
	ExactPercent    int
	AvgScorePercent int
}

// Aggregate converts running prediction stats into whole percentages.
// With no scored words yet it reports the neutral 0% exact / 100% score.
func Aggregate(stats model.PredictionStats) Summary {
	if stats.TotalWords == 0 {
		return Summary{ExactPercent: 0, AvgScorePercent: 100}
	}
	return Summary{
		ExactPercent:    int(math.Round(float64(stats.ExactMatches) / float64(stats.TotalWords) * 100)),
		AvgScorePercent: int(math.Round((1 - stats.AverageLoss) * 100)),
	}
}
