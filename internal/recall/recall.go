// Package recall scores typed paragraph reconstructions word by word.
// The drill flow lives in the CLI; this package owns the pairing and
// scoring so the results feed the prediction store uniformly.
package recall

import (
	"time"

	"github.com/artemgv/ritmo/internal/chunk"
	"github.com/artemgv/ritmo/internal/layout"
	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/score"
)

// Paragraphs segments text into recall-sized paragraphs using the
// default length bounds.
func Paragraphs(text string) []string {
	return layout.SegmentIntoParagraphs(text, 0, 0)
}

// ScoreRound compares a typed reconstruction against the paragraph it
// should reproduce. Words pair up by position; a reconstruction shorter
// than the paragraph scores the missing tail as empty predictions, and
// extra typed words are ignored. baseIndex offsets WordIndex so results
// from consecutive rounds stay distinct within one session.
func ScoreRound(paragraph, typed string, baseIndex int, now time.Time) []model.PredictionResult {
	actual := chunk.TokenizeParagraphRecall(paragraph)
	predicted := chunk.TokenizeParagraphRecall(typed)
	results := make([]model.PredictionResult, 0, len(actual))
	for i, a := range actual {
		p := ""
		if i < len(predicted) {
			p = predicted[i].Text
		}
		r := score.Compare(p, a.Text, baseIndex+i)
		r.Timestamp = now
		results = append(results, r)
	}
	return results
}

// ExactMatches counts the zero-loss results in a round.
func ExactMatches(results []model.PredictionResult) int {
	n := 0
	for _, r := range results {
		if r.Loss == 0 {
			n++
		}
	}
	return n
}
