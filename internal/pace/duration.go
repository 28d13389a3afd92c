// Package pace converts chunks and target speeds into display durations
// and adjusts effective speed over a session.
package pace

import "github.com/artemgv/ritmo/internal/model"

// The duration model scales with character count: a chunk is charged its
// character count plus one character of settle slack, divided by an
// average word length of five characters, times the per-word time at the
// target speed. The slack keeps empty and single-character chunks visible
// for a minimum interval while preserving exact inverse scaling with WPM.
const (
	avgWordChars = 5.0
	settleChars  = 1.0
	msPerMinute  = 60000.0
)

// breakPauseWords is the pause charged for a paragraph-break marker,
// in word-times.
const breakPauseWords = 2.0

// DisplayDuration returns the display time for a chunk in milliseconds at
// the given target speed. Non-positive wpm yields 0. Paragraph-break
// markers earn a fixed multi-word pause.
func DisplayDuration(c model.Chunk, wpm int) float64 {
	if wpm <= 0 {
		return 0
	}
	wordTime := msPerMinute / float64(wpm)
	if c.IsBreak() {
		return breakPauseWords * wordTime
	}
	chars := len([]rune(c.Text))
	if chars < 0 {
		return 0
	}
	return (float64(chars) + settleChars) / avgWordChars * wordTime
}

// LineDuration returns the total display time for a laid-out line: the
// number of fixation units (line length over the fixation character
// budget) times the per-word time. Non-positive inputs yield 0.
func LineDuration(text string, fixationBudget, wpm int) float64 {
	if wpm <= 0 || fixationBudget <= 0 || len(text) == 0 {
		return 0
	}
	units := float64(len(text)) / float64(fixationBudget)
	return units * msPerMinute / float64(wpm)
}
