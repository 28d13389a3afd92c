package layout

import (
	"strings"

	"github.com/artemgv/ritmo/internal/model"
)

// TimingMode selects how a line's display time is divided among its focus
// targets.
type TimingMode int

// Timing modes.
const (
	// TimingByChars gives each target a share proportional to its
	// character span.
	TimingByChars TimingMode = iota
	// TimingByWords gives targets equal shares plus a punctuation bonus.
	TimingByWords
)

// Punctuation dwell bonuses, as fractions of an equal share.
const (
	sentenceEndBonus = 0.5
	minorPauseBonus  = 0.25
)

// FocusTargetTimings assigns each focus target a percentage interval of
// the line's total display duration. Consecutive intervals are contiguous;
// the first starts at 0 and the last ends at exactly 100.
func FocusTargetTimings(text string, targets []model.FocusTarget, mode TimingMode) []model.FocusTiming {
	if len(targets) == 0 {
		return nil
	}
	weights := make([]float64, len(targets))
	total := 0.0
	for i, t := range targets {
		var w float64
		if mode == TimingByWords {
			w = 1.0
			switch trailingPunct(text, t) {
			case punctSentence:
				w += sentenceEndBonus
			case punctMinor:
				w += minorPauseBonus
			}
		} else {
			w = float64(t.EndChar - t.StartChar)
			if w <= 0 {
				w = 1
			}
		}
		weights[i] = w
		total += w
	}

	timings := make([]model.FocusTiming, len(targets))
	acc := 0.0
	for i, w := range weights {
		start := acc
		acc += w / total * 100
		timings[i] = model.FocusTiming{StartPct: start, EndPct: acc}
	}
	// Pin the final boundary so float error never leaves a gap.
	timings[len(timings)-1].EndPct = 100
	return timings
}

type punctClass int

const (
	punctNone punctClass = iota
	punctMinor
	punctSentence
)

// trailingPunct classifies the punctuation ending the last token inside a
// target span, ignoring the whitespace that pads the span out to the next
// word start.
func trailingPunct(text string, t model.FocusTarget) punctClass {
	if t.StartChar < 0 || t.EndChar > len(text) || t.StartChar >= t.EndChar {
		return punctNone
	}
	segment := strings.TrimRight(text[t.StartChar:t.EndChar], " \t")
	if segment == "" {
		return punctNone
	}
	switch segment[len(segment)-1] {
	case '.', '!', '?', ';':
		return punctSentence
	case ',', ':':
		return punctMinor
	}
	return punctNone
}
