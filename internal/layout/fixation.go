package layout

import (
	"github.com/artemgv/ritmo/internal/chunk"
	"github.com/artemgv/ritmo/internal/model"
)

// DefaultFixationBudget is the target character span covered by one
// fixation when the caller passes a non-positive budget.
const DefaultFixationBudget = 8

// shortLeadingWord is the length at or below which the opening word of a
// line is skipped in favor of the next word. Readers take in short
// function words ("a", "the", "of") from the fixation on the neighbouring
// word rather than pausing on them.
const shortLeadingWord = 3

// LineFixations picks simulated eye-pause points for a line: a strictly
// increasing set of character indices, roughly charBudget characters
// apart, never landing on whitespace. A line containing at least one word
// always yields at least one fixation.
func LineFixations(text string, charBudget int) []int {
	if charBudget <= 0 {
		charBudget = DefaultFixationBudget
	}
	spans := wordSpans(text)
	if len(spans) == 0 {
		return nil
	}

	first := 0
	if len(spans) > 1 && spans[0].end-spans[0].start <= shortLeadingWord && spans[1].start <= charBudget {
		first = 1
	}

	fixations := []int{fixationPoint(text, spans[first])}
	covered := spans[first].start + charBudget
	for i := first + 1; i < len(spans); i++ {
		if spans[i].end <= covered {
			continue
		}
		fixations = append(fixations, fixationPoint(text, spans[i]))
		covered = spans[i].start + charBudget
	}
	return fixations
}

// fixationPoint places the fixation at the word's optimal recognition
// point so highlighting and chunk display agree on the emphasized glyph.
// The recognition point is a rune offset; the returned index is the byte
// offset of that rune within the line.
func fixationPoint(text string, s span) int {
	word := text[s.start:s.end]
	orp := chunk.ORPIndex(word)
	n := 0
	for i := range word {
		if n == orp {
			return s.start + i
		}
		n++
	}
	return s.start
}

// FocusTargets converts a fixation index list into contiguous character
// ranges covering the whole line. Each range runs from the previous
// boundary to the word-start of the next fixation; duplicate word starts
// collapse into a single boundary. The first target starts at 0 and the
// last ends at len(text).
func FocusTargets(text string, fixations []int) []model.FocusTarget {
	if len(text) == 0 || len(fixations) == 0 {
		return nil
	}
	starts := make([]int, 0, len(fixations))
	for _, fix := range fixations {
		ws := wordStartAt(text, fix)
		if len(starts) > 0 && starts[len(starts)-1] == ws {
			continue
		}
		starts = append(starts, ws)
	}

	targets := make([]model.FocusTarget, 0, len(starts))
	prev := 0
	for i := 1; i < len(starts); i++ {
		targets = append(targets, model.FocusTarget{StartChar: prev, EndChar: starts[i]})
		prev = starts[i]
	}
	targets = append(targets, model.FocusTarget{StartChar: prev, EndChar: len(text)})
	return targets
}

// WordTargets builds one focus target per word, partitioning the line at
// word starts.
func WordTargets(text string) []model.FocusTarget {
	spans := wordSpans(text)
	if len(spans) == 0 {
		return nil
	}
	targets := make([]model.FocusTarget, 0, len(spans))
	prev := 0
	for i := 1; i < len(spans); i++ {
		targets = append(targets, model.FocusTarget{StartChar: prev, EndChar: spans[i].start})
		prev = spans[i].start
	}
	targets = append(targets, model.FocusTarget{StartChar: prev, EndChar: len(text)})
	return targets
}

// wordStartAt returns the start offset of the word containing (or, when
// idx sits in whitespace, preceding) position idx.
func wordStartAt(text string, idx int) int {
	if idx < 0 {
		return 0
	}
	if idx >= len(text) {
		idx = len(text) - 1
	}
	for idx > 0 && text[idx-1] != ' ' && text[idx-1] != '\t' {
		idx--
	}
	return idx
}
