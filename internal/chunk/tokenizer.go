// Package chunk splits normalized text into timed display units.
package chunk

import (
	"strings"

	"github.com/artemgv/ritmo/internal/model"
)

// Width budgets for the built-in grouping modes, in characters of chunk
// text with words joined by single spaces.
const (
	PhraseWidth = 15
	ClauseWidth = 40
)

// minorBreakFraction is the share of the width budget that must be filled
// before minor punctuation is allowed to end a chunk.
const minorBreakFraction = 0.6

// Tokenize splits text into display chunks. Paragraphs (blank-line
// separated) are tokenized independently; a zero-word break marker is
// inserted between consecutive paragraphs so the pacing layer can hold
// longer there. customWidth only applies to ModeCustom and falls back to
// ClauseWidth when non-positive.
func Tokenize(text string, mode model.ChunkMode, customWidth int) []model.Chunk {
	paragraphs := SplitParagraphs(RepairRunOnSentences(text))
	var chunks []model.Chunk
	for i, para := range paragraphs {
		if i > 0 {
			chunks = append(chunks, breakMarker())
		}
		chunks = append(chunks, tokenizeParagraph(para, mode, customWidth)...)
	}
	return chunks
}

// TokenizeParagraphRecall tokenizes a single paragraph in word mode for
// recall and prediction rounds: one word per chunk, no break markers.
func TokenizeParagraphRecall(text string) []model.Chunk {
	return tokenizeParagraph(text, model.ModeWord, 0)
}

// SplitParagraphs splits text on blank-line boundaries (two or more
// consecutive newlines, ignoring horizontal whitespace on the blank line).
// Whitespace-only input yields no paragraphs.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

func tokenizeParagraph(text string, mode model.ChunkMode, customWidth int) []model.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if mode == model.ModeWord {
		chunks := make([]model.Chunk, 0, len(words))
		for _, w := range words {
			chunks = append(chunks, newChunk(w, 1))
		}
		return chunks
	}
	budget := widthBudget(mode, customWidth)
	return groupWords(words, budget)
}

func widthBudget(mode model.ChunkMode, customWidth int) int {
	switch mode {
	case model.ModePhrase:
		return PhraseWidth
	case model.ModeCustom:
		if customWidth > 0 {
			return customWidth
		}
		return ClauseWidth
	default:
		return ClauseWidth
	}
}

// groupWords greedily accumulates words into chunks. A chunk ends when the
// next word would overflow the budget, when the last word ends in major
// punctuation, or when it ends in minor punctuation and the chunk has
// reached 60% of the budget.
func groupWords(words []string, budget int) []model.Chunk {
	var chunks []model.Chunk
	var acc []string
	accLen := 0

	flush := func() {
		if len(acc) == 0 {
			return
		}
		chunks = append(chunks, newChunk(strings.Join(acc, " "), len(acc)))
		acc = nil
		accLen = 0
	}

	for _, word := range words {
		if len(acc) > 0 && accLen+1+len(word) > budget {
			flush()
		}
		if len(acc) > 0 {
			accLen++
		}
		acc = append(acc, word)
		accLen += len(word)

		switch {
		case endsInMajorPunct(word):
			flush()
		case endsInMinorPunct(word) && float64(accLen) >= minorBreakFraction*float64(budget):
			flush()
		}
	}
	flush()
	return chunks
}

func endsInMajorPunct(word string) bool {
	r := lastRune(word)
	return r == '.' || r == '!' || r == '?' || r == ';'
}

func endsInMinorPunct(word string) bool {
	switch lastRune(word) {
	case ',', ':', '-', '—', '–':
		return true
	}
	return false
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}

func newChunk(text string, wordCount int) model.Chunk {
	return model.Chunk{
		Text:      text,
		WordCount: wordCount,
		ORPIndex:  ORPIndex(text),
	}
}

func breakMarker() model.Chunk {
	return model.Chunk{}
}
