package layout

import (
	"strings"

	"github.com/artemgv/ritmo/internal/chunk"
)

// Paragraph length bounds applied when callers pass non-positive values.
const (
	DefaultMinParagraph = 80
	DefaultMaxParagraph = 600
)

// SegmentIntoParagraphs splits raw text into semantic paragraphs suited to
// recall rounds. Heading markers are stripped, paragraphs shorter than
// minChars are merged into the following paragraph, and paragraphs longer
// than maxChars are split at the nearest sentence terminator at or before
// the limit — never mid-sentence. When no terminator exists before the
// limit the paragraph is left whole.
func SegmentIntoParagraphs(text string, minChars, maxChars int) []string {
	if minChars <= 0 {
		minChars = DefaultMinParagraph
	}
	if maxChars <= 0 {
		maxChars = DefaultMaxParagraph
	}
	if maxChars < minChars {
		maxChars = minChars
	}

	blocks := chunk.SplitParagraphs(text)
	var flat []string
	for _, block := range blocks {
		var kept []string
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if title, _, ok := parseHeading(line); ok {
				line = title
			}
			if line != "" {
				kept = append(kept, line)
			}
		}
		if len(kept) > 0 {
			flat = append(flat, strings.Join(kept, " "))
		}
	}

	merged := mergeShort(flat, minChars)

	var out []string
	for _, para := range merged {
		out = append(out, splitLong(para, maxChars)...)
	}
	return out
}

// mergeShort folds paragraphs under the minimum length into the paragraph
// that follows them. A trailing short paragraph has no follower and stays
// as is.
func mergeShort(paragraphs []string, minChars int) []string {
	var out []string
	carry := ""
	for _, para := range paragraphs {
		if carry != "" {
			para = carry + " " + para
			carry = ""
		}
		if len(para) < minChars {
			carry = para
			continue
		}
		out = append(out, para)
	}
	if carry != "" {
		out = append(out, carry)
	}
	return out
}

// splitLong cuts an over-long paragraph at sentence terminators so that
// every piece before the final one ends a sentence.
func splitLong(para string, maxChars int) []string {
	var out []string
	for len(para) > maxChars {
		cut := lastSentenceEnd(para, maxChars)
		if cut < 0 {
			break
		}
		out = append(out, strings.TrimSpace(para[:cut+1]))
		para = strings.TrimSpace(para[cut+1:])
	}
	if para != "" {
		out = append(out, para)
	}
	return out
}

// lastSentenceEnd returns the offset of the last sentence-ending
// punctuation at or before limit, or -1. The terminator must close the
// sentence: it is followed by whitespace or the end of the paragraph.
func lastSentenceEnd(para string, limit int) int {
	if limit >= len(para) {
		limit = len(para) - 1
	}
	for i := limit; i >= 0; i-- {
		switch para[i] {
		case '.', '!', '?':
			if i+1 >= len(para) || para[i+1] == ' ' {
				return i
			}
		}
	}
	return -1
}
