// Package sentence detects genuine sentence boundaries in a chunk
// sequence, distinguishing them from abbreviations and initials.
package sentence

import (
	"strings"

	"github.com/artemgv/ritmo/internal/model"
)

// abbreviations lists common period-terminated tokens that do not end a
// sentence. Lookup is case-insensitive on the token without its final
// period.
var abbreviations = map[string]struct{}{
	"mr":     {},
	"mrs":    {},
	"ms":     {},
	"dr":     {},
	"prof":   {},
	"rev":    {},
	"sr":     {},
	"jr":     {},
	"st":     {},
	"gen":    {},
	"hon":    {},
	"etc":    {},
	"vs":     {},
	"e.g":    {},
	"i.e":    {},
	"cf":     {},
	"al":     {},
	"inc":    {},
	"ltd":    {},
	"co":     {},
	"corp":   {},
	"fig":    {},
	"vol":    {},
	"no":     {},
	"approx": {},
	"dept":   {},
	"est":    {},
	"min":    {},
	"max":    {},
	"sec":    {},
}

// IsBoundary reports whether the chunk at index ends a sentence. Tokens
// ending in '!', '?', or an ellipsis always do; a trailing period counts
// only when the token is not a known abbreviation or an initials pattern.
// When uncertain the detector prefers not-a-boundary.
func IsBoundary(chunks []model.Chunk, index int) bool {
	if index < 0 || index >= len(chunks) {
		return false
	}
	c := chunks[index]
	if c.IsBreak() {
		return false
	}
	word := lastWord(c.Text)
	if word == "" {
		return false
	}
	if strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?") {
		return true
	}
	if strings.HasSuffix(word, "...") || strings.HasSuffix(word, "…") {
		return true
	}
	if !strings.HasSuffix(word, ".") {
		return false
	}
	if isAbbreviation(word) || isInitials(word) {
		return false
	}
	if chainedInitials(chunks, index) {
		return false
	}
	return true
}

// FindPreviewTarget walks forward from startIndex counting sentence
// boundaries, skipping paragraph-break markers, and returns the index of
// the sentenceCount-th boundary. When fewer boundaries remain it returns
// the index of the last real token instead.
func FindPreviewTarget(chunks []model.Chunk, startIndex, sentenceCount int) int {
	if len(chunks) == 0 {
		return 0
	}
	if startIndex < 0 {
		startIndex = 0
	}
	if sentenceCount < 1 {
		sentenceCount = 1
	}
	found := 0
	lastReal := startIndex
	for i := startIndex; i < len(chunks); i++ {
		if chunks[i].IsBreak() {
			continue
		}
		lastReal = i
		if IsBoundary(chunks, i) {
			found++
			if found == sentenceCount {
				return i
			}
		}
	}
	return lastReal
}

func lastWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func isAbbreviation(word string) bool {
	trimmed := strings.TrimSuffix(strings.ToLower(word), ".")
	trimmed = strings.TrimLeft(trimmed, "(\"'")
	_, ok := abbreviations[trimmed]
	return ok
}

// isInitials matches repeated letter-dot groups such as "U.S." or
// "p.m.".
func isInitials(word string) bool {
	if len(word) < 4 {
		return false
	}
	groups := 0
	i := 0
	for i < len(word) {
		if !isLetter(word[i]) {
			return false
		}
		if i+1 >= len(word) || word[i+1] != '.' {
			return false
		}
		groups++
		i += 2
	}
	return groups >= 2
}

// chainedInitials catches initials split across neighbouring tokens: when
// the concatenation of this token and its neighbours (whitespace removed)
// places another period within two characters of the trailing one, the
// period is treated as part of an initials run rather than a sentence end.
func chainedInitials(chunks []model.Chunk, index int) bool {
	cur := concatWords(chunks[index].Text)
	if !strings.HasSuffix(cur, ".") {
		return false
	}
	prev := ""
	if index > 0 && !chunks[index-1].IsBreak() {
		prev = concatWords(chunks[index-1].Text)
	}
	joined := prev + cur
	dot := len(joined) - 1
	if index+1 < len(chunks) && !chunks[index+1].IsBreak() {
		joined += concatWords(chunks[index+1].Text)
	}
	for offset := 1; offset <= 2; offset++ {
		if dot+offset < len(joined) && joined[dot+offset] == '.' {
			return true
		}
		if dot-offset >= 0 && joined[dot-offset] == '.' {
			return true
		}
	}
	return false
}

func concatWords(text string) string {
	return strings.Join(strings.Fields(text), "")
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
