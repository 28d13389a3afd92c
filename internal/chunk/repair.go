package chunk

import (
	"strings"
	"unicode"
)

// RepairRunOnSentences inserts a space where a lowercase letter, sentence
// punctuation, and an uppercase letter run together ("end.Next" becomes
// "end. Next"). Lossy text extraction drops the inter-sentence whitespace;
// abbreviations are unaffected because a period after an uppercase letter
// never triggers the repair.
func RepairRunOnSentences(text string) string {
	runes := []rune(text)
	if len(runes) < 3 {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 8)
	for i, r := range runes {
		b.WriteRune(r)
		if i == 0 || i+1 >= len(runes) {
			continue
		}
		if isSentencePunct(r) && unicode.IsLower(runes[i-1]) && unicode.IsUpper(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isSentencePunct(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
