package layout

import (
	"github.com/artemgv/ritmo/internal/chunk"
	"github.com/artemgv/ritmo/internal/model"
)

// TokenizeLine applies the chunk grouping rules to a single laid-out line
// and stamps each chunk with its page/line location and character span.
// Chunks for one line are produced in strictly increasing StartChar order;
// blank and heading-free lines with no words yield nothing.
func TokenizeLine(line model.Line, mode model.ChunkMode, customWidth, pageIndex, lineIndex int) []model.Chunk {
	spans := wordSpans(line.Text)
	if len(spans) == 0 {
		return nil
	}

	groups := groupSpans(line.Text, spans, mode, customWidth)
	chunks := make([]model.Chunk, 0, len(groups))
	for _, g := range groups {
		text := line.Text[g.start:g.end]
		chunks = append(chunks, model.Chunk{
			Text:      text,
			WordCount: g.words,
			ORPIndex:  chunk.ORPIndex(text),
			Layout: &model.LayoutInfo{
				PageIndex: pageIndex,
				LineIndex: lineIndex,
				StartChar: g.start,
				EndChar:   g.end,
			},
		})
	}
	return chunks
}

// TokenizePage tokenizes every line of a page, returning a copy of the
// page with LineChunks populated.
func TokenizePage(page model.Page, pageIndex int, mode model.ChunkMode, customWidth int) model.Page {
	out := model.Page{
		Lines:      page.Lines,
		LineChunks: make([][]model.Chunk, len(page.Lines)),
	}
	for i, line := range page.Lines {
		out.LineChunks[i] = TokenizeLine(line, mode, customWidth, pageIndex, i)
	}
	return out
}

type span struct {
	start int
	end   int
}

type spanGroup struct {
	start int
	end   int
	words int
}

// wordSpans returns the half-open byte ranges of the whitespace-separated
// words in text, in order.
func wordSpans(text string) []span {
	var spans []span
	start := -1
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' || text[i] == '\t' {
			if start >= 0 {
				spans = append(spans, span{start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start: start, end: len(text)})
	}
	return spans
}

// groupSpans mirrors the paragraph tokenizer's accumulation rules while
// tracking character offsets instead of rebuilding strings.
func groupSpans(text string, spans []span, mode model.ChunkMode, customWidth int) []spanGroup {
	if mode == model.ModeWord {
		groups := make([]spanGroup, 0, len(spans))
		for _, s := range spans {
			groups = append(groups, spanGroup{start: s.start, end: s.end, words: 1})
		}
		return groups
	}

	budget := lineBudget(mode, customWidth)
	var groups []spanGroup
	cur := spanGroup{start: -1}

	flush := func() {
		if cur.words > 0 {
			groups = append(groups, cur)
		}
		cur = spanGroup{start: -1}
	}

	for _, s := range spans {
		wordLen := s.end - s.start
		if cur.words > 0 && (cur.end-cur.start)+1+wordLen > budget {
			flush()
		}
		if cur.words == 0 {
			cur.start = s.start
		}
		cur.end = s.end
		cur.words++

		word := text[s.start:s.end]
		accLen := cur.end - cur.start
		switch {
		case endsInMajor(word):
			flush()
		case endsInMinor(word) && float64(accLen) >= 0.6*float64(budget):
			flush()
		}
	}
	flush()
	return groups
}

func lineBudget(mode model.ChunkMode, customWidth int) int {
	switch mode {
	case model.ModePhrase:
		return chunk.PhraseWidth
	case model.ModeCustom:
		if customWidth > 0 {
			return customWidth
		}
		return chunk.ClauseWidth
	default:
		return chunk.ClauseWidth
	}
}

func endsInMajor(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case '.', '!', '?', ';':
		return true
	}
	return false
}

func endsInMinor(word string) bool {
	if word == "" {
		return false
	}
	switch word[len(word)-1] {
	case ',', ':', '-':
		return true
	}
	// Em and en dashes are multi-byte.
	for _, suffix := range []string{"—", "–"} {
		if len(word) >= len(suffix) && word[len(word)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
