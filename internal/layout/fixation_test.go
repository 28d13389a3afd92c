package layout

import (
	"testing"
	"unicode/utf8"

	"github.com/artemgv/ritmo/internal/model"
)

func TestLineFixationsEmpty(t *testing.T) {
	if fixations := LineFixations("", 8); len(fixations) != 0 {
		t.Errorf("expected no fixations for empty line, got %v", fixations)
	}
}

func TestLineFixationsBounds(t *testing.T) {
	texts := []string{
		"word",
		"the quick brown fox jumps over the lazy dog",
		"a b c d e f g h i j k l m n o p",
		"punctuation, everywhere. all; over: the place",
	}
	for _, text := range texts {
		fixations := LineFixations(text, 8)
		if len(fixations) == 0 {
			t.Fatalf("LineFixations(%q): expected at least one fixation", text)
		}
		prev := -1
		for _, fix := range fixations {
			if fix <= prev {
				t.Errorf("LineFixations(%q): indices not strictly increasing: %v", text, fixations)
			}
			if fix < 0 || fix >= len(text) {
				t.Fatalf("LineFixations(%q): index %d out of range", text, fix)
			}
			if text[fix] == ' ' {
				t.Errorf("LineFixations(%q): index %d lands on whitespace", text, fix)
			}
			prev = fix
		}
	}
}

func TestLineFixationsSkipsShortLeadingWord(t *testing.T) {
	// "the" is a short function word; the first fixation should land in
	// "following" instead.
	fixations := LineFixations("the following sentence continues", 10)
	if len(fixations) == 0 {
		t.Fatal("expected fixations")
	}
	if fixations[0] < 4 {
		t.Errorf("first fixation %d inside the leading short word", fixations[0])
	}

	// A short word with nothing after it still gets fixated.
	fixations = LineFixations("it", 10)
	if len(fixations) != 1 {
		t.Fatalf("expected a single fixation, got %v", fixations)
	}
}

func TestLineFixationsSpacing(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india"
	budget := 12
	fixations := LineFixations(text, budget)
	if len(fixations) < 2 {
		t.Fatalf("expected multiple fixations, got %v", fixations)
	}
	for i := 1; i < len(fixations); i++ {
		gap := fixations[i] - fixations[i-1]
		if gap > 2*budget {
			t.Errorf("fixation gap %d far exceeds budget %d: %v", gap, budget, fixations)
		}
	}
}

func TestLineFixationsNonASCIIByteOffsets(t *testing.T) {
	// "éclair" has its recognition point on the third rune ('l'), which
	// sits at byte 3 because 'é' is two bytes wide.
	fixations := LineFixations("éclair", 8)
	if len(fixations) != 1 {
		t.Fatalf("fixations = %v, want exactly one", fixations)
	}
	if fixations[0] != 3 {
		t.Errorf("fixation byte offset = %d, want 3", fixations[0])
	}
}

func TestLineFixationsLandOnRuneStarts(t *testing.T) {
	text := "the café serves naïve crêpes daily here"
	for _, fix := range LineFixations(text, 8) {
		if fix < 0 || fix >= len(text) {
			t.Fatalf("fixation %d out of range for %q", fix, text)
		}
		if !utf8.RuneStart(text[fix]) {
			t.Errorf("fixation %d lands inside a multi-byte rune", fix)
		}
	}
}

func TestFocusTargetsDedup(t *testing.T) {
	targets := FocusTargets("alpha beta", []int{1, 2, 7})
	want := []model.FocusTarget{{StartChar: 0, EndChar: 6}, {StartChar: 6, EndChar: 10}}
	if len(targets) != len(want) {
		t.Fatalf("got %d targets %v, want %d", len(targets), targets, len(want))
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("target %d = %+v, want %+v", i, targets[i], want[i])
		}
	}
}

func TestFocusTargetsPartitionLine(t *testing.T) {
	text := "the quick brown fox jumps over it"
	fixations := LineFixations(text, 7)
	targets := FocusTargets(text, fixations)
	if len(targets) == 0 {
		t.Fatal("expected targets")
	}
	if targets[0].StartChar != 0 {
		t.Errorf("first target starts at %d, want 0", targets[0].StartChar)
	}
	if targets[len(targets)-1].EndChar != len(text) {
		t.Errorf("last target ends at %d, want %d", targets[len(targets)-1].EndChar, len(text))
	}
	for i := 1; i < len(targets); i++ {
		if targets[i].StartChar != targets[i-1].EndChar {
			t.Errorf("gap between target %d and %d: %+v", i-1, i, targets)
		}
	}
	for i, target := range targets {
		if target.StartChar >= target.EndChar {
			t.Errorf("target %d is empty: %+v", i, target)
		}
	}
}

func TestWordTargets(t *testing.T) {
	targets := WordTargets("one two three")
	want := []model.FocusTarget{{StartChar: 0, EndChar: 4}, {StartChar: 4, EndChar: 8}, {StartChar: 8, EndChar: 13}}
	if len(targets) != len(want) {
		t.Fatalf("got %v, want %v", targets, want)
	}
	for i := range want {
		if targets[i] != want[i] {
			t.Errorf("target %d = %+v, want %+v", i, targets[i], want[i])
		}
	}
}

func TestFocusTargetTimingsByChars(t *testing.T) {
	text := "aaaa bbbbbbbb"
	targets := []model.FocusTarget{{StartChar: 0, EndChar: 5}, {StartChar: 5, EndChar: 13}}
	timings := FocusTargetTimings(text, targets, TimingByChars)
	if len(timings) != 2 {
		t.Fatalf("got %d timings", len(timings))
	}
	if timings[0].StartPct != 0 {
		t.Errorf("first timing starts at %v, want 0", timings[0].StartPct)
	}
	if timings[1].EndPct != 100 {
		t.Errorf("last timing ends at %v, want 100", timings[1].EndPct)
	}
	if timings[0].EndPct != timings[1].StartPct {
		t.Errorf("timings not contiguous: %v", timings)
	}
	wantFirst := 5.0 / 13.0 * 100
	if diff := timings[0].EndPct - wantFirst; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("first share = %v, want %v", timings[0].EndPct, wantFirst)
	}
}

func TestFocusTargetTimingsWordModeBonus(t *testing.T) {
	text := "stop. here, and now"
	targets := WordTargets(text)
	timings := FocusTargetTimings(text, targets, TimingByWords)
	if len(timings) != 4 {
		t.Fatalf("got %d timings", len(timings))
	}
	share := func(i int) float64 { return timings[i].EndPct - timings[i].StartPct }
	// Sentence-ending punctuation earns a larger share than a comma,
	// which earns more than a bare word.
	if !(share(0) > share(1)) {
		t.Errorf("sentence share %v not above comma share %v", share(0), share(1))
	}
	if !(share(1) > share(2)) {
		t.Errorf("comma share %v not above plain share %v", share(1), share(2))
	}
	total := 0.0
	for i := range timings {
		total += share(i)
	}
	if total < 99.999 || total > 100.001 {
		t.Errorf("shares sum to %v, want 100", total)
	}
	if timings[len(timings)-1].EndPct != 100 {
		t.Errorf("last timing ends at %v", timings[len(timings)-1].EndPct)
	}
}

func TestSegmentIntoParagraphsMergesShort(t *testing.T) {
	text := "Short intro.\n\nThis paragraph is comfortably longer than the minimum character threshold used here."
	paras := SegmentIntoParagraphs(text, 40, 500)
	if len(paras) != 1 {
		t.Fatalf("expected merge into one paragraph, got %d: %v", len(paras), paras)
	}
	if got := paras[0]; got[:len("Short intro.")] != "Short intro." {
		t.Errorf("merged paragraph does not start with the short one: %q", got)
	}
}

func TestSegmentIntoParagraphsSplitsAtSentenceEnd(t *testing.T) {
	sentence := "This sentence is exactly long enough to matter for splitting purposes."
	text := sentence + " " + sentence + " " + sentence
	paras := SegmentIntoParagraphs(text, 10, 100)
	if len(paras) < 2 {
		t.Fatalf("expected a split, got %d paragraphs", len(paras))
	}
	for i, para := range paras[:len(paras)-1] {
		last := para[len(para)-1]
		if last != '.' && last != '!' && last != '?' {
			t.Errorf("paragraph %d does not end at a sentence terminator: %q", i, para)
		}
	}
}

func TestSegmentIntoParagraphsStripsHeadings(t *testing.T) {
	text := "## Heading\nBody sentence that is long enough to stand alone as a paragraph here."
	paras := SegmentIntoParagraphs(text, 10, 500)
	for _, para := range paras {
		if len(para) > 0 && para[0] == '#' {
			t.Errorf("heading marker survived segmentation: %q", para)
		}
	}
}

func TestTokenizeLineSpans(t *testing.T) {
	line := model.Line{Text: "the quick brown fox jumps over the lazy dog", Type: model.LineBody}
	for _, mode := range []model.ChunkMode{model.ModeWord, model.ModePhrase, model.ModeClause} {
		chunks := TokenizeLine(line, mode, 0, 2, 5)
		if len(chunks) == 0 {
			t.Fatalf("mode %v: expected chunks", mode)
		}
		prevStart := -1
		for i, c := range chunks {
			if c.Layout == nil {
				t.Fatalf("mode %v: chunk %d has no layout info", mode, i)
			}
			li := c.Layout
			if li.PageIndex != 2 || li.LineIndex != 5 {
				t.Errorf("mode %v: chunk %d located at page %d line %d", mode, i, li.PageIndex, li.LineIndex)
			}
			if li.StartChar >= li.EndChar || li.EndChar > len(line.Text) {
				t.Errorf("mode %v: chunk %d span [%d,%d) invalid", mode, i, li.StartChar, li.EndChar)
			}
			if li.StartChar <= prevStart {
				t.Errorf("mode %v: chunk spans not strictly increasing", mode)
			}
			if line.Text[li.StartChar:li.EndChar] != c.Text {
				t.Errorf("mode %v: chunk %d text %q does not match span %q",
					mode, i, c.Text, line.Text[li.StartChar:li.EndChar])
			}
			prevStart = li.StartChar
		}
	}
}

func TestTokenizeLineBlank(t *testing.T) {
	if chunks := TokenizeLine(model.Line{Type: model.LineBlank}, model.ModeWord, 0, 0, 0); len(chunks) != 0 {
		t.Errorf("expected no chunks for blank line, got %d", len(chunks))
	}
}

func TestTokenizePagePopulatesLineChunks(t *testing.T) {
	lines := FlowTextIntoLines("A short paragraph to lay out over lines.", 20)
	pages := GroupIntoPages(lines, 5)
	if len(pages) == 0 {
		t.Fatal("expected a page")
	}
	page := TokenizePage(pages[0], 0, model.ModePhrase, 0)
	if len(page.LineChunks) != len(page.Lines) {
		t.Fatalf("LineChunks length %d, lines %d", len(page.LineChunks), len(page.Lines))
	}
	for i, chunks := range page.LineChunks {
		for _, c := range chunks {
			if c.Layout.LineIndex != i {
				t.Errorf("chunk on line %d stamped with line %d", i, c.Layout.LineIndex)
			}
		}
	}
}
