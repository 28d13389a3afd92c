package recall

import (
	"testing"
	"time"
)

func TestScoreRoundPairsByPosition(t *testing.T) {
	now := time.Now()
	results := ScoreRound("The quick brown fox", "the quick brown fox", 0, now)
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, r := range results {
		if r.Loss != 0 {
			t.Errorf("word %d: loss = %v, want 0 (case must not matter)", i, r.Loss)
		}
		if r.WordIndex != i {
			t.Errorf("word %d: WordIndex = %d", i, r.WordIndex)
		}
		if r.Timestamp != now {
			t.Errorf("word %d: timestamp not stamped", i)
		}
	}
}

func TestScoreRoundMissingTail(t *testing.T) {
	results := ScoreRound("one two three", "one", 0, time.Now())
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Loss != 0 {
		t.Errorf("matched word loss = %v, want 0", results[0].Loss)
	}
	for _, r := range results[1:] {
		if r.Loss != 1 {
			t.Errorf("missing word %q: loss = %v, want 1", r.Actual, r.Loss)
		}
	}
}

func TestScoreRoundExtraTypedWordsIgnored(t *testing.T) {
	results := ScoreRound("just two", "just two plus extras", 0, time.Now())
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
}

func TestScoreRoundBaseIndexOffsets(t *testing.T) {
	results := ScoreRound("alpha beta", "alpha beta", 10, time.Now())
	if results[0].WordIndex != 10 || results[1].WordIndex != 11 {
		t.Errorf("word indices = %d, %d, want 10, 11", results[0].WordIndex, results[1].WordIndex)
	}
}

func TestExactMatches(t *testing.T) {
	results := ScoreRound("one two three", "one too three", 0, time.Now())
	if got := ExactMatches(results); got != 2 {
		t.Errorf("ExactMatches = %d, want 2", got)
	}
}

func TestParagraphsSplitsText(t *testing.T) {
	text := "First paragraph with enough words in it to stand on its own as a recall round here.\n\n" +
		"Second paragraph, also long enough to survive the minimum length merge rule applied."
	paras := Paragraphs(text)
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2: %q", len(paras), paras)
	}
}
