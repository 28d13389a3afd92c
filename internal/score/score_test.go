package score

import (
	"testing"

	"github.com/artemgv/ritmo/internal/model"
)

func TestNormalizedLossIdentity(t *testing.T) {
	if loss := NormalizedLoss("hello", "hello"); loss != 0 {
		t.Errorf("identical words: loss = %v, want 0", loss)
	}
}

func TestNormalizedLossSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"reading", "leading"},
		{"cat", "catalog"},
		{"one", "two"},
	}
	for _, p := range pairs {
		a := NormalizedLoss(p[0], p[1])
		b := NormalizedLoss(p[1], p[0])
		if a != b {
			t.Errorf("NormalizedLoss(%q, %q) = %v but reversed = %v", p[0], p[1], a, b)
		}
	}
}

func TestNormalizedLossCaseAndPunctInsensitive(t *testing.T) {
	if loss := NormalizedLoss("Hello!", "hello"); loss != 0 {
		t.Errorf("case/punct variation: loss = %v, want 0", loss)
	}
	if loss := NormalizedLoss("it's", "ITS"); loss != 0 {
		t.Errorf("apostrophe variation: loss = %v, want 0", loss)
	}
}

func TestNormalizedLossBounds(t *testing.T) {
	tests := [][2]string{
		{"abc", "xyz"},
		{"a", "completely"},
		{"", "word"},
		{"", ""},
	}
	for _, p := range tests {
		loss := NormalizedLoss(p[0], p[1])
		if loss < 0 || loss > 1 {
			t.Errorf("NormalizedLoss(%q, %q) = %v outside [0,1]", p[0], p[1], loss)
		}
	}
	if loss := NormalizedLoss("abc", "xyz"); loss != 1 {
		t.Errorf("disjoint equal-length words: loss = %v, want 1", loss)
	}
	if loss := NormalizedLoss("", ""); loss != 0 {
		t.Errorf("two empty inputs: loss = %v, want 0", loss)
	}
}

func TestIsExactMatchAgreesWithLoss(t *testing.T) {
	pairs := [][2]string{
		{"word", "word"},
		{"Word.", "word"},
		{"word", "ward"},
		{"", "x"},
	}
	for _, p := range pairs {
		exact := IsExactMatch(p[0], p[1])
		zero := NormalizedLoss(p[0], p[1]) == 0
		if exact != zero {
			t.Errorf("IsExactMatch(%q, %q) = %v but loss==0 is %v", p[0], p[1], exact, zero)
		}
	}
}

func TestAggregateNeutralDefaults(t *testing.T) {
	summary := Aggregate(model.PredictionStats{})
	if summary.ExactPercent != 0 || summary.AvgScorePercent != 100 {
		t.Errorf("empty stats: got %+v, want 0%% exact / 100%% score", summary)
	}
}

func TestAggregateRounding(t *testing.T) {
	var stats model.PredictionStats
	stats.Add(Compare("hello", "hello", 0))
	stats.Add(Compare("warld", "world", 1))
	stats.Add(Compare("foo", "foo", 2))

	if stats.TotalWords != 3 || stats.ExactMatches != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	summary := Aggregate(stats)
	if summary.ExactPercent != 67 {
		t.Errorf("exact percent = %d, want 67", summary.ExactPercent)
	}
	// Losses: 0, 0.2, 0 -> average 0.0667 -> 93% score.
	if summary.AvgScorePercent != 93 {
		t.Errorf("avg score percent = %d, want 93", summary.AvgScorePercent)
	}
}
