package stats

import (
	"math"
	"testing"
)

func TestSessionWPM(t *testing.T) {
	if got := SessionWPM(300, 60000); math.Abs(got-300) > 1e-9 {
		t.Fatalf("SessionWPM(300 words, 1 min) = %f, want 300", got)
	}
	if got := SessionWPM(150, 30000); math.Abs(got-300) > 1e-9 {
		t.Fatalf("SessionWPM(150 words, 30s) = %f, want 300", got)
	}
	if got := SessionWPM(100, 0); got != 0 {
		t.Fatalf("SessionWPM(zero duration) = %f, want 0", got)
	}
	if got := SessionWPM(100, -50); got != 0 {
		t.Fatalf("SessionWPM(negative duration) = %f, want 0", got)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	got := MovingAverage(values, 2)
	want := []float64{2, 3, 5, 7}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("value %d: expected %f, got %f", i, want[i], got[i])
		}
	}

	same := MovingAverage(values, 1)
	for i := range values {
		if same[i] != values[i] {
			t.Fatalf("window 1 should be identity, index %d differs", i)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	flat := Sparkline([]float64{5, 5, 5})
	if len(flat) != 3 {
		t.Fatalf("expected 3 chars, got %d", len(flat))
	}
	if flat[0] != flat[1] || flat[1] != flat[2] {
		t.Fatalf("flat series should render uniform chars: %q", flat)
	}
	ramp := Sparkline([]float64{0, 5, 10})
	if ramp[0] != sparkChars[0] {
		t.Fatalf("minimum should map to lowest char: %q", ramp)
	}
	if ramp[2] != sparkChars[len(sparkChars)-1] {
		t.Fatalf("maximum should map to highest char: %q", ramp)
	}
}
