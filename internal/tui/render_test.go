package tui

import (
	"strings"
	"testing"

	"github.com/artemgv/ritmo/internal/model"
)

func TestRenderChunkCenteredContainsText(t *testing.T) {
	c := model.Chunk{Text: "reading", WordCount: 1, ORPIndex: 2}
	out := renderChunkCentered(c, 40)
	plain := stripANSI(out)
	if !strings.Contains(plain, "reading") {
		t.Fatalf("expected chunk text in output, got %q", plain)
	}
}

func TestPivotColumnStaysFixed(t *testing.T) {
	width := 40
	chunks := []model.Chunk{
		{Text: "a", WordCount: 1, ORPIndex: 0},
		{Text: "reading", WordCount: 1, ORPIndex: 2},
		{Text: "comprehension", WordCount: 1, ORPIndex: 4},
	}
	want := width / 2
	for _, c := range chunks {
		if got := pivotColumn(c, width); got != want {
			t.Errorf("pivotColumn(%q) = %d, want %d", c.Text, got, want)
		}
	}
}

func TestPivotColumnNarrowScreen(t *testing.T) {
	c := model.Chunk{Text: "comprehension", WordCount: 1, ORPIndex: 12}
	// Pad clamps to zero when the left part does not fit.
	if got := pivotColumn(c, 4); got != 12 {
		t.Errorf("pivotColumn = %d, want 12", got)
	}
}

func TestRenderChunkCenteredEmpty(t *testing.T) {
	if out := renderChunkCentered(model.Chunk{}, 40); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
