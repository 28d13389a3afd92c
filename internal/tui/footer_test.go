package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/artemgv/ritmo/internal/model"
)

func testChunks() []model.Chunk {
	return []model.Chunk{
		{Text: "The quick", WordCount: 2, ORPIndex: 1},
		{Text: "brown fox", WordCount: 2, ORPIndex: 1},
		{Text: "jumps.", WordCount: 1, ORPIndex: 1},
		{Text: "Over the dog.", WordCount: 3, ORPIndex: 1},
	}
}

func newTestModel() *Model {
	cfg := model.ReadingConfig{
		Mode:             model.ModePhrase,
		WPM:              300,
		MinWPM:           100,
		MaxWPM:           600,
		PreviewSentences: 1,
	}
	return NewModel(cfg, nil, testChunks(), "test.txt", 0)
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel()
	out := stripANSI(m.renderFooter())
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !containsAll(out, []string{"Progress 25%", "300/300 WPM", "Paused"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestFooterReflectsPreview(t *testing.T) {
	m := newTestModel()
	m.player.StartPreview(m.startedAt, 1)
	out := stripANSI(m.renderFooter())
	if !strings.Contains(out, "Preview") {
		t.Fatalf("expected preview marker in footer: %s", out)
	}
}

func TestContentShowsBreakGuide(t *testing.T) {
	chunks := []model.Chunk{
		{Text: "", WordCount: 0},
		{Text: "end.", WordCount: 1, ORPIndex: 1},
	}
	m := NewModel(model.ReadingConfig{WPM: 300}, nil, chunks, "", 0)
	out := stripANSI(m.renderContent())
	if !strings.Contains(out, "·") {
		t.Fatalf("expected paragraph guide for break chunk, got %q", out)
	}
}

func TestContentShowsFinalChunk(t *testing.T) {
	m := newTestModel()
	now := time.Now()
	for i := 0; i < len(testChunks())-1; i++ {
		if !m.player.Advance(now) {
			t.Fatalf("Advance failed at step %d", i)
		}
	}
	out := stripANSI(m.renderContent())
	if !strings.Contains(out, "Over the dog.") {
		t.Fatalf("final chunk not displayed, got %q", out)
	}
}

func TestContentShowsDoneAfterFinalChunk(t *testing.T) {
	m := newTestModel()
	now := time.Now()
	for i := 0; i < len(testChunks())-1; i++ {
		m.player.Advance(now)
	}
	if m.player.Advance(now) {
		t.Fatal("Advance past the end succeeded")
	}
	out := stripANSI(m.renderContent())
	if !strings.Contains(out, "Done") {
		t.Fatalf("expected done banner past the end, got %q", out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
