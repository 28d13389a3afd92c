package sentence

import (
	"testing"

	"github.com/artemgv/ritmo/internal/model"
)

func wordChunks(words ...string) []model.Chunk {
	chunks := make([]model.Chunk, len(words))
	for i, w := range words {
		if w == "" {
			chunks[i] = model.Chunk{}
			continue
		}
		chunks[i] = model.Chunk{Text: w, WordCount: 1}
	}
	return chunks
}

func TestIsBoundaryAbbreviation(t *testing.T) {
	chunks := wordChunks("Dr.", "Smith", "arrived.")
	if IsBoundary(chunks, 0) {
		t.Error("Dr. treated as a sentence boundary")
	}
	if IsBoundary(chunks, 1) {
		t.Error("Smith treated as a sentence boundary")
	}
	if !IsBoundary(chunks, 2) {
		t.Error("arrived. not treated as a sentence boundary")
	}
}

func TestIsBoundaryPunctuation(t *testing.T) {
	chunks := wordChunks("Really?", "Yes!", "Wait...", "plain", "done.")
	for _, idx := range []int{0, 1, 2, 4} {
		if !IsBoundary(chunks, idx) {
			t.Errorf("chunk %d (%q) should be a boundary", idx, chunks[idx].Text)
		}
	}
	if IsBoundary(chunks, 3) {
		t.Error("unpunctuated word treated as a boundary")
	}
}

func TestIsBoundaryInitials(t *testing.T) {
	chunks := wordChunks("The", "U.S.", "team", "won.")
	if IsBoundary(chunks, 1) {
		t.Error("U.S. treated as a sentence boundary")
	}
	if !IsBoundary(chunks, 3) {
		t.Error("won. not treated as a sentence boundary")
	}
}

func TestIsBoundaryChainedInitials(t *testing.T) {
	// Initials split across tokens concatenate to periods two characters
	// apart.
	chunks := wordChunks("J.", "R.", "Tolkien", "wrote.")
	if IsBoundary(chunks, 0) || IsBoundary(chunks, 1) {
		t.Error("chained initials treated as sentence boundaries")
	}
	if !IsBoundary(chunks, 3) {
		t.Error("wrote. not treated as a sentence boundary")
	}
}

func TestIsBoundarySkipsBreakMarkers(t *testing.T) {
	chunks := wordChunks("end.", "", "Next")
	if IsBoundary(chunks, 1) {
		t.Error("break marker treated as a boundary")
	}
}

func TestIsBoundaryOutOfRange(t *testing.T) {
	chunks := wordChunks("word.")
	if IsBoundary(chunks, -1) || IsBoundary(chunks, 5) {
		t.Error("out-of-range index treated as a boundary")
	}
}

func TestFindPreviewTarget(t *testing.T) {
	chunks := wordChunks("Alpha", "beta.", "Gamma", "delta?", "Epsilon")
	if got := FindPreviewTarget(chunks, 0, 2); got != 3 {
		t.Errorf("FindPreviewTarget(2 sentences) = %d, want 3", got)
	}
	if got := FindPreviewTarget(chunks, 0, 1); got != 1 {
		t.Errorf("FindPreviewTarget(1 sentence) = %d, want 1", got)
	}
}

func TestFindPreviewTargetFallsBackToLastReal(t *testing.T) {
	chunks := wordChunks("Alpha", "beta.", "Gamma", "", "delta")
	if got := FindPreviewTarget(chunks, 2, 3); got != 4 {
		t.Errorf("exhausted boundaries: got %d, want last real index 4", got)
	}
}

func TestFindPreviewTargetSkipsBreaks(t *testing.T) {
	chunks := wordChunks("one.", "", "two.", "three")
	if got := FindPreviewTarget(chunks, 0, 2); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
