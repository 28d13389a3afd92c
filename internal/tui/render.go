package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/artemgv/ritmo/internal/model"
)

// renderChunkCentered renders a chunk with its pivot letter highlighted and
// pinned to the middle column, so the eye never has to move between chunks.
func renderChunkCentered(c model.Chunk, width int) string {
	runes := []rune(c.Text)
	if len(runes) == 0 {
		return ""
	}
	orp := c.ORPIndex
	if orp < 0 {
		orp = 0
	}
	if orp >= len(runes) {
		orp = len(runes) - 1
	}

	left := string(runes[:orp])
	pivot := string(runes[orp])
	right := string(runes[orp+1:])

	pivotCol := width / 2
	pad := pivotCol - runewidth.StringWidth(left)
	if pad < 0 {
		pad = 0
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(chunkStyle.Render(left))
	b.WriteString(orpStyle.Render(pivot))
	b.WriteString(chunkStyle.Render(right))
	return b.String()
}

// pivotColumn reports the screen column of the highlighted rune after
// renderChunkCentered padding.
func pivotColumn(c model.Chunk, width int) int {
	runes := []rune(c.Text)
	if len(runes) == 0 {
		return 0
	}
	orp := c.ORPIndex
	if orp < 0 {
		orp = 0
	}
	if orp >= len(runes) {
		orp = len(runes) - 1
	}
	leftWidth := runewidth.StringWidth(string(runes[:orp]))
	pad := width/2 - leftWidth
	if pad < 0 {
		pad = 0
	}
	return pad + leftWidth
}
