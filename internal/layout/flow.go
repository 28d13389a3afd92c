// Package layout flows text into fixed-width lines and pages and models
// eye fixations within a line.
package layout

import (
	"strings"

	"github.com/artemgv/ritmo/internal/chunk"
	"github.com/artemgv/ritmo/internal/model"
)

// Defaults applied when callers pass non-positive dimensions.
const (
	DefaultLineWidth = 60
	DefaultPageSize  = 10
)

const maxHeadingLevel = 6

// FlowTextIntoLines wraps text into lines at most lineWidth characters
// wide. Blocks separated by blank lines become paragraphs divided by a
// single blank line; a block opening with a heading marker is emitted as a
// heading line framed by blank lines, with any remaining block content
// wrapped as a normal paragraph.
func FlowTextIntoLines(text string, lineWidth int) []model.Line {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	var lines []model.Line
	for _, block := range chunk.SplitParagraphs(text) {
		blockLines := strings.Split(block, "\n")
		first := strings.TrimSpace(blockLines[0])

		if title, level, ok := parseHeading(first); ok {
			if len(lines) > 0 {
				lines = append(lines, model.Line{Type: model.LineBlank})
			}
			lines = append(lines, model.Line{Text: title, Type: model.LineHeading, Level: level})
			lines = append(lines, model.Line{Type: model.LineBlank})
			rest := strings.TrimSpace(strings.Join(blockLines[1:], " "))
			lines = appendWrapped(lines, rest, lineWidth)
			continue
		}

		if len(lines) > 0 {
			lines = append(lines, model.Line{Type: model.LineBlank})
		}
		lines = appendWrapped(lines, strings.Join(blockLines, " "), lineWidth)
	}
	return lines
}

// GroupIntoPages windows lines into fixed-size pages in order. The final
// page may be shorter. Non-positive page sizes fall back to the default.
func GroupIntoPages(lines []model.Line, pageSize int) []model.Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	var pages []model.Page
	for start := 0; start < len(lines); start += pageSize {
		end := start + pageSize
		if end > len(lines) {
			end = len(lines)
		}
		page := model.Page{Lines: make([]model.Line, end-start)}
		copy(page.Lines, lines[start:end])
		pages = append(pages, page)
	}
	return pages
}

// parseHeading recognizes markdown-style "# Title" (1-6 markers) and
// wiki-style "==Title==" headings. The returned level is clamped to 1-6.
func parseHeading(line string) (title string, level int, ok bool) {
	if strings.HasPrefix(line, "#") {
		count := 0
		for count < len(line) && line[count] == '#' {
			count++
		}
		rest := strings.TrimSpace(line[count:])
		if count > maxHeadingLevel || rest == "" {
			return "", 0, false
		}
		return rest, count, true
	}
	if strings.HasPrefix(line, "==") && strings.HasSuffix(line, "==") && len(line) > 4 {
		count := 0
		for count < len(line) && line[count] == '=' {
			count++
		}
		trail := 0
		for i := len(line) - 1; i >= 0 && line[i] == '='; i-- {
			trail++
		}
		inner := strings.TrimSpace(strings.Trim(line, "="))
		if inner == "" || count != trail {
			return "", 0, false
		}
		level := count
		if level > maxHeadingLevel {
			level = maxHeadingLevel
		}
		return inner, level, true
	}
	return "", 0, false
}

// appendWrapped word-wraps text onto body lines. An over-long single word
// gets its own line rather than being truncated.
func appendWrapped(lines []model.Line, text string, lineWidth int) []model.Line {
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}
	var current strings.Builder
	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if current.Len()+1+len(word) <= lineWidth {
			current.WriteByte(' ')
			current.WriteString(word)
			continue
		}
		lines = append(lines, model.Line{Text: current.String(), Type: model.LineBody})
		current.Reset()
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, model.Line{Text: current.String(), Type: model.LineBody})
	}
	return lines
}
