package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artemgv/ritmo/internal/layout"
	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/pace"
)

var (
	focusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	readLineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	pendingLineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
	headingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// lineCursor addresses one focus target within the paged layout.
type lineCursor struct {
	page   int
	line   int
	target int
}

// LineModel implements the Bubble Tea page reading UI. A whole page stays
// on screen and a moving highlight walks the fixation targets of the
// current line.
type LineModel struct {
	config model.ReadingConfig
	pages  []model.Page

	targets [][][]model.FocusTarget
	timings [][][]model.FocusTiming

	cursor  lineCursor
	playing bool
	tickSeq int

	width  int
	height int
}

// NewLineModel lays the text out into pages and prepares focus targets
// for every body line. With wordFocus the highlight walks individual
// words with punctuation dwell; otherwise it walks fixation groups sized
// by the configured character budget.
func NewLineModel(cfg model.ReadingConfig, text string, wordFocus bool) *LineModel {
	lines := layout.FlowTextIntoLines(text, cfg.LineWidth)
	pages := layout.GroupIntoPages(lines, cfg.PageSize)

	targets := make([][][]model.FocusTarget, len(pages))
	timings := make([][][]model.FocusTiming, len(pages))
	for pi, page := range pages {
		targets[pi] = make([][]model.FocusTarget, len(page.Lines))
		timings[pi] = make([][]model.FocusTiming, len(page.Lines))
		for li, line := range page.Lines {
			if line.Type != model.LineBody || strings.TrimSpace(line.Text) == "" {
				continue
			}
			var lineTargets []model.FocusTarget
			timingMode := layout.TimingByChars
			if wordFocus {
				lineTargets = layout.WordTargets(line.Text)
				timingMode = layout.TimingByWords
			} else {
				fixations := layout.LineFixations(line.Text, cfg.FixationBudget)
				lineTargets = layout.FocusTargets(line.Text, fixations)
			}
			targets[pi][li] = lineTargets
			timings[pi][li] = layout.FocusTargetTimings(line.Text, lineTargets, timingMode)
		}
	}

	m := &LineModel{config: cfg, pages: pages, targets: targets, timings: timings}
	m.cursor = m.firstCursor()
	return m
}

// Init implements tea.Model.
func (m *LineModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *LineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.seq != m.tickSeq || !m.playing {
			return m, nil
		}
		if !m.advance() {
			m.playing = false
			return m, nil
		}
		return m, m.scheduleTick()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			m.tickSeq++
			if m.playing {
				return m, m.scheduleTick()
			}
			return m, nil
		case "left":
			m.tickSeq++
			m.playing = false
			m.seekLine(-1)
			return m, nil
		case "right":
			m.tickSeq++
			m.playing = false
			m.seekLine(1)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *LineModel) View() string {
	if len(m.pages) == 0 {
		return doneStyle.Render("Nothing to read.")
	}
	page := m.pages[m.cursor.page]
	rows := make([]string, 0, len(page.Lines)+2)
	for li, line := range page.Lines {
		rows = append(rows, m.renderLine(li, line))
	}
	rows = append(rows, "")
	rows = append(rows, footerStyle.Render(m.lineFooter()))
	body := strings.Join(rows, "\n")
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *LineModel) renderLine(li int, line model.Line) string {
	switch line.Type {
	case model.LineHeading:
		return headingStyle.Render(line.Text)
	case model.LineBlank:
		return ""
	}
	if li < m.cursor.line {
		return readLineStyle.Render(line.Text)
	}
	if li > m.cursor.line {
		return pendingLineStyle.Render(line.Text)
	}
	targets := m.targets[m.cursor.page][li]
	if m.cursor.target >= len(targets) {
		return readLineStyle.Render(line.Text)
	}
	// Target offsets are byte positions into the line text.
	t := targets[m.cursor.target]
	before := line.Text[:t.StartChar]
	focus := line.Text[t.StartChar:t.EndChar]
	after := line.Text[t.EndChar:]
	return readLineStyle.Render(before) + focusStyle.Render(focus) + pendingLineStyle.Render(after)
}

func (m *LineModel) lineFooter() string {
	state := "Paused (space to play)"
	if m.playing {
		state = "Playing"
	}
	return fmt.Sprintf("Page %d/%d  %d WPM  %s", m.cursor.page+1, len(m.pages), m.config.WPM, state)
}

func (m *LineModel) scheduleTick() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.targetDelay(), func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// targetDelay is the current focus target's share of its line duration.
func (m *LineModel) targetDelay() time.Duration {
	line := m.currentLineText()
	timings := m.timings[m.cursor.page][m.cursor.line]
	if m.cursor.target >= len(timings) {
		return 0
	}
	total := pace.LineDuration(line, m.config.FixationBudget, m.config.WPM)
	t := timings[m.cursor.target]
	ms := total * (t.EndPct - t.StartPct) / 100
	return time.Duration(ms * float64(time.Millisecond))
}

func (m *LineModel) currentLineText() string {
	return m.pages[m.cursor.page].Lines[m.cursor.line].Text
}

// advance steps to the next focus target, skipping lines without targets
// and crossing page boundaries. It returns false at the end of the text.
func (m *LineModel) advance() bool {
	cur := m.cursor
	if cur.target+1 < len(m.targets[cur.page][cur.line]) {
		m.cursor.target++
		return true
	}
	next, ok := m.nextBodyLine(cur.page, cur.line)
	if !ok {
		return false
	}
	m.cursor = next
	return true
}

func (m *LineModel) nextBodyLine(page, line int) (lineCursor, bool) {
	li := line + 1
	for pi := page; pi < len(m.pages); pi++ {
		for ; li < len(m.pages[pi].Lines); li++ {
			if len(m.targets[pi][li]) > 0 {
				return lineCursor{page: pi, line: li}, true
			}
		}
		li = 0
	}
	return lineCursor{}, false
}

func (m *LineModel) prevBodyLine(page, line int) (lineCursor, bool) {
	li := line - 1
	for pi := page; pi >= 0; pi-- {
		for ; li >= 0; li-- {
			if len(m.targets[pi][li]) > 0 {
				return lineCursor{page: pi, line: li}, true
			}
		}
		if pi > 0 {
			li = len(m.pages[pi-1].Lines) - 1
		}
	}
	return lineCursor{}, false
}

func (m *LineModel) seekLine(delta int) {
	if delta > 0 {
		if next, ok := m.nextBodyLine(m.cursor.page, m.cursor.line); ok {
			m.cursor = next
		}
		return
	}
	if prev, ok := m.prevBodyLine(m.cursor.page, m.cursor.line); ok {
		m.cursor = prev
	}
}

func (m *LineModel) firstCursor() lineCursor {
	for pi := range m.pages {
		for li := range m.pages[pi].Lines {
			if len(m.targets[pi][li]) > 0 {
				return lineCursor{page: pi, line: li}
			}
		}
	}
	return lineCursor{}
}
