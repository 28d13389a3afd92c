// Package tui provides the Bubble Tea reading interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/pace"
	"github.com/artemgv/ritmo/internal/session"
	"github.com/artemgv/ritmo/internal/store"
)

// Model implements the Bubble Tea reading UI.
type Model struct {
	config model.ReadingConfig
	store  *store.Store
	player *session.Player
	source string

	width  int
	height int

	startedAt time.Time
	tickSeq   int
	saved     bool
}

type tickMsg struct {
	seq int
}

var (
	orpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	chunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	guideStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a reading TUI model. The store may be nil, in which
// case the session is not persisted.
func NewModel(cfg model.ReadingConfig, st *store.Store, chunks []model.Chunk, source string, resumeIndex int) *Model {
	ramp := pace.Ramp{
		Curve:        cfg.RampCurve,
		Rate:         cfg.RampRate,
		IntervalSec:  cfg.RampIntervalSec,
		StartPercent: cfg.RampStartPercent,
	}
	player := session.New(chunks, cfg.WPM, ramp)
	if resumeIndex > 0 {
		player.Seek(resumeIndex)
	}
	return &Model{
		config:    cfg,
		store:     st,
		player:    player,
		source:    source,
		startedAt: time.Now(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m.handleTick(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := time.Now()
	switch msg.String() {
	case "ctrl+c", "q":
		m.finishSession(now)
		return m, tea.Quit
	case " ":
		if m.player.Playing() {
			m.player.Pause(now)
			m.tickSeq++
			return m, nil
		}
		if m.player.Play(now) {
			return m, m.scheduleTick(now)
		}
		return m, nil
	case "left":
		m.player.Pause(now)
		m.tickSeq++
		m.player.Seek(m.player.Index() - 1)
		return m, nil
	case "right":
		m.player.Pause(now)
		m.tickSeq++
		m.player.Seek(m.player.Index() + 1)
		return m, nil
	case "p":
		if m.player.Previewing() {
			m.player.StopPreview()
			return m, nil
		}
		m.tickSeq++
		m.player.StartPreview(now, m.config.PreviewSentences)
		return m, nil
	case "esc":
		if m.player.Previewing() {
			m.player.StopPreview()
		}
		return m, nil
	case "+", "=":
		m.player.SetTargetWPM(pace.AdjustSpeed(m.player.TargetWPM(), m.config.MinWPM, m.config.MaxWPM, true))
		return m, nil
	case "-":
		m.player.SetTargetWPM(pace.AdjustSpeed(m.player.TargetWPM(), m.config.MinWPM, m.config.MaxWPM, false))
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	// Ticks scheduled before a pause or seek are stale.
	if msg.seq != m.tickSeq || !m.player.Playing() {
		return m, nil
	}
	now := time.Now()
	if !m.player.Advance(now) {
		m.finishSession(now)
		return m, nil
	}
	return m, m.scheduleTick(now)
}

func (m *Model) scheduleTick(now time.Time) tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.player.NextDelay(now), func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent() string {
	if m.player.Done() {
		return doneStyle.Render("Done. Press q to exit.")
	}
	current, ok := m.player.Current()
	if !ok {
		return ""
	}
	if m.player.Previewing() {
		return previewStyle.Render(current.Text)
	}
	if current.IsBreak() {
		return guideStyle.Render("· · ·")
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return renderChunkCentered(current, width)
}

func (m *Model) renderFooter() string {
	now := time.Now()
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(m.player.Progress()*100)),
		fmt.Sprintf("%d/%d WPM", m.player.EffectiveWPM(now), m.player.TargetWPM()),
	}
	if m.player.Previewing() {
		segments = append(segments, "Preview (p to return)")
	} else if m.player.Playing() {
		segments = append(segments, "Playing")
	} else {
		segments = append(segments, "Paused (space to play)")
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) finishSession(now time.Time) {
	if m.saved || m.store == nil {
		return
	}
	m.saved = true
	ctx := context.Background()
	if err := m.store.SavePosition(ctx, m.source, m.player.Index()); err != nil {
		logErrf("failed to save position: %v\n", err)
	}
	wordsRead := m.player.WordsRead()
	if wordsRead == 0 {
		return
	}
	rec := model.SessionRecord{
		StartedAt:  m.startedAt,
		EndedAt:    now,
		Source:     m.source,
		Mode:       m.config.Mode.String(),
		TargetWPM:  m.player.TargetWPM(),
		ChunksRead: m.player.Index(),
		WordsRead:  wordsRead,
		DurationMs: int64(m.player.ActiveMs(now)),
	}
	if _, err := m.store.InsertSession(ctx, rec, nil); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
