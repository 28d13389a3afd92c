// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/artemgv/ritmo/internal/model"
	"github.com/artemgv/ritmo/internal/stats"
	"github.com/artemgv/ritmo/internal/store"
)

const (
	tabOverview = iota
	tabSessions
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs         []string
	activeTab    int
	overview     viewport.Model
	sessionTable table.Model

	filterMode  bool
	filterInput textinput.Model

	width  int
	height int
}

// NewModel constructs a stats UI model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "Sessions"},
	}
	m.overview = viewport.New(0, 0)
	m.sessionTable = buildSessionTable(nil, 0, 1)
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Source: "
	m.filterInput.CharLimit = 256
	m.refreshReport()
	return m
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
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.filterMode = true
			m.filterInput.SetValue(m.cfg.Source)
			m.filterInput.Focus()
			return m, textinput.Blink
		case "g", "home":
			if m.activeTab == tabSessions {
				m.sessionTable.GotoTop()
			} else {
				m.overview.GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSessions {
				m.sessionTable.GotoBottom()
			} else {
				m.overview.GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabSessions {
				var cmd tea.Cmd
				m.sessionTable, cmd = m.sessionTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.overview, cmd = m.overview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.cfg.Source = strings.TrimSpace(m.filterInput.Value())
		m.filterMode = false
		m.filterInput.Blur()
		m.refreshReport()
		m.updateLayout()
		return m, tea.ClearScreen
	case "esc":
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderTabs()
	var body string
	if m.activeTab == tabSessions {
		body = m.sessionTable.View()
	} else {
		body = m.overview.View()
	}
	footer := m.renderFooter()
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(m.tabs)) % len(m.tabs)
	if m.activeTab == tabSessions {
		m.sessionTable.Focus()
	} else {
		m.sessionTable.Blur()
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = report
	m.updateLayout()
}

func (m *Model) updateLayout() {
	bodyHeight := m.height - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	m.overview.SetContent(m.renderOverview())
	m.sessionTable = buildSessionTable(m.report.Sessions, m.width, bodyHeight)
	if m.activeTab == tabSessions {
		m.sessionTable.Focus()
	}
}

func (m *Model) renderOverview() string {
	var buf bytes.Buffer
	if err := stats.RenderSummary(&buf, m.report); err != nil {
		return errorStyle.Render(err.Error())
	}
	window := m.cfg.CurveWindow
	if window <= 0 {
		window = 5
	}
	if err := stats.RenderCurvesWithSize(&buf, m.report.Sessions, window, m.width, plotHeight, true); err != nil {
		return errorStyle.Render(err.Error())
	}
	return buf.String()
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return m.filterInput.View()
	}
	if m.errMsg != "" {
		return errorStyle.Render(m.errMsg)
	}
	segments := []string{"←/→ tabs", "/ filter source", "q quit"}
	if m.cfg.Source != "" {
		segments = append(segments, fmt.Sprintf("source=%s", m.cfg.Source))
	}
	return headerStyle.Render(strings.Join(segments, "  "))
}

func buildSessionTable(sessions []model.SessionAggregate, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 17},
		{Title: "Target WPM", Width: 11},
		{Title: "Actual WPM", Width: 11},
		{Title: "Words", Width: 8},
		{Title: "Duration", Width: 10},
	}
	rows := make([]table.Row, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		durationSec := s.DurationMs / 1000
		rows = append(rows, table.Row{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", s.TargetWPM),
			fmt.Sprintf("%.1f", stats.SessionWPM(s.WordsRead, s.DurationMs)),
			fmt.Sprintf("%d", s.WordsRead),
			fmt.Sprintf("%dm%02ds", durationSec/60, durationSec%60),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	if width > 0 {
		t.SetWidth(width)
	}
	return t
}
