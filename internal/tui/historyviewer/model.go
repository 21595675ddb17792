// ============================================================================
// meinRECHENWERK (mRW) - Interaktiver Rechner
// ============================================================================
//
// Package:     historyviewer
// Description: Bubbletea model for browsing the persisted calculation history
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package historyviewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mRW/foundation/utils/mathx"
	"github.com/msto63/mRW/internal/calculator"
)

// Config holds history browser configuration
type Config struct {
	// Load reads the history. It is called on start and on refresh.
	Load Loader

	// Precision is the number of decimal places shown.
	Precision int

	// Source is shown in the header, typically the history file path.
	Source string
}

// Model is the Bubbletea model for the history browser
type Model struct {
	width  int
	height int
	ready  bool
	err    error

	viewport viewport.Model

	all      []calculator.Calculation
	filtered []calculator.Calculation

	// filterIndex selects an operator from filterCycle; 0 shows everything.
	filterIndex int
	filterCycle []calculator.Operator

	cfg Config
}

// New creates a new history browser model
func New(cfg Config) Model {
	if cfg.Precision <= 0 {
		cfg.Precision = calculator.DefaultPrecision
	}
	return Model{
		filterCycle: append([]calculator.Operator{""}, calculator.Operators()...),
		cfg:         cfg,
	}
}

// Init loads the history
func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) load() tea.Msg {
	if m.cfg.Load == nil {
		return historyLoadedMsg{}
	}
	entries, err := m.cfg.Load()
	return historyLoadedMsg{entries: entries, err: err}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 5 // Title panel + filter bar
		footerHeight := 3 // List border + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.updateViewportContent()

	case historyLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.all = msg.entries
		}
		m.applyFilter()
		m.updateViewportContent()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit

		// Cycle operator filter
		case "f":
			m.filterIndex = (m.filterIndex + 1) % len(m.filterCycle)
			m.applyFilter()
			m.updateViewportContent()
			return m, nil

		// Reset filter
		case "0":
			m.filterIndex = 0
			m.applyFilter()
			m.updateViewportContent()
			return m, nil

		// Reload from disk
		case "r":
			return m, m.load

		case "g":
			m.viewport.GotoTop()
			return m, nil

		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyUp:
		m.viewport.LineUp(1)
		return m, nil

	case tea.KeyDown:
		m.viewport.LineDown(1)
		return m, nil
	}

	return m, nil
}

// Filter returns the active operator filter, empty when all entries show.
func (m Model) Filter() calculator.Operator {
	return m.filterCycle[m.filterIndex]
}

// Visible returns the entries passing the filter.
func (m Model) Visible() []calculator.Calculation {
	return m.filtered
}

func (m *Model) applyFilter() {
	op := m.Filter()
	if op == "" {
		m.filtered = m.all
		return
	}

	m.filtered = nil
	for _, c := range m.all {
		if c.Operator == op {
			m.filtered = append(m.filtered, c)
		}
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
}

// renderEntries renders the numbered history list. Numbers refer to the
// position in the unfiltered history.
func (m Model) renderEntries() string {
	if m.err != nil {
		return ErrorStyle.Render("Fehler beim Laden: " + m.err.Error())
	}
	if len(m.filtered) == 0 {
		return HelpDescStyle.Render("No calculations in history")
	}

	var b strings.Builder
	pos := 0
	for _, c := range m.filtered {
		for pos < len(m.all) && !m.all[pos].Equal(c) {
			pos++
		}
		b.WriteString(m.renderEntry(pos+1, c))
		b.WriteString("\n")
		pos++
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m Model) renderEntry(n int, c calculator.Calculation) string {
	p := m.cfg.Precision
	line := fmt.Sprintf("%s %s(%s, %s) = %s",
		IndexStyle.Render(fmt.Sprintf("%4d.", n)),
		OperatorStyle.Render(c.Operator.String()),
		mathx.Format(c.OperandA, p),
		mathx.Format(c.OperandB, p),
		ResultStyle.Render(mathx.Format(c.Result, p)),
	)

	if !c.Timestamp.IsZero() {
		line += "  " + TimestampStyle.Render(c.Timestamp.Local().Format("2006-01-02 15:04:05"))
	}
	return line
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Verlauf..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(ListPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	header := LogoStyle.Render(Logo)
	if m.cfg.Source != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Center, header, "   ", HelpDescStyle.Render(m.cfg.Source))
	}
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderFilterBar() string {
	filter := "alle"
	if op := m.Filter(); op != "" {
		filter = op.String()
	}
	content := fmt.Sprintf("Filter: %s  [%d/%d Einträge]", filter, len(m.filtered), len(m.all))
	return FilterBarStyle.Width(m.width - 2).Render(content)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("f", "Filter"),
		RenderKeyHint("0", "Alle"),
		RenderKeyHint("r", "Neu laden"),
		RenderKeyHint("g/G", "Anfang/Ende"),
		RenderKeyHint("↑/↓", "Scrollen"),
		RenderKeyHint("q", "Beenden"),
	}
	return strings.Join(hints, "  ")
}

// Run starts the history browser in the alternate screen
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
