package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jesspatton/spectree/engine"
)

// Pane represents a distinct section of the UI.
type Pane int

const (
	// PaneExplorer is the spec tree pane.
	PaneExplorer Pane = iota
	// PaneOutput is the test output pane.
	PaneOutput
)

// LeftTab represents the active tab in the left pane.
type LeftTab int

const (
	// TabExplorer is the spec tree tab.
	TabExplorer LeftTab = iota
	// TabWatched is the watched specs tab.
	TabWatched
)

// Model represents the application state for the Bubbletea program.
// Tree data lives in the engine; the model only keeps presentation state.
type Model struct {
	// UI State
	activePane Pane
	width      int
	height     int
	ready      bool
	showHelp   bool
	cursor     int
	viewport   viewport.Model
	lastOutput string

	// Tab State
	activeTab     LeftTab
	watchedCursor int

	// Search State
	searchMode  bool
	searchInput textinput.Model

	// Components
	keys KeyMap
	help help.Model

	engine    *engine.Engine
	flatNodes []DisplayNode
}

// NewModel creates and initializes a new Model.
func NewModel(e *engine.Engine) Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#A0A0A0"})
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#808080"})
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#606060"})
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	ti := textinput.New()
	ti.Placeholder = "Filter specs..."
	ti.Prompt = "/"
	ti.CharLimit = 156
	ti.Width = 20
	ti.SetValue(e.State.Search)

	m := Model{
		activePane:  PaneExplorer,
		keys:        NewKeyMap(),
		help:        h,
		searchInput: ti,
		engine:      e,
	}
	m.refreshNodes()
	return m
}

// Init initializes the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return m.engine.Init()
}

// Update handles incoming messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Width: (Total / 2) - Border(2) - Padding(2)
		paneWidth := (m.width / 2) - 4
		// Height: Total - Footer(1) - Border(2), plus margin
		paneHeight := m.height - 5
		// Header "OUTPUT\n\n" takes two lines
		viewportHeight := paneHeight - 2

		if !m.ready {
			m.viewport = viewport.New(paneWidth, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = paneWidth
			m.viewport.Height = viewportHeight
		}
		m.viewport.SetContent(m.wrapOutput(paneWidth, m.engine.GetCurrentOutput()))
		return m, nil
	}

	cmd := m.engine.Update(msg)
	m.refreshNodes()
	m.syncOutput()
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchMode {
		switch {
		case key.Matches(msg, m.keys.ExitSearch):
			m.searchMode = false
			m.searchInput.Blur()
			m.searchInput.Reset()
			m.setSearch("")
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			// Keep the filter, go back to navigating the tree.
			m.searchMode = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			m.setSearch(m.searchInput.Value())
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.engine.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		if m.activePane == PaneExplorer {
			m.activePane = PaneOutput
		} else {
			m.activePane = PaneExplorer
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.engine.LoadSpecs
	case key.Matches(msg, m.keys.ReRunLast):
		return m, m.withOutput(m.engine.ReRunLast())
	case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
		if m.activePane == PaneExplorer {
			if m.activeTab == TabExplorer {
				m.activeTab = TabWatched
			} else {
				m.activeTab = TabExplorer
			}
		}
		return m, nil
	}

	if m.activePane == PaneOutput {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.activeTab == TabWatched {
		watched := m.engine.GetWatchedFiles()
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.watchedCursor > 0 {
				m.watchedCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.watchedCursor < len(watched)-1 {
				m.watchedCursor++
			}
		case key.Matches(msg, m.keys.Enter):
			if m.watchedCursor < len(watched) {
				return m, m.withOutput(m.engine.TriggerTest(watched[m.watchedCursor]))
			}
		case key.Matches(msg, m.keys.ToggleWatch):
			if m.watchedCursor < len(watched) {
				m.engine.ToggleWatch(watched[m.watchedCursor])
				if m.watchedCursor >= len(watched)-1 && m.watchedCursor > 0 {
					m.watchedCursor--
				}
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ExitSearch):
		m.searchInput.Reset()
		m.setSearch("")
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.flatNodes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Enter):
		if node, ok := m.selected(); ok {
			if node.IsDir {
				m.toggleCollapse(node.Path)
				return m, nil
			}
			return m, m.withOutput(m.engine.TriggerTest(node.Path))
		}
	case key.Matches(msg, m.keys.Collapse):
		if node, ok := m.selected(); ok && node.IsDir {
			m.toggleCollapse(node.Path)
		}
	case key.Matches(msg, m.keys.ToggleWatch):
		if node, ok := m.selected(); ok && !node.IsDir {
			m.engine.ToggleWatch(node.Path)
		}
	}
	return m, nil
}

func (m *Model) selected() (DisplayNode, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flatNodes) {
		return DisplayNode{}, false
	}
	return m.flatNodes[m.cursor], true
}

func (m *Model) setSearch(search string) {
	_ = m.engine.SetSearch(search)
	m.refreshNodes()
}

func (m *Model) toggleCollapse(path string) {
	m.engine.ToggleCollapse(path)
	m.refreshNodes()
}

// refreshNodes re-flattens the current tree, keeping the cursor on the same
// path when it still exists.
func (m *Model) refreshNodes() {
	var selectedPath string
	if node, ok := m.selected(); ok {
		selectedPath = node.Path
	}

	m.flatNodes = flattenNodes(m.engine.GetTree(), m.engine.IsCollapsed)

	for i, n := range m.flatNodes {
		if n.Path == selectedPath {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// withOutput refreshes the output pane after an action changed engine output.
func (m *Model) withOutput(cmd tea.Cmd) tea.Cmd {
	m.syncOutput()
	return cmd
}

func (m *Model) syncOutput() {
	out := m.engine.GetCurrentOutput()
	if !m.ready || out == m.lastOutput {
		return
	}
	m.lastOutput = out
	m.viewport.SetContent(m.wrapOutput(m.viewport.Width, out))
	m.viewport.GotoBottom()
}

func (m Model) wrapOutput(width int, content string) string {
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

// View renders the UI based on the current state.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	if m.width == 0 {
		return "Loading..."
	}

	paneWidth := (m.width / 2) - 2
	paneHeight := m.height - 4

	explorerRender := m.renderExplorer(paneWidth, paneHeight)

	var outputView strings.Builder
	outputView.WriteString(titleStyle.Render("OUTPUT") + "\n\n")

	if !m.ready {
		outputView.WriteString("Initializing...")
	} else {
		outputView.WriteString(m.viewport.View())
	}

	outputStyle := paneStyle
	if m.activePane == PaneOutput {
		outputStyle = activePaneStyle
	}
	outputRender := outputStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(outputView.String())

	panes := lipgloss.JoinHorizontal(lipgloss.Top, explorerRender, outputRender)
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, panes, footer)
}
