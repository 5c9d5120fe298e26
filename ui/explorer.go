package ui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jesspatton/spectree/engine"
	"github.com/jesspatton/spectree/spectree"
)

func (m Model) renderExplorer(paneWidth, paneHeight int) string {
	var explorerView strings.Builder

	activeTabStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(highlight).
		Padding(0, 1).
		Foreground(highlight)

	inactiveTabStyle := lipgloss.NewStyle().
		Border(lipgloss.HiddenBorder()).
		BorderForeground(subtle).
		Padding(0, 1).
		Foreground(subtle)

	var explorerTab, watchedTab string
	if m.activeTab == TabExplorer {
		explorerTab = activeTabStyle.Render("Specs")
		watchedTab = inactiveTabStyle.Render("Watched")
	} else {
		explorerTab = inactiveTabStyle.Render("Specs")
		watchedTab = activeTabStyle.Render("Watched")
	}

	tabs := lipgloss.JoinHorizontal(lipgloss.Bottom, explorerTab, watchedTab)
	explorerView.WriteString(tabs + "\n\n")

	// Tabs take three lines plus the blank separator.
	treeHeight := paneHeight - 4
	showSearch := (m.searchMode || m.engine.State.Search != "") && m.activeTab == TabExplorer
	if showSearch {
		treeHeight -= 3 // 1 line text + 2 lines border
	}

	if m.activeTab == TabExplorer {
		switch {
		case m.engine.GetTree() == nil:
			explorerView.WriteString("Scanning...")
		case len(m.flatNodes) == 0 && m.engine.State.Search != "":
			explorerView.WriteString(fmt.Sprintf("No specs match %q.", m.engine.State.Search))
		case len(m.flatNodes) == 0:
			explorerView.WriteString("No specs found.")
		default:
			start, end := visibleRange(m.cursor, len(m.flatNodes), treeHeight)
			for i := start; i < end; i++ {
				m.renderNode(&explorerView, m.flatNodes[i], i, paneWidth)
			}
		}
	} else {
		watched := m.engine.GetWatchedFiles()
		if len(watched) == 0 {
			explorerView.WriteString("No watched specs.\nPress 'w' on a spec to watch it.")
		} else {
			start, end := visibleRange(m.watchedCursor, len(watched), treeHeight)
			for i := start; i < end; i++ {
				rel := watched[i]

				cursor := " "
				if m.watchedCursor == i {
					cursor = ">"
				}

				line := fmt.Sprintf("%s %s %s", cursor, m.statusIcon(rel), path.Base(rel))
				if m.watchedCursor == i {
					explorerView.WriteString(lipgloss.NewStyle().Foreground(highlight).Render(line) + "\n")
				} else {
					explorerView.WriteString(line + "\n")
				}
			}
		}
	}

	// Fill remaining space to push search bar to bottom
	currentView := explorerView.String()
	if h := lipgloss.Height(currentView); h < paneHeight-3 && showSearch {
		currentView += strings.Repeat("\n", paneHeight-3-h)
	}

	if showSearch {
		searchStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Width(paneWidth - 4)
		if !m.searchMode {
			searchStyle = searchStyle.BorderForeground(subtle)
		}
		currentView += searchStyle.Render(m.searchInput.View())
	}

	explorerStyle := paneStyle
	if m.activePane == PaneExplorer {
		explorerStyle = activePaneStyle
	}

	return explorerStyle.
		Width(paneWidth).
		Height(paneHeight).
		Render(currentView)
}

// visibleRange returns the window of rows to draw so the cursor stays centred.
func visibleRange(cursor, total, height int) (int, int) {
	if height <= 0 {
		return 0, 0
	}
	if total <= height {
		return 0, total
	}
	switch {
	case cursor < height/2:
		return 0, height
	case cursor >= total-height/2:
		return total - height, total
	default:
		start := cursor - height/2
		return start, start + height
	}
}

func (m Model) renderNode(b *strings.Builder, node DisplayNode, index int, width int) {
	cursor := " "
	if m.cursor == index {
		cursor = ">"
	}

	indent := strings.Repeat("  ", node.Depth)

	var icon, watchIcon, summary string
	if node.IsDir {
		icon = "▾ 📁"
		if m.engine.IsCollapsed(node.Path) {
			icon = "▸ 📁"
		}
		dir := node.Node.(*spectree.DirectoryNode)
		if m.cursor == index {
			// The selected directory lists the specs it contains.
			summary = " (" + spectree.Summarize(dir).String() + ")"
		} else {
			summary = fmt.Sprintf(" (%d)", len(spectree.CollectFiles(dir)))
		}
	} else {
		icon = m.statusIcon(node.Path)
		watchIcon = "  "
		if m.engine.IsWatched(node.Path) {
			watchIcon = "👁 "
		}
	}

	name := highlightMatch(node.DisplayName, m.engine.State.Search)
	line := fmt.Sprintf("%s %s%s%s %s", cursor, indent, watchIcon, icon, name)
	if m.cursor == index {
		line = lipgloss.NewStyle().Foreground(highlight).Render(line)
	}
	if summary != "" && width > 0 {
		summary = summaryStyle.Render(truncate(summary, width-lipgloss.Width(line)-2))
	}
	b.WriteString(line + summary + "\n")
}

// highlightMatch marks every occurrence of search in name.
func highlightMatch(name, search string) string {
	if search == "" || !strings.Contains(name, search) {
		return name
	}
	parts := strings.Split(name, search)
	return strings.Join(parts, matchStyle.Render(search))
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func (m Model) statusIcon(rel string) string {
	status, ok := m.engine.GetNodeStatus(rel)
	if !ok {
		return "📄"
	}

	switch status {
	case engine.StatusRunning:
		return "⏳"
	case engine.StatusPass:
		return "✅"
	case engine.StatusFail:
		return "❌"
	default:
		return "📄"
	}
}
