package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/jesspatton/spectree/spectree"
)

func (m Model) renderHelp() string {
	title := titleStyle.Render("HELP")
	helpView := m.help.View(m.keys)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		paneStyle.Render(fmt.Sprintf("%s\n\n%s", title, helpView)),
	)
}

func (m Model) renderFooter() string {
	left := statusStyle.Render(fmt.Sprintf("%d specs", len(m.engine.State.Specs)))
	if tree := m.engine.GetTree(); tree != nil && m.engine.State.Search != "" {
		left = statusStyle.Render(fmt.Sprintf("%d/%d specs match %q",
			len(spectree.CollectFiles(tree.Root)), len(m.engine.State.Specs), m.engine.State.Search))
	}
	if err := m.engine.State.Err; err != nil {
		left = errorStyle.Render("error: " + err.Error())
	}
	m.help.Width = m.width - lipgloss.Width(left)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.help.ShortHelpView(m.keys.ShortHelp()))
}
