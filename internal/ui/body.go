package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMenu renders the song list with the selection kept in view.
func (m Model) renderMenu(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	songs := m.screen.list

	if len(songs) == 0 {
		msg := "No songs"
		if m.search.Value() != "" {
			msg = "No songs match " + sanitize(m.search.Value())
		}
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Width(m.width).Height(height).
			Render(bg.Spaces(2) + bg.Render(msg, styles.MutedText))
	}

	start := 0
	if m.selected >= height {
		start = m.selected - height + 1
	}
	end := start + height
	if end > len(songs) {
		end = len(songs)
	}

	rows := make([]string, 0, height)
	for i := start; i < end; i++ {
		label := padRight(truncateWidth(sanitize(songs[i].Label()), m.width-4), m.width-4)
		if i == m.selected {
			rows = append(rows, bg.Spaces(1)+styles.Selected.Render(" "+label+" ")+bg.Spaces(1))
			continue
		}
		rows = append(rows, bg.Spaces(2)+bg.Render(label, styles.Text)+bg.Spaces(2))
	}
	for len(rows) < height {
		rows = append(rows, bg.FillLine("", m.width))
	}
	return strings.Join(rows, "\n")
}

// renderContent renders the area below the search bar when the menu is closed.
func (m Model) renderContent(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)
	block := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(m.width).Height(height).
		Padding(1, 2)

	switch {
	case m.screen.message != "":
		return block.Render(bg.Render(m.screen.message, styles.DangerText))
	case !m.core.Loaded():
		return block.Render(m.spinner.View() + bg.Space() + bg.Render("Loading songs...", styles.MutedText))
	case m.screen.song != nil:
		return m.screen.sheet.View()
	case m.screen.welcome:
		lines := []string{
			bg.Render("Welcome to chordbook", styles.Title),
			"",
			bg.Render("Press / to search or m to browse the song menu.", styles.MutedText),
		}
		return block.Render(strings.Join(lines, "\n"))
	}
	return block.Render("")
}
