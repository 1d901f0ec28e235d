package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/prefs"
)

// renderHeader renders the top bar: logo, catalog size, current song and the
// autoscroll control on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("chordbook", styles.Logo)}

	switch {
	case !m.core.Loaded():
		parts = append(parts, bg.Render("Loading songs...", styles.WarningText))
	case m.screen.message != "":
		parts = append(parts, bg.Render("Catalog unavailable", styles.DangerText))
	default:
		parts = append(parts,
			bg.Render(fmt.Sprintf("%d", len(m.core.Songs())), styles.Text)+bg.Space()+
				bg.Render("songs", styles.MutedText))
	}

	// Autoscroll control mirrors the button label.
	labelStyle := styles.MutedText
	if m.core.Autoscroll().Running() {
		labelStyle = styles.SuccessText
	}
	right := bg.Render(m.screen.label, labelStyle) + sep +
		bg.Render("speed", styles.FaintText) + bg.Space() +
		bg.Render(fmt.Sprintf("%d/%d", m.core.Autoscroll().Speed(), autoscroll.MaxSpeed), styles.AccentText)

	left := strings.Join(parts, sep)
	if song, ok := m.core.CurrentSong(); ok {
		avail := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 8
		if avail > 8 {
			left += sep + bg.Render(truncateWidth(sanitize(song.Label()), avail), styles.Text)
		}
	}

	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderSearchBar renders the search input row.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	content := m.search.View()
	if !m.search.Focused() && m.search.Value() == "" {
		content = bg.Render("/", styles.AccentText) + bg.Space() +
			bg.Render("Search songs by title or artist", styles.FaintText)
	}
	return bg.FillLine(bg.Space()+content, m.width)
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.search.Focused():
		commands = []cmd{
			{"enter", "Show"},
			{"up/down", "Select"},
			{"esc", "Done"},
		}
	case m.screen.menuOpen:
		commands = []cmd{
			{"j/k", "Select"},
			{"enter", "Show"},
			{"/", "Search"},
			{"m", "Close"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"Space", m.screen.label},
			{"+/-", "Speed"},
			{"c", layoutLabel(m.screen.layout)},
			{"y", "Copy"},
			{"/", "Search"},
			{"m", "Menu"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	if m.notice != "" {
		segments = append(segments, bg.Render(m.notice, styles.WarningText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

func layoutLabel(layout string) string {
	if layout == prefs.LayoutInline {
		return "Chords beside"
	}
	return "Chords above"
}
