package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chordbook/internal/logtail"
)

// logOverlayLines is how many trailing log records the overlay shows.
const logOverlayLines = 20

// renderLogOverlay shows the most recent records of chordbook's log file.
func (m Model) renderLogOverlay() string {
	styles := m.theme.Styles()
	width := maxInt(minInt(m.width-8, 100), 20)

	var b strings.Builder
	b.WriteString(styles.Title.Render("Recent log"))
	if m.logFile != "" {
		b.WriteString(styles.FaintText.Render("  " + truncateWidth(m.logFile, width-14)))
	}
	b.WriteString("\n\n")

	switch {
	case m.logErr != nil:
		b.WriteString(styles.DangerText.Render(truncateWidth(m.logErr.Error(), width)))
	case len(m.logRecords) == 0:
		b.WriteString(styles.MutedText.Render("No log entries"))
	default:
		rows := make([]string, 0, len(m.logRecords))
		for _, rec := range m.logRecords {
			rows = append(rows, m.renderLogRecord(rec, styles, width))
		}
		b.WriteString(strings.Join(rows, "\n"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m Model) renderLogRecord(rec logtail.Record, styles Styles, width int) string {
	levelStyle := styles.MutedText
	switch rec.Level {
	case "ERROR":
		levelStyle = styles.DangerText
	case "WARN":
		levelStyle = styles.WarningText
	case "INFO":
		levelStyle = styles.AccentText
	}

	line := rec.Message
	for _, a := range rec.Attrs {
		line += " " + a.Key + "=" + a.Value
	}
	prefix := rec.Clock() + " " + padRight(rec.Level, 5) + " "
	return styles.FaintText.Render(rec.Clock()+" ") +
		levelStyle.Render(padRight(rec.Level, 5)) + " " +
		styles.Text.Render(truncateWidth(sanitize(line), width-len(prefix)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
