package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// sanitize makes catalog text safe to print: tabs become spaces, escape
// sequences are stripped and remaining control characters dropped.
func sanitize(value string) string {
	value = ansi.Strip(strings.ReplaceAll(value, "\t", " "))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}

// truncateWidth shortens value to width terminal cells, adding an ellipsis.
func truncateWidth(value string, width int) string {
	value = strings.TrimSpace(value)
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return truncate.String(value, uint(width))
	}
	return truncate.StringWithTail(value, uint(width), "...")
}

// padRight pads s with spaces to width terminal cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// titleCase upper-cases the first letter of each space or underscore
// separated word, used for section labels like "verse" or "pre_chorus".
func titleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parts := strings.FieldsFunc(value, func(r rune) bool { return r == '_' || r == ' ' })
	for i, part := range parts {
		runes := []rune(strings.ToLower(part))
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}
