package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/chordbook/internal/catalog"
	"github.com/five82/chordbook/internal/prefs"
)

const (
	sheetIndent = 2
	chordGutter = 2
)

// renderSheet lays a song out as styled text lines: a title/artist header,
// then one block per section with its chord/lyric rows in catalog order.
// In the stacked layout each chord sits on its own row above the lyric; in
// the inline layout chords occupy a fixed column to the left of the lyric.
func renderSheet(song catalog.Song, styles Styles, width int, layout string) string {
	indent := strings.Repeat(" ", sheetIndent)
	textWidth := width - sheetIndent*2
	if textWidth < 10 {
		textWidth = 10
	}

	var b strings.Builder
	b.WriteString(indent + styles.Title.Render(truncateWidth(sanitize(song.Title), textWidth)) + "\n")
	b.WriteString(indent + styles.MutedText.Render(truncateWidth(sanitize(song.Artist), textWidth)) + "\n")

	chordCol := 0
	if layout == prefs.LayoutInline {
		chordCol = chordColumnWidth(song)
	}

	for _, section := range song.Lyrics {
		b.WriteString("\n")
		if label := titleCase(sanitize(section.Type)); label != "" {
			b.WriteString(indent + styles.SectionLabel.Render(label) + "\n")
		}
		for _, line := range section.Lines {
			chord := strings.TrimSpace(sanitize(line.Chord))
			lyric := sanitize(line.Lyric)

			if chordCol > 0 {
				writeInline(&b, styles, indent, chord, lyric, chordCol, textWidth)
				continue
			}
			if chord != "" {
				b.WriteString(indent + styles.Chord.Render(truncateWidth(chord, textWidth)) + "\n")
			}
			for _, row := range wrapLyric(lyric, textWidth) {
				b.WriteString(indent + styles.Text.Render(row) + "\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeInline(b *strings.Builder, styles Styles, indent, chord, lyric string, chordCol, textWidth int) {
	lyricWidth := textWidth - chordCol - chordGutter
	if lyricWidth < 10 {
		lyricWidth = 10
	}
	pad := strings.Repeat(" ", chordCol+chordGutter)
	for i, row := range wrapLyric(lyric, lyricWidth) {
		lead := pad
		if i == 0 {
			lead = styles.Chord.Render(padRight(chord, chordCol)) + strings.Repeat(" ", chordGutter)
		}
		b.WriteString(indent + lead + styles.Text.Render(row) + "\n")
	}
}

// wrapLyric word-wraps a lyric to width cells, hard-wrapping words that are
// longer than a row. An empty lyric still yields one (blank) row.
func wrapLyric(lyric string, width int) []string {
	if lyric == "" {
		return []string{""}
	}
	wrapped := wrap.String(wordwrap.String(lyric, width), width)
	return strings.Split(wrapped, "\n")
}

// chordColumnWidth returns the widest chord in the song, in terminal cells.
func chordColumnWidth(song catalog.Song) int {
	widest := 0
	for _, section := range song.Lyrics {
		for _, line := range section.Lines {
			if w := runewidth.StringWidth(strings.TrimSpace(sanitize(line.Chord))); w > widest {
				widest = w
			}
		}
	}
	if widest == 0 {
		return 1
	}
	return widest
}

// plainText renders a song without styling for the clipboard.
func plainText(song catalog.Song) string {
	var b strings.Builder
	b.WriteString(sanitize(song.Title) + "\n")
	b.WriteString(sanitize(song.Artist) + "\n")
	for _, section := range song.Lyrics {
		b.WriteString("\n")
		if label := sanitize(section.Type); label != "" {
			b.WriteString("[" + label + "]\n")
		}
		for _, line := range section.Lines {
			if chord := strings.TrimSpace(sanitize(line.Chord)); chord != "" {
				b.WriteString(chord + "\n")
			}
			b.WriteString(sanitize(line.Lyric) + "\n")
		}
	}
	return b.String()
}
