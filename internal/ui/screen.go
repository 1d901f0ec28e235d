package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
	"github.com/five82/chordbook/internal/songbook"
)

var (
	_ songbook.View      = (*screen)(nil)
	_ autoscroll.Surface = (*screen)(nil)
)

// screen is the render state the songbook core writes to. It also exposes
// the song sheet's scroll position in virtual pixels: one terminal row is
// rowHeight pixels and the sub-row remainder is kept between scrolls.
type screen struct {
	theme     Theme
	layout    string
	rowHeight int
	width     int

	list     []catalog.Song
	song     *catalog.Song
	message  string
	welcome  bool
	menuOpen bool
	label    string

	sheet     viewport.Model
	remainder int
}

func newScreen(theme Theme, layout string, rowHeight int) *screen {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return &screen{
		theme:     theme,
		layout:    layout,
		rowHeight: rowHeight,
		welcome:   true,
		label:     autoscroll.LabelStopped,
		sheet:     viewport.New(0, 0),
	}
}

func (s *screen) RenderList(songs []catalog.Song) { s.list = songs }

func (s *screen) RenderSong(song catalog.Song) {
	s.song = &song
	s.message = ""
	s.refresh()
}

func (s *screen) RenderMessage(text string)       { s.message = text }
func (s *screen) HideWelcome()                    { s.welcome = false }
func (s *screen) SetMenuOpen(open bool)           { s.menuOpen = open }
func (s *screen) SetAutoscrollLabel(label string) { s.label = label }

func (s *screen) ScrollToTop() {
	s.remainder = 0
	s.sheet.GotoTop()
}

func (s *screen) ScrollY() int {
	return s.sheet.YOffset*s.rowHeight + s.remainder
}

func (s *screen) MaxScroll() int {
	return s.maxRows() * s.rowHeight
}

func (s *screen) ScrollBy(dy int) {
	total := s.ScrollY() + dy
	if limit := s.MaxScroll(); total > limit {
		total = limit
	}
	if total < 0 {
		total = 0
	}
	s.sheet.SetYOffset(total / s.rowHeight)
	s.remainder = total % s.rowHeight
}

// scrollRows moves the sheet by whole rows, dropping any pixel remainder.
func (s *screen) scrollRows(n int) {
	s.remainder = 0
	s.sheet.SetYOffset(s.sheet.YOffset + n)
}

func (s *screen) scrollToBottom() {
	s.remainder = 0
	s.sheet.GotoBottom()
}

func (s *screen) maxRows() int {
	rows := s.sheet.TotalLineCount() - s.sheet.Height
	if rows < 0 || s.song == nil {
		return 0
	}
	return rows
}

func (s *screen) resize(width, height int) {
	if height < 1 {
		height = 1
	}
	s.width = width
	s.sheet.Width = width
	s.sheet.Height = height
	s.refresh()
}

func (s *screen) setTheme(t Theme) {
	s.theme = t
	s.refresh()
}

func (s *screen) setLayout(layout string) {
	s.layout = layout
	s.refresh()
}

// refresh rebuilds the sheet content for the current song, theme, width and
// layout.
func (s *screen) refresh() {
	s.sheet.Style = lipgloss.NewStyle().Background(lipgloss.Color(s.theme.FocusBg))
	if s.song == nil || s.width <= 0 {
		return
	}
	styles := s.theme.Styles().WithBackground(s.theme.FocusBg)
	s.sheet.SetContent(renderSheet(*s.song, styles, s.width, s.layout))
	if s.sheet.YOffset > s.maxRows() {
		s.sheet.SetYOffset(s.maxRows())
	}
	if s.ScrollY() > s.MaxScroll() {
		s.remainder = 0
	}
}
