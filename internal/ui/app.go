// Package ui provides the Bubble Tea terminal interface for chordbook.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
	"github.com/five82/chordbook/internal/logtail"
	"github.com/five82/chordbook/internal/prefs"
	"github.com/five82/chordbook/internal/songbook"
)

// wheelRows is how far one mouse wheel notch scrolls the sheet or menu.
const wheelRows = 3

// Options configures the UI.
type Options struct {
	Context     context.Context
	Source      catalog.Source
	Logger      *slog.Logger
	ThemeName   string
	Layout      string
	ScrollSpeed int
	RowHeightPx int
	PrefsPath   string // empty disables saving preferences
	LogFile     string // shown by the log overlay
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	source    catalog.Source
	logger    *slog.Logger
	prefsPath string
	logFile   string

	core   *songbook.App
	screen *screen

	theme   Theme
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	width    int
	height   int
	ready    bool
	selected int
	showHelp bool
	notice   string

	// Log overlay
	showLog    bool
	logRecords []logtail.Record
	logErr     error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	layout := opts.Layout
	if layout != prefs.LayoutInline {
		layout = prefs.LayoutStacked
	}

	speed := opts.ScrollSpeed
	if speed <= 0 {
		speed = autoscroll.DefaultSpeed
	}

	theme := GetTheme(opts.ThemeName)
	scr := newScreen(theme, layout, opts.RowHeightPx)

	ti := textinput.New()
	ti.Placeholder = "Search songs by title or artist"
	ti.Prompt = "/ "
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:       ctx,
		source:    opts.Source,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		logFile:   opts.LogFile,
		core:      songbook.New(scr, speed, logger),
		screen:    scr,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		search:    ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.source != nil {
		cmds = append(cmds, loadCatalogCmd(m.ctx, m.source))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		// A resize invalidates the scroll geometry.
		m.core.StopAutoscroll()
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = maxInt(m.width-6, 1)
		m.screen.resize(m.width, m.bodyHeight())
		return m, nil

	case catalogMsg:
		m.core.ApplyCatalog(msg.location, msg.songs, msg.err)
		m.selected = 0
		return m, nil

	case spinner.TickMsg:
		if m.core.Loaded() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case scrollTickMsg:
		if m.core.AutoscrollTick(msg.token, m.screen) {
			return m, scrollTickCmd(msg.token, m.core.Autoscroll().Params().Interval)
		}
		return m, nil

	case logRecordsMsg:
		m.logRecords = msg.records
		m.logErr = msg.err
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard copy failed", "error", msg.err)
			m.notice = "Clipboard unavailable"
		} else {
			m.notice = "Copied " + truncateWidth(sanitize(msg.title), 24)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.spinner.View() + " Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLog {
		return m.renderLogOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	if m.screen.menuOpen {
		b.WriteString(m.renderMenu(m.bodyHeight()))
	} else {
		b.WriteString(m.renderContent(m.bodyHeight()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// bodyHeight is the space left for the menu or song sheet after the header,
// search bar and command bar.
func (m Model) bodyHeight() int {
	return maxInt(m.height-3, 1)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	if m.showHelp || m.showLog {
		// Any key closes an overlay
		m.showHelp = false
		m.showLog = false
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.core.StopAutoscroll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ShowLog):
		m.showLog = true
		m.logRecords, m.logErr = nil, nil
		return m, readLogCmd(m.logFile)

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.screen.setTheme(m.theme)
		m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleMenu):
		m.core.ToggleMenu()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.screen.menuOpen {
			m.core.ToggleMenu()
		}
		return m, nil
	}

	if m.screen.menuOpen {
		return m.handleMenuKey(msg)
	}
	return m.handleSheetKey(msg)
}

// handleSearchKey routes keys to the focused search input. Every edit
// re-filters the song list.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.search.Blur()
		return m, nil
	case "enter":
		m.search.Blur()
		m.showSelected()
		return m, nil
	case "up":
		m.moveSelection(-1)
		return m, nil
	case "down":
		m.moveSelection(1)
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.core.OnSearchInput(m.search.Value())
		m.selected = 0
	}
	return m, cmd
}

// handleMenuKey processes keys while the song menu is open.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(m.bodyHeight())
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = maxInt(len(m.screen.list)-1, 0)
	case key.Matches(msg, m.keys.Select):
		m.showSelected()
	}
	return m, nil
}

// handleSheetKey processes keys while the song sheet is shown. Any manual
// scroll cancels autoscroll.
func (m Model) handleSheetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Autoscroll):
		if tok, p, started := m.core.ToggleAutoscroll(); started {
			return m, scrollTickCmd(tok, p.Interval)
		}
		return m, nil

	case key.Matches(msg, m.keys.Faster):
		return m.changeSpeed(1)

	case key.Matches(msg, m.keys.Slower):
		return m.changeSpeed(-1)

	case key.Matches(msg, m.keys.ToggleLayout):
		layout := prefs.LayoutInline
		if m.screen.layout == prefs.LayoutInline {
			layout = prefs.LayoutStacked
		}
		m.screen.setLayout(layout)
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		song, ok := m.core.CurrentSong()
		if !ok {
			m.notice = "No song to copy"
			return m, nil
		}
		return m, copySongCmd(song)

	case key.Matches(msg, m.keys.Up):
		m.core.StopAutoscroll()
		m.screen.scrollRows(-1)
	case key.Matches(msg, m.keys.Down):
		m.core.StopAutoscroll()
		m.screen.scrollRows(1)
	case key.Matches(msg, m.keys.PageUp):
		m.core.StopAutoscroll()
		m.screen.scrollRows(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.core.StopAutoscroll()
		m.screen.scrollRows(m.bodyHeight())
	case key.Matches(msg, m.keys.Top):
		m.core.StopAutoscroll()
		m.screen.ScrollToTop()
	case key.Matches(msg, m.keys.Bottom):
		m.core.StopAutoscroll()
		m.screen.scrollToBottom()
	}
	return m, nil
}

// handleMouse treats the wheel as a manual scroll: autoscroll stops first.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	delta := 0
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		delta = -wheelRows
	case tea.MouseButtonWheelDown:
		delta = wheelRows
	default:
		return m, nil
	}

	m.core.StopAutoscroll()
	if m.screen.menuOpen {
		m.moveSelection(delta)
	} else {
		m.screen.scrollRows(delta)
	}
	return m, nil
}

func (m *Model) changeSpeed(delta int) (tea.Model, tea.Cmd) {
	tok, p, restarted := m.core.SetScrollSpeed(m.core.Autoscroll().Speed() + delta)
	m.savePrefs()
	if restarted {
		return *m, scrollTickCmd(tok, p.Interval)
	}
	return *m, nil
}

func (m *Model) moveSelection(delta int) {
	n := len(m.screen.list)
	if n == 0 {
		m.selected = 0
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected > n-1 {
		m.selected = n - 1
	}
}

// showSelected displays the highlighted menu entry.
func (m *Model) showSelected() {
	if m.selected < 0 || m.selected >= len(m.screen.list) {
		return
	}
	m.core.ShowSong(m.screen.list[m.selected].ID)
}

// savePrefs persists theme, speed and layout. Failures are logged only.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:       m.theme.Name,
		ScrollSpeed: m.core.Autoscroll().Speed(),
		Layout:      m.screen.layout,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
	}
}

// Messages

type catalogMsg struct {
	location string
	songs    catalog.Catalog
	err      error
}

type scrollTickMsg struct {
	token autoscroll.Token
}

type logRecordsMsg struct {
	records []logtail.Record
	err     error
}

type clipboardMsg struct {
	title string
	err   error
}

// Commands

func loadCatalogCmd(ctx context.Context, src catalog.Source) tea.Cmd {
	return func() tea.Msg {
		songs, err := src.Load(ctx)
		return catalogMsg{location: src.Location(), songs: songs, err: err}
	}
}

func scrollTickCmd(tok autoscroll.Token, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return scrollTickMsg{token: tok}
	})
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logRecordsMsg{}
		}
		records, err := logtail.Tail(path, logOverlayLines)
		return logRecordsMsg{records: records, err: err}
	}
}

func copySongCmd(song catalog.Song) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{title: song.Title, err: clipboard.WriteAll(plainText(song))}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
