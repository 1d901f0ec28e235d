package ui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
	"github.com/five82/chordbook/internal/prefs"
	"github.com/five82/chordbook/internal/songbook"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		amazingGrace(),
		{ID: "2", Title: "Jolene", Artist: "Dolly Parton", Lyrics: longSong(40).Lyrics},
		{ID: "3", Title: "Hallelujah", Artist: "Leonard Cohen"},
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(opts)
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	return send(t, m, catalogMsg{location: "test", songs: testCatalog()})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func TestModel_LoadRendersList(t *testing.T) {
	m := newTestModel(t, Options{})
	if got := len(m.screen.list); got != 3 {
		t.Fatalf("list = %d songs, want 3", got)
	}
	view := plainView(m)
	if !strings.Contains(view, "3 songs") || !strings.Contains(view, "Welcome to chordbook") {
		t.Fatalf("view missing song count or welcome:\n%s", view)
	}
}

func TestModel_LoadFailureShowsMessage(t *testing.T) {
	m := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})
	if !strings.Contains(plainView(m), "Loading songs...") {
		t.Fatalf("loading state not shown:\n%s", plainView(m))
	}

	m = send(t, m, catalogMsg{location: "test", err: catalog.ErrLoad})
	if !strings.Contains(plainView(m), songbook.LoadErrorMessage) {
		t.Fatalf("view missing load error:\n%s", plainView(m))
	}
	if len(m.core.Songs()) != 0 {
		t.Fatalf("songs = %d, want empty", len(m.core.Songs()))
	}
}

func TestModel_SearchAndShowSong(t *testing.T) {
	m := newTestModel(t, Options{})

	m = send(t, m, runes("/"))
	if !m.search.Focused() {
		t.Fatalf("search not focused after /")
	}
	for _, r := range "JOL" {
		m = send(t, m, runes(string(r)))
	}
	if got := m.search.Value(); got != "JOL" {
		t.Fatalf("search value = %q, want JOL", got)
	}
	if len(m.screen.list) != 1 || m.screen.list[0].Title != "Jolene" {
		t.Fatalf("filtered list = %#v, want Jolene only", m.screen.list)
	}
	if !m.screen.menuOpen {
		t.Fatalf("menu not opened by a non-empty search")
	}

	m = send(t, m, keyEnter)
	if m.search.Focused() {
		t.Fatalf("search still focused after enter")
	}
	if m.screen.song == nil || m.screen.song.Title != "Jolene" {
		t.Fatalf("shown song = %#v, want Jolene", m.screen.song)
	}
	if m.screen.menuOpen || m.screen.welcome {
		t.Fatalf("menuOpen=%v welcome=%v after showing song", m.screen.menuOpen, m.screen.welcome)
	}
	if view := plainView(m); !strings.Contains(view, "Dolly Parton") {
		t.Fatalf("view missing artist:\n%s", view)
	}
}

func TestModel_SearchWithNoMatchesKeepsMenuClosed(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, runes("/"))
	m = send(t, m, runes("zeppelin"))
	if m.screen.menuOpen {
		t.Fatalf("menu opened for an empty result")
	}
	m = send(t, m, keyEsc)
	m = send(t, m, runes("m"))
	if !strings.Contains(plainView(m), "No songs match zeppelin") {
		t.Fatalf("empty menu state not shown:\n%s", plainView(m))
	}
}

func TestModel_MenuNavigation(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, runes("m"))
	if !m.screen.menuOpen {
		t.Fatalf("m did not open the menu")
	}
	m = send(t, m, runes("j"))
	m = send(t, m, runes("j"))
	m = send(t, m, runes("j"))
	if m.selected != 2 {
		t.Fatalf("selected = %d, want clamped to 2", m.selected)
	}
	m = send(t, m, keyEnter)
	if id, ok := m.core.CurrentSongID(); !ok || id != "3" {
		t.Fatalf("CurrentSongID = %q, %v; want 3", id, ok)
	}
}

// showLongSong opens the menu and shows Jolene, which overflows the body.
func showLongSong(t *testing.T, m Model) Model {
	t.Helper()
	m = send(t, m, runes("m"))
	m = send(t, m, runes("j"))
	m = send(t, m, keyEnter)
	if m.screen.MaxScroll() == 0 {
		t.Fatalf("test song does not overflow the sheet")
	}
	return m
}

func TestModel_AutoscrollTicksAndWheelStops(t *testing.T) {
	m := showLongSong(t, newTestModel(t, Options{ScrollSpeed: 10}))

	m, cmd := sendCmd(t, m, keySpace)
	if cmd == nil || !m.core.Autoscroll().Running() {
		t.Fatalf("space did not start autoscroll")
	}
	if m.screen.label != autoscroll.LabelRunning {
		t.Fatalf("label = %q, want %q", m.screen.label, autoscroll.LabelRunning)
	}

	tok := m.core.Autoscroll().Token()
	m, cmd = sendCmd(t, m, scrollTickMsg{token: tok})
	if cmd == nil {
		t.Fatalf("tick did not schedule the next tick")
	}
	if got := m.screen.ScrollY(); got != 24 {
		t.Fatalf("ScrollY after one tick = %d, want 24", got)
	}

	m = send(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.core.Autoscroll().Running() || m.screen.label != autoscroll.LabelStopped {
		t.Fatalf("wheel did not stop autoscroll")
	}

	before := m.screen.ScrollY()
	m, cmd = sendCmd(t, m, scrollTickMsg{token: tok})
	if cmd != nil || m.screen.ScrollY() != before {
		t.Fatalf("stale tick scrolled the sheet")
	}
}

func TestModel_ResizeAndManualScrollStopAutoscroll(t *testing.T) {
	m := showLongSong(t, newTestModel(t, Options{}))

	m = send(t, m, runes("a"))
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 12})
	if m.core.Autoscroll().Running() {
		t.Fatalf("resize did not stop autoscroll")
	}

	m = send(t, m, runes("a"))
	m = send(t, m, runes("j"))
	if m.core.Autoscroll().Running() {
		t.Fatalf("manual scroll did not stop autoscroll")
	}
	if m.screen.sheet.YOffset != 1 {
		t.Fatalf("YOffset = %d, want 1", m.screen.sheet.YOffset)
	}
}

func TestModel_SpeedChangeRestartsRun(t *testing.T) {
	m := showLongSong(t, newTestModel(t, Options{ScrollSpeed: 5}))

	m = send(t, m, runes("+"))
	if m.core.Autoscroll().Speed() != 6 {
		t.Fatalf("speed = %d, want 6", m.core.Autoscroll().Speed())
	}

	m = send(t, m, keySpace)
	old := m.core.Autoscroll().Token()
	m, cmd := sendCmd(t, m, runes("-"))
	if cmd == nil || m.core.Autoscroll().Token() == old || !m.core.Autoscroll().Running() {
		t.Fatalf("speed change while running did not restart")
	}
}

func TestModel_PreferencesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{ThemeName: "Dracula", PrefsPath: path})
	m = showLongSong(t, m)

	m = send(t, m, runes("T"))
	m = send(t, m, runes("c"))
	m = send(t, m, runes("+"))

	p, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("prefs.Load returned error: %v", err)
	}
	want := prefs.Prefs{Theme: "Slate", ScrollSpeed: 6, Layout: prefs.LayoutInline}
	if p != want {
		t.Fatalf("prefs = %+v, want %+v", p, want)
	}
	if m.theme.Name != "Slate" || m.screen.layout != prefs.LayoutInline {
		t.Fatalf("theme=%q layout=%q", m.theme.Name, m.screen.layout)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newTestModel(t, Options{})
	m.height = 30
	m = send(t, m, runes("?"))
	if !strings.Contains(plainView(m), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown:\n%s", plainView(m))
	}
	m = send(t, m, runes("x"))
	if m.showHelp {
		t.Fatalf("help still open after a key")
	}
}

func TestModel_CopyWithoutSong(t *testing.T) {
	m := newTestModel(t, Options{})
	m, cmd := sendCmd(t, m, runes("y"))
	if cmd != nil || m.notice == "" {
		t.Fatalf("copy without a song: cmd=%v notice=%q", cmd, m.notice)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, Options{})
	_, cmd := sendCmd(t, m, runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q command did not quit")
	}
}

func TestModel_LogOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordbook.log")
	line := "time=2026-10-19T10:00:01.000Z level=ERROR msg=\"catalog load failed\" location=songs.json\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m := newTestModel(t, Options{LogFile: path})
	m.height = 20
	m, cmd := sendCmd(t, m, runes("L"))
	if !m.showLog || cmd == nil {
		t.Fatalf("L did not open the log overlay")
	}
	m = send(t, m, cmd())

	view := plainView(m)
	for _, want := range []string{"Recent log", "10:00:01", "ERROR", "catalog load failed location=songs.json"} {
		if !strings.Contains(view, want) {
			t.Fatalf("log overlay missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, keyEsc)
	if m.showLog {
		t.Fatalf("log overlay still open after a key")
	}
}
