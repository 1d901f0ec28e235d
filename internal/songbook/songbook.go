// Package songbook is the application core: it owns the catalog and the UI
// state and drives a View in response to user actions.
package songbook

import (
	"context"
	"log/slog"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
)

// LoadErrorMessage is shown in the content area when the catalog cannot be
// loaded.
const LoadErrorMessage = "Error loading songs. Please try again later."

// View is the rendering surface the core writes to.
type View interface {
	RenderList(songs []catalog.Song)
	RenderSong(song catalog.Song)
	RenderMessage(text string)
	HideWelcome()
	SetMenuOpen(open bool)
	ScrollToTop()
	SetAutoscrollLabel(label string)
}

// App holds the catalog and UI state. All methods run on the UI goroutine.
type App struct {
	view   View
	logger *slog.Logger

	songs         catalog.Catalog
	loaded        bool
	currentSongID *catalog.ID
	menuOpen      bool
	query         string

	scroll *autoscroll.Controller
}

// New builds an App that renders into view.
func New(view View, speed int, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		view:   view,
		logger: logger,
		scroll: autoscroll.New(speed),
	}
}

// LoadCatalog performs the single startup load. On failure the error message
// is shown and the catalog stays empty; there is no retry.
func (a *App) LoadCatalog(ctx context.Context, src catalog.Source) error {
	if a.loaded {
		return nil
	}
	songs, err := src.Load(ctx)
	a.ApplyCatalog(src.Location(), songs, err)
	return err
}

// ApplyCatalog installs the result of a catalog load that ran elsewhere (the
// UI loads asynchronously). Only the first call has any effect.
func (a *App) ApplyCatalog(location string, songs catalog.Catalog, err error) {
	if a.loaded {
		return
	}
	a.loaded = true
	if err != nil {
		a.logger.Error("catalog load failed", "location", location, "error", err)
		a.songs = nil
		a.view.RenderMessage(LoadErrorMessage)
		return
	}
	a.logger.Info("catalog loaded", "location", location, "songs", len(songs))
	a.songs = songs
	a.RenderList(nil)
}

// Loaded reports whether the startup load has completed (successfully or not).
func (a *App) Loaded() bool {
	return a.loaded
}

// Songs returns the catalog.
func (a *App) Songs() catalog.Catalog {
	return a.songs
}

// RenderList shows subset in the list, or the whole catalog when subset is nil.
func (a *App) RenderList(subset catalog.Catalog) {
	if subset == nil {
		subset = a.songs
	}
	a.view.RenderList(subset)
}

// OnSearchInput re-filters the list for query. A non-empty result forces the
// menu open; it never closes it.
func (a *App) OnSearchInput(query string) catalog.Catalog {
	a.query = query
	if catalog.NormalizeQuery(query) == "" {
		a.RenderList(nil)
		return a.songs
	}
	filtered := a.songs.Filter(query)
	a.RenderList(filtered)
	if len(filtered) > 0 && !a.menuOpen {
		a.setMenuOpen(true)
	}
	return filtered
}

// Query returns the last search input.
func (a *App) Query() string {
	return a.query
}

// ShowSong displays the first song with id. Unknown ids are ignored.
func (a *App) ShowSong(id catalog.ID) bool {
	song, ok := a.songs.Find(id)
	if !ok {
		a.logger.Debug("song lookup missed", "id", id)
		return false
	}
	a.currentSongID = &id
	a.view.HideWelcome()
	a.view.RenderSong(song)
	a.setMenuOpen(false)
	a.view.ScrollToTop()
	return true
}

// CurrentSongID returns the displayed song id, if any.
func (a *App) CurrentSongID() (catalog.ID, bool) {
	if a.currentSongID == nil {
		return "", false
	}
	return *a.currentSongID, true
}

// CurrentSong looks the displayed song up in the catalog.
func (a *App) CurrentSong() (catalog.Song, bool) {
	if a.currentSongID == nil {
		return catalog.Song{}, false
	}
	return a.songs.Find(*a.currentSongID)
}

// MenuOpen reports whether the song menu is open.
func (a *App) MenuOpen() bool {
	return a.menuOpen
}

// ToggleMenu flips the menu between open and closed.
func (a *App) ToggleMenu() {
	a.setMenuOpen(!a.menuOpen)
}

func (a *App) setMenuOpen(open bool) {
	a.menuOpen = open
	a.view.SetMenuOpen(open)
}

// Autoscroll exposes the scroll controller for tick scheduling.
func (a *App) Autoscroll() *autoscroll.Controller {
	return a.scroll
}

// StartAutoscroll begins a run if stopped. ok is false when already running.
func (a *App) StartAutoscroll() (autoscroll.Token, autoscroll.Params, bool) {
	tok, p, ok := a.scroll.Start()
	if ok {
		a.view.SetAutoscrollLabel(a.scroll.Label())
	}
	return tok, p, ok
}

// StopAutoscroll ends any run. It is safe to call in any state.
func (a *App) StopAutoscroll() {
	a.scroll.Stop()
	a.view.SetAutoscrollLabel(a.scroll.Label())
}

// ToggleAutoscroll flips the autoscroll state. When a run starts its token
// and parameters are returned with started set.
func (a *App) ToggleAutoscroll() (tok autoscroll.Token, p autoscroll.Params, started bool) {
	if a.scroll.Running() {
		a.StopAutoscroll()
		return 0, autoscroll.Params{}, false
	}
	return a.StartAutoscroll()
}

// SetScrollSpeed changes the speed; a running scroll restarts at the new
// speed and its new token is returned with restarted set.
func (a *App) SetScrollSpeed(speed int) (tok autoscroll.Token, p autoscroll.Params, restarted bool) {
	if !a.scroll.SetSpeed(speed) {
		return 0, a.scroll.Params(), false
	}
	a.view.SetAutoscrollLabel(a.scroll.Label())
	return a.scroll.Token(), a.scroll.Params(), true
}

// AutoscrollTick advances the run identified by tok on s. It returns true
// when another tick should be scheduled.
func (a *App) AutoscrollTick(tok autoscroll.Token, s autoscroll.Surface) bool {
	wasRunning := a.scroll.Running()
	more := a.scroll.Tick(tok, s)
	if wasRunning && !a.scroll.Running() {
		a.view.SetAutoscrollLabel(a.scroll.Label())
	}
	return more
}
