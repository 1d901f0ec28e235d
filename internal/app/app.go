package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
	"github.com/five82/chordbook/internal/config"
	"github.com/five82/chordbook/internal/prefs"
	"github.com/five82/chordbook/internal/ui"
)

// Options configure the chordbook application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/chordbook/prefs.toml
	Catalog    string // overrides the configured catalog location
	Speed      string // overrides the saved scroll speed; parsed base 10
	Debug      bool
}

// Run boots the chordbook TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	logger, closeLog, err := openLogger(cfg.LogFile, opts.Debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	location := cfg.Catalog
	if opts.Catalog != "" {
		location = opts.Catalog
	}
	src, err := catalog.Open(location)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}

	speed := resolveSpeed(opts.Speed, userPrefs.ScrollSpeed, cfg.ScrollSpeed)
	logger.Info("chordbook starting",
		slog.String("catalog", src.Location()),
		slog.Int("speed", speed),
		slog.String("theme", userPrefs.Theme),
		slog.String("layout", userPrefs.Layout),
	)

	err = ui.Run(ui.Options{
		Context:     ctx,
		Source:      src,
		Logger:      logger,
		ThemeName:   userPrefs.Theme,
		Layout:      userPrefs.Layout,
		ScrollSpeed: speed,
		RowHeightPx: cfg.RowHeightPx,
		PrefsPath:   prefsPath,
		LogFile:     cfg.LogFile,
	})
	if err != nil {
		logger.Error("ui exited", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("chordbook stopped")
	return nil
}

// resolveSpeed picks the scroll speed: an explicit flag wins, then the saved
// preference, then the config file.
func resolveSpeed(flagValue string, saved, configured int) int {
	if flagValue != "" {
		return autoscroll.ParseSpeed(flagValue)
	}
	if saved > 0 {
		return autoscroll.ClampSpeed(saved)
	}
	return autoscroll.ClampSpeed(configured)
}
