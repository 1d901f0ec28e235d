package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/chordbook/internal/autoscroll"
	"github.com/five82/chordbook/internal/catalog"
)

// Config captures chordbook's startup settings.
type Config struct {
	Catalog     string // file path or http(s) URL
	ScrollSpeed int
	RowHeightPx int
	LogFile     string
}

const (
	defaultConfigPath  = "~/.config/chordbook/config.toml"
	defaultLogFile     = "~/.local/state/chordbook/chordbook.log"
	defaultRowHeightPx = 48
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Catalog:     catalog.DefaultLocation,
		ScrollSpeed: autoscroll.DefaultSpeed,
		RowHeightPx: defaultRowHeightPx,
		LogFile:     mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Catalog     string `toml:"catalog"`
		ScrollSpeed int    `toml:"scroll_speed"`
		RowHeightPx int    `toml:"row_height_px"`
		LogFile     string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if c := strings.TrimSpace(raw.Catalog); c != "" {
		cfg.Catalog = c
	}
	if raw.ScrollSpeed != 0 {
		cfg.ScrollSpeed = autoscroll.ClampSpeed(raw.ScrollSpeed)
	}
	if raw.RowHeightPx > 0 {
		cfg.RowHeightPx = raw.RowHeightPx
	}
	if l := strings.TrimSpace(raw.LogFile); l != "" {
		cfg.LogFile = mustExpand(l)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
