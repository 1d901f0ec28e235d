package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/chordbook/internal/autoscroll"
)

func TestResolveSpeed(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		saved      int
		configured int
		want       int
	}{
		{"config only", "", 0, 7, 7},
		{"saved beats config", "", 3, 7, 3},
		{"flag beats saved", "9", 3, 7, 9},
		{"flag parsed base ten", "10", 0, 5, 10},
		{"flag clamped", "40", 0, 5, autoscroll.MaxSpeed},
		{"bad flag uses default", "fast", 3, 7, autoscroll.DefaultSpeed},
		{"saved clamped", "", 99, 5, autoscroll.MaxSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveSpeed(tt.flag, tt.saved, tt.configured); got != tt.want {
				t.Fatalf("resolveSpeed(%q, %d, %d) = %d, want %d", tt.flag, tt.saved, tt.configured, got, tt.want)
			}
		})
	}
}

func TestOpenLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "chordbook.log")

	logger, closeLog, err := openLogger(path, true)
	if err != nil {
		t.Fatalf("openLogger returned error: %v", err)
	}
	logger.Debug("song lookup missed", "id", "42")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "song lookup missed") || !strings.Contains(string(data), "id=42") {
		t.Fatalf("log file = %q, want the debug record", data)
	}
}

func TestOpenLogger_InfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chordbook.log")

	logger, closeLog, err := openLogger(path, false)
	if err != nil {
		t.Fatalf("openLogger returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	closeLog()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("log file = %q, want only the info record", data)
	}
}

func TestRun_InvalidConfigFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("catalog = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	err := Run(context.Background(), Options{ConfigPath: path})
	if err == nil || !strings.Contains(err.Error(), "load config") {
		t.Fatalf("Run error = %v, want load config failure", err)
	}
}

func TestRun_BadCatalogLocationFails(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := Run(context.Background(), Options{
		ConfigPath: filepath.Join(home, "missing.toml"),
		Catalog:    "https://",
	})
	if err == nil || !strings.Contains(err.Error(), "open catalog") {
		t.Fatalf("Run error = %v, want open catalog failure", err)
	}
}
