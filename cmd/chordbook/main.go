package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/chordbook/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (default ~/.config/chordbook/config.toml)")
	catalogLoc := flag.String("catalog", "", "song catalog file or http(s) URL (overrides config)")
	speed := flag.String("speed", "", "autoscroll speed 1-10 (overrides saved preference)")
	prefsPath := flag.String("prefs", "", "preferences file path (default ~/.config/chordbook/prefs.toml)")
	debug := flag.Bool("debug", false, "write debug records to the log file")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Catalog:    *catalogLoc,
		Speed:      *speed,
		Debug:      *debug,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "chordbook: %v\n", err)
		return 1
	}
	return 0
}
