// Package app is chordbook's composition root.
//
// Run wires the pieces together in order:
//
//  1. config.Load reads ~/.config/chordbook/config.toml (defaults when missing)
//  2. prefs.Load reads the saved theme, speed and chord layout
//  3. openLogger opens the slog text log file
//  4. catalog.Open picks a file or HTTP source for the song catalog
//  5. ui.Run starts the TUI, which loads the catalog once and blocks until quit
//
// Scroll speed precedence is -speed flag, then saved preference, then config.
//
// Fatal errors (returned from Run): an unparsable config file, an unusable log
// path or catalog location, and a failure of the TUI itself. A catalog that
// cannot be fetched or decoded is not fatal; the UI shows an error message.
package app
