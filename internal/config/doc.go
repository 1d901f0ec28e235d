// Package config loads chordbook's TOML configuration.
//
// Load reads ~/.config/chordbook/config.toml unless a path is given. A missing
// file is not an error; every field has a default:
//
//	catalog       = "songs.json"       # file path or http(s) URL
//	scroll_speed  = 5                  # 1..10, clamped
//	row_height_px = 48                 # virtual pixels per terminal row
//	log_file      = "~/.local/state/chordbook/chordbook.log"
//
// Blank or zero values fall back to the defaults. Tilde paths are expanded.
// Parse errors are returned wrapped as "parse config".
package config
