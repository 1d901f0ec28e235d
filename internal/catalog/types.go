package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID identifies a song. The catalog may carry numeric or string ids; both are
// kept in their textual form so lookups compare like for like.
type ID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric-looking ids back as numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := json.Number(id).Int64(); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Song is one catalog entry.
type Song struct {
	ID     ID        `json:"id"`
	Title  string    `json:"title"`
	Artist string    `json:"artist"`
	Lyrics []Section `json:"lyrics"`
}

// Section is a labeled block of lines such as a verse or chorus.
type Section struct {
	Type  string `json:"type"`
	Lines []Line `json:"lines"`
}

// Line pairs a chord (possibly empty) with its lyric.
type Line struct {
	Chord string `json:"chord"`
	Lyric string `json:"lyric"`
}

// Catalog is the ordered song collection. It is loaded once and never mutated.
type Catalog []Song

// Find returns the first song whose id equals id.
func (c Catalog) Find(id ID) (Song, bool) {
	for _, song := range c {
		if song.ID == id {
			return song, true
		}
	}
	return Song{}, false
}

// Filter returns the songs whose title or artist contains query as a
// case-insensitive substring, in catalog order. A blank query returns the
// whole catalog.
func (c Catalog) Filter(query string) Catalog {
	needle := NormalizeQuery(query)
	if needle == "" {
		return c
	}
	out := make(Catalog, 0, len(c))
	for _, song := range c {
		if song.Matches(needle) {
			out = append(out, song)
		}
	}
	return out
}

// NormalizeQuery trims and case-folds a search query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether an already normalized needle occurs in the title or
// artist.
func (s Song) Matches(needle string) bool {
	return strings.Contains(strings.ToLower(s.Title), needle) ||
		strings.Contains(strings.ToLower(s.Artist), needle)
}

// Label is the one-line list entry for the song.
func (s Song) Label() string {
	return fmt.Sprintf("%s - %s", s.Title, s.Artist)
}
