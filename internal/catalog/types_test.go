package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleCatalog() Catalog {
	return Catalog{
		{ID: "1", Title: "Amazing Grace", Artist: "Traditional"},
		{ID: "2", Title: "Blowin' in the Wind", Artist: "Bob Dylan"},
		{ID: "3", Title: "Hallelujah", Artist: "Leonard Cohen"},
		{ID: "4", Title: "Graceland", Artist: "Paul Simon"},
	}
}

func ids(c Catalog) []string {
	out := make([]string, 0, len(c))
	for _, s := range c {
		out = append(out, string(s.ID))
	}
	return out
}

func TestFilter(t *testing.T) {
	cat := sampleCatalog()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns all", "", []string{"1", "2", "3", "4"}},
		{"blank returns all", "   ", []string{"1", "2", "3", "4"}},
		{"title substring keeps order", "grace", []string{"1", "4"}},
		{"case folded and trimmed", "  GRACE ", []string{"1", "4"}},
		{"artist match", "dylan", []string{"2"}},
		{"no match", "zeppelin", []string{}},
		{"no fuzzy match", "hllj", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(cat.Filter(tt.query))
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("Filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_MatchesDefinition(t *testing.T) {
	cat := sampleCatalog()
	for _, q := range []string{"a", "an", "ON", " si", "l", "xyz"} {
		needle := NormalizeQuery(q)
		var want []string
		for _, s := range cat {
			if strings.Contains(strings.ToLower(s.Title), needle) || strings.Contains(strings.ToLower(s.Artist), needle) {
				want = append(want, string(s.ID))
			}
		}
		got := ids(cat.Filter(q))
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("Filter(%q) = %v, want %v", q, got, want)
		}
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	cat := Catalog{
		{ID: "7", Title: "First"},
		{ID: "7", Title: "Second"},
	}
	song, ok := cat.Find("7")
	if !ok || song.Title != "First" {
		t.Fatalf("Find(7) = %#v, %v; want First", song, ok)
	}
	if _, ok := cat.Find("8"); ok {
		t.Fatalf("Find(8) ok = true, want false")
	}
}

func TestID_DecodesNumbersAndStrings(t *testing.T) {
	var songs Catalog
	payload := `[{"id":1,"title":"A"},{"id":"b-2","title":"B"},{"id":null,"title":"C"}]`
	if err := json.Unmarshal([]byte(payload), &songs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if songs[0].ID != "1" || songs[1].ID != "b-2" || songs[2].ID != "" {
		t.Fatalf("ids = %q %q %q", songs[0].ID, songs[1].ID, songs[2].ID)
	}

	out, err := json.Marshal(songs[0].ID)
	if err != nil || string(out) != "1" {
		t.Fatalf("Marshal(1) = %s, %v; want 1", out, err)
	}
	out, err = json.Marshal(songs[1].ID)
	if err != nil || string(out) != `"b-2"` {
		t.Fatalf("Marshal(b-2) = %s, %v; want \"b-2\"", out, err)
	}
}

func TestID_RejectsObjects(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`{"x":1}`), &id); err == nil {
		t.Fatalf("Unmarshal object returned nil error")
	}
}

func TestSongLabel(t *testing.T) {
	s := Song{Title: "Amazing Grace", Artist: "Traditional"}
	if got := s.Label(); got != "Amazing Grace - Traditional" {
		t.Fatalf("Label = %q", got)
	}
}
