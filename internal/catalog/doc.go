// Package catalog holds the song data model and the loaders that read it.
//
// A catalog is a JSON array of songs:
//
//	[
//	  {
//	    "id": 1,
//	    "title": "Amazing Grace",
//	    "artist": "Traditional",
//	    "lyrics": [
//	      {"type": "verse", "lines": [{"chord": "G", "lyric": "Amazing grace"}]}
//	    ]
//	  }
//	]
//
// Ids may be numbers or strings. Individual songs are not validated at load
// time; a malformed entry surfaces when it is rendered.
//
// # Sources
//
// Open returns an HTTPSource for http(s) locations and a FileSource for
// everything else. Every failure wraps ErrLoad so callers can tell a load
// failure apart from other errors with errors.Is.
//
// # Lookup and search
//
// Find returns the first song with a given id. Filter performs a trimmed,
// case-insensitive substring match on title and artist and keeps catalog order.
package catalog
