// Package logtail reads the tail of chordbook's own log file.
//
// Read extracts the last N lines with a ring buffer, so memory stays
// O(N) however large the file grows. Tail additionally parses each line as
// a log/slog text record (time=... level=... msg="..." key=value ...) for the
// in-app log overlay.
//
//	records, err := logtail.Tail(cfg.LogFile, 20)
//	for _, r := range records {
//		fmt.Println(r.Clock(), r.Level, r.Message)
//	}
package logtail
