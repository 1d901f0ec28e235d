package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Record is one parsed slog text-handler line.
type Record struct {
	Time    string
	Level   string
	Message string
	Attrs   []Attr
	Raw     string
}

// Attr is a key/value pair after the message.
type Attr struct {
	Key   string
	Value string
}

// Read returns at most maxLines lines from the end of the file at path. A
// missing file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return ring[:count], nil
	}
	lines := make([]string, count)
	for i := range lines {
		lines[i] = ring[(idx+i)%maxLines]
	}
	return lines, nil
}

// Tail reads the last maxRecords lines of a chordbook log and parses them.
func Tail(path string, maxRecords int) ([]Record, error) {
	lines, err := Read(path, maxRecords)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, Parse(line))
	}
	return records, nil
}

// Parse splits a slog text line (key=value pairs, values optionally quoted)
// into a Record. Lines that don't follow the format keep their text as the
// message.
func Parse(line string) Record {
	rec := Record{Raw: line}
	rest := strings.TrimSpace(line)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 || strings.ContainsAny(rest[:eq], " \t\"") {
			return Record{Raw: line, Message: line}
		}
		key := rest[:eq]
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return Record{Raw: line, Message: line}
			}
			value, _ = strconv.Unquote(quoted)
			rest = rest[len(quoted):]
		} else {
			end := strings.IndexByte(rest, ' ')
			if end < 0 {
				end = len(rest)
			}
			value = rest[:end]
			rest = rest[end:]
		}
		rest = strings.TrimLeft(rest, " ")

		switch key {
		case "time":
			rec.Time = value
		case "level":
			rec.Level = value
		case "msg":
			rec.Message = value
		default:
			rec.Attrs = append(rec.Attrs, Attr{Key: key, Value: value})
		}
	}
	if rec.Level == "" && rec.Message == "" {
		rec.Message = line
	}
	return rec
}

// Clock returns the HH:MM:SS part of an RFC 3339 timestamp, or the input
// unchanged when it has no time part.
func (r Record) Clock() string {
	t := strings.IndexByte(r.Time, 'T')
	if t < 0 || len(r.Time) < t+9 {
		return r.Time
	}
	return r.Time[t+1 : t+9]
}
