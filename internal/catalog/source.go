package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrLoad marks every catalog fetch or parse failure.
var ErrLoad = errors.New("load catalog")

// DefaultLocation is the catalog read when nothing else is configured.
const DefaultLocation = "songs.json"

const (
	defaultUserAgent = "chordbook/0.1"
	requestTimeout   = 5 * time.Second
)

// Source loads a catalog. Implementations are called once per process.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
	Location() string
}

// Ensure both sources implement Source at compile time.
var (
	_ Source = (*HTTPSource)(nil)
	_ Source = (*FileSource)(nil)
)

// Open picks a source for location: http(s) URLs are fetched, anything else is
// read from disk.
func Open(location string) (Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		trimmed = DefaultLocation
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPSource(trimmed)
	}
	path, err := expandPath(trimmed)
	if err != nil {
		return nil, err
	}
	return &FileSource{Path: path}, nil
}

// HTTPSource fetches the catalog document over HTTP.
type HTTPSource struct {
	url       *url.URL
	http      *http.Client
	userAgent string
}

// NewHTTPSource builds an HTTPSource for rawURL.
func NewHTTPSource(rawURL string) (*HTTPSource, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse catalog url %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("catalog url %q has no host", rawURL)
	}
	return &HTTPSource{
		url: u,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Location returns the catalog URL.
func (s *HTTPSource) Location() string {
	return s.url.String()
}

// Load fetches and decodes the catalog.
func (s *HTTPSource) Load(ctx context.Context) (Catalog, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: source is nil", ErrLoad)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrLoad, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrLoad, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrLoad, s.url.Path, resp.StatusCode)
	}
	return decode(resp.Body)
}

// FileSource reads the catalog from a local JSON file.
type FileSource struct {
	Path string
}

// Location returns the file path.
func (s *FileSource) Location() string {
	return s.Path
}

// Load reads and decodes the catalog file.
func (s *FileSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrLoad, s.Path, err)
	}
	defer func() { _ = file.Close() }()
	return decode(file)
}

func decode(r io.Reader) (Catalog, error) {
	var songs Catalog
	if err := json.NewDecoder(r).Decode(&songs); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %w", ErrLoad, err)
	}
	return songs, nil
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
