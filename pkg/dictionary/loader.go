package dictionary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Loader fetches dataset files from a local directory or over HTTP.
type Loader struct {
	dir    string
	client *http.Client
}

// NewLoader creates a loader resolving relative sources against dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:    dir,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithClient replaces the HTTP client used for URL sources.
func (l *Loader) WithClient(client *http.Client) *Loader {
	l.client = client
	return l
}

// Dir returns the directory relative sources are resolved against.
func (l *Loader) Dir() string {
	return l.dir
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Resolve turns a source into the path or URL that will be fetched.
func (l *Loader) Resolve(source string) string {
	if IsURL(source) || filepath.IsAbs(source) || l.dir == "" {
		return source
	}
	return filepath.Join(l.dir, source)
}

// Fetch reads and decodes every record of source. Failures come back as *LoadError.
func (l *Loader) Fetch(ctx context.Context, source string) ([]Record, error) {
	resolved := l.Resolve(source)
	format, err := DetectFileFormat(resolved)
	if err != nil {
		return nil, &LoadError{Source: source, Stage: StageFormat, Err: err}
	}

	start := time.Now()
	body, err := l.open(ctx, resolved)
	if err != nil {
		return nil, &LoadError{Source: source, Stage: StageFetch, Err: err}
	}
	defer body.Close()

	records, err := Decode(body, format)
	if err != nil {
		return nil, &LoadError{Source: source, Stage: StageDecode, Err: err}
	}
	log.Debugf("Fetched %s (%s): %d records in %v", resolved, format, len(records), time.Since(start))
	return records, nil
}

func (l *Loader) open(ctx context.Context, resolved string) (io.ReadCloser, error) {
	if !IsURL(resolved) {
		return os.Open(resolved)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resolved, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
