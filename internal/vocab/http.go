package vocab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache is the subset of the key-value store used to keep downloaded lessons.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// maxPayload bounds a single lesson download.
const maxPayload = 32 << 20

// HTTPSource downloads <BaseURL>/<level>.json. A HEAD request compares the
// Last-Modified header against the cached marker so unchanged files are
// served from the cache. Network or decode failures fall back to the cache.
type HTTPSource struct {
	baseURL string
	cache   Cache
	client  *http.Client
	log     logrus.FieldLogger
}

var _ Source = (*HTTPSource)(nil)

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient overrides the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithLogger sets the logger used for cache warnings.
func WithLogger(l logrus.FieldLogger) HTTPOption {
	return func(s *HTTPSource) { s.log = l }
}

// NewHTTPSource creates an HTTPSource. cache may be nil.
func NewHTTPSource(baseURL string, cache Cache, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func dataKey(level Level) string         { return "vocab/" + string(level) + "/data" }
func lastModifiedKey(level Level) string { return "vocab/" + string(level) + "/last-modified" }

// Fetch returns the lessons for level, preferring the cache when fresh.
func (s *HTTPSource) Fetch(ctx context.Context, level Level) (Lessons, error) {
	url := s.baseURL + "/" + string(level) + ".json"
	log := s.log.WithFields(logrus.Fields{"level": level, "url": url})

	lessons, err := s.fetch(ctx, level, url, log)
	if err == nil {
		return lessons, nil
	}

	log.WithError(err).Warn("vocabulary download failed, trying cache")
	if cached, ok := s.cached(ctx, level); ok {
		return cached, nil
	}
	return nil, fmt.Errorf("%w: %s: %v", ErrDataUnavailable, level, err)
}

func (s *HTTPSource) fetch(ctx context.Context, level Level, url string, log logrus.FieldLogger) (Lessons, error) {
	remoteModified, err := s.head(ctx, url)
	if err != nil {
		return nil, err
	}

	if remoteModified != "" && s.cache != nil {
		marker, ok, err := s.cache.Get(ctx, lastModifiedKey(level))
		if err == nil && ok && string(marker) == remoteModified {
			if cached, ok := s.cached(ctx, level); ok {
				log.Debug("serving vocabulary from cache")
				return cached, nil
			}
		}
	}

	raw, getModified, err := s.get(ctx, url)
	if err != nil {
		return nil, err
	}
	lessons, err := Decode(url, raw)
	if err != nil {
		return nil, err
	}

	if getModified != "" {
		remoteModified = getModified
	}
	s.store(ctx, level, raw, remoteModified, log)
	return lessons, nil
}

func (s *HTTPSource) head(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", fmt.Errorf("build HEAD request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HEAD %s: status %d", url, resp.StatusCode)
	}
	return resp.Header.Get("Last-Modified"), nil
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build GET request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return raw, resp.Header.Get("Last-Modified"), nil
}

// cached decodes the cached blob for level, if any.
func (s *HTTPSource) cached(ctx context.Context, level Level) (Lessons, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok, err := s.cache.Get(ctx, dataKey(level))
	if err != nil || !ok {
		return nil, false
	}
	lessons, err := Decode("cache", raw)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			s.log.WithError(err).Warn("discarding invalid cached vocabulary")
		}
		return nil, false
	}
	return lessons, true
}

func (s *HTTPSource) store(ctx context.Context, level Level, raw []byte, modified string, log logrus.FieldLogger) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, dataKey(level), raw); err != nil {
		log.WithError(err).Warn("could not cache vocabulary")
		return
	}
	if modified == "" {
		return
	}
	if err := s.cache.Set(ctx, lastModifiedKey(level), []byte(modified)); err != nil {
		log.WithError(err).Warn("could not cache last-modified marker")
	}
}
