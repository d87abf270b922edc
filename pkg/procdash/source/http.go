package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// HTTPSource fetches the dataset from an object URL, for example a public
// or presigned bucket link. Responses are revalidated with ETags.
type HTTPSource struct {
	url    string
	client *http.Client

	mu   sync.Mutex
	last Blob
	etag string
}

// NewHTTPSource returns a source for url. A nil client uses a client with
// the given timeout.
func NewHTTPSource(url string, client *http.Client, timeout time.Duration) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{url: url, client: client}
}

// Name returns the URL.
func (s *HTTPSource) Name() string { return s.url }

// Latest performs a conditional GET. A 304 returns the cached blob.
func (s *HTTPSource) Latest(ctx context.Context) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Blob{}, err
	}
	s.mu.Lock()
	etag := s.etag
	s.mu.Unlock()
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Blob{}, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.last.Data == nil {
			return Blob{}, fmt.Errorf("fetch %s: 304 without a cached copy", s.url)
		}
		return s.last, nil
	case resp.StatusCode == http.StatusNotFound:
		return Blob{}, fmt.Errorf("%w: %s", ErrNotFound, s.url)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Blob{}, fmt.Errorf("fetch %s: unexpected status %s", s.url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Blob{}, fmt.Errorf("read %s: %w", s.url, err)
	}
	blob := Blob{
		Data:    data,
		Version: ContentVersion(data),
		Origin:  s.url,
	}
	respETag := resp.Header.Get("ETag")
	if respETag != "" {
		blob.Version = respETag
	}
	if lm, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		blob.ModTime = lm
	}

	s.mu.Lock()
	s.last = blob
	s.etag = respETag
	s.mu.Unlock()
	return blob, nil
}
