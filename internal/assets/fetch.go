package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultFetchTimeout bounds a single model download.
	DefaultFetchTimeout = 30 * time.Second

	// DefaultMaxBytes caps the size of a downloaded model.
	DefaultMaxBytes = 64 << 20
)

// Fetcher retrieves raw model bytes by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// HTTPFetcher downloads models over HTTP with a per-request timeout and a
// response size cap.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a fetcher. Non-positive arguments fall back to the
// package defaults.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the model at uri.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("building model request: %w", err)
	}
	req.Header.Set("Accept", "model/gltf-binary, model/gltf+json, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching model %s: unexpected status %s", uri, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", uri, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("model %s exceeds the %d byte limit", uri, f.maxBytes)
	}
	return data, nil
}
