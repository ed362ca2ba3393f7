package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultFetchTimeout bounds the single products request.
	DefaultFetchTimeout = 10 * time.Second

	// maxResponseBytes limits the product list body to 8 MB.
	maxResponseBytes = 8 << 20
)

// FetchOption configures FetchProducts behavior.
type FetchOption func(*fetchConfig)

type fetchConfig struct {
	timeout time.Duration
	client  *http.Client
}

func defaultFetchConfig() fetchConfig {
	return fetchConfig{timeout: DefaultFetchTimeout}
}

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetchOption {
	return func(c *fetchConfig) {
		c.timeout = d
	}
}

// WithHTTPClient overrides the default HTTP client (useful for testing).
func WithHTTPClient(client *http.Client) FetchOption {
	return func(c *fetchConfig) {
		c.client = client
	}
}

// productDoc is the backend's wire form for one product.
type productDoc struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	ModelPath string `json:"modelPath"`
}

// FetchProducts performs the one startup GET {base}/api/products request and
// returns the products in server order. An empty list yields ErrNoProducts;
// any transport, status or parse failure yields an error wrapping
// ErrFetchFailed. Exactly one attempt is made.
func FetchProducts(ctx context.Context, baseURL string, opts ...FetchOption) ([]Product, error) {
	cfg := defaultFetchConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	client := cfg.client
	if client == nil {
		client = &http.Client{Timeout: cfg.timeout}
	}

	endpoint := strings.TrimSuffix(baseURL, "/") + "/api/products"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrFetchFailed, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrFetchFailed, err)
	}

	var docs []productDoc
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrFetchFailed, err)
	}

	if len(docs) == 0 {
		return nil, ErrNoProducts
	}

	products := make([]Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, Product{
			ID:       d.ID,
			Name:     d.Name,
			ModelURI: resolveModelURI(baseURL, d.ModelPath),
		})
	}
	return products, nil
}

// resolveModelURI makes relative model paths absolute against the backend
// base URL. Absolute URLs pass through untouched.
func resolveModelURI(baseURL, modelPath string) string {
	ref, err := url.Parse(modelPath)
	if err != nil {
		return modelPath
	}
	if ref.IsAbs() {
		return modelPath
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return modelPath
	}
	return base.ResolveReference(ref).String()
}
