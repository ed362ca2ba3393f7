package assets

import (
	"context"

	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/model"
)

// Request identifies one asynchronous model load. The slot and generation are
// opaque to the manager and echoed back on the matching Result so the caller
// can recognize loads it no longer wants.
type Request struct {
	Slot       int
	Generation uint64
	Product    catalog.Product
}

// Result is the outcome of a Request, delivered on the manager's Results
// channel. Exactly one of Model and Err is set.
type Result struct {
	Slot       int
	Generation uint64
	Product    catalog.Product
	Model      *model.Model
	Err        error
}

// Manager resolves products to decoded models. Loads run on their own
// goroutines; completions always arrive through Results, including cache
// hits, so callers observe one delivery path.
type Manager struct {
	fetcher Fetcher
	cache   *Cache
	results chan Result
}

// NewManager creates a manager that downloads models with fetcher.
func NewManager(fetcher Fetcher) *Manager {
	return &Manager{
		fetcher: fetcher,
		cache:   NewCache(),
		results: make(chan Result, 16),
	}
}

// Results delivers load outcomes. The channel is never closed.
func (m *Manager) Results() <-chan Result {
	return m.results
}

// CacheStats returns the decoded model cache statistics.
func (m *Manager) CacheStats() (hits, misses int) {
	return m.cache.Stats()
}

// Load resolves the requested product's model asynchronously. The outcome is
// tagged with the request's slot and generation; deciding whether it is still
// wanted is the caller's job. Delivery is abandoned when ctx ends.
func (m *Manager) Load(ctx context.Context, req Request) {
	go func() {
		res := Result{Slot: req.Slot, Generation: req.Generation, Product: req.Product}
		res.Model, res.Err = m.resolve(ctx, req.Product.ModelURI)
		select {
		case m.results <- res:
		case <-ctx.Done():
		}
	}()
}

func (m *Manager) resolve(ctx context.Context, uri string) (*model.Model, error) {
	if cached, ok := m.cache.Get(uri); ok {
		return cached, nil
	}
	data, err := m.fetcher.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	decoded, err := model.Decode(data)
	if err != nil {
		return nil, err
	}
	m.cache.Set(uri, decoded)
	return decoded, nil
}
