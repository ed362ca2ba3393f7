// Package catalog holds the fetched product list and the current selection.
package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two catalog-level failure states. Both are
// terminal: the catalog is fetched once at startup and never retried.
var (
	// ErrNoProducts marks a fetch that succeeded but returned an empty list.
	ErrNoProducts = errors.New("no products found")

	// ErrFetchFailed marks a fetch that could not produce a product list.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrUnknownProduct marks a selection of an id not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)

// Product is one catalog entry. Immutable once fetched.
type Product struct {
	ID       string
	Name     string
	ModelURI string
}

// Catalog holds the product list in server order plus the current selection.
// A catalog in an error state holds no items; the two are mutually exclusive.
type Catalog struct {
	items    []Product
	selected int // index into items, -1 when nothing is selected
	err      error
}

// New builds a catalog from a fetch outcome. A nil error with no items
// degrades to the ErrNoProducts state.
func New(items []Product, err error) *Catalog {
	if err != nil {
		return &Catalog{selected: -1, err: err}
	}
	if len(items) == 0 {
		return &Catalog{selected: -1, err: ErrNoProducts}
	}
	return &Catalog{items: items, selected: -1}
}

// Err returns the catalog error state, nil for a healthy catalog.
func (c *Catalog) Err() error {
	return c.err
}

// Items returns the products in server order. The returned slice is shared
// and must not be modified.
func (c *Catalog) Items() []Product {
	return c.items
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Select makes the product with the given id the current selection and
// returns it. An unknown id leaves the selection unchanged.
func (c *Catalog) Select(id string) (Product, error) {
	if c.err != nil {
		return Product{}, c.err
	}
	for i, p := range c.items {
		if p.ID == id {
			c.selected = i
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
}

// Selected returns the currently selected product, if any.
func (c *Catalog) Selected() (Product, bool) {
	if c.selected < 0 {
		return Product{}, false
	}
	return c.items[c.selected], true
}

// ErrorText maps a catalog error to its user-facing message, "" for nil.
func ErrorText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoProducts):
		return "no products found"
	default:
		return "fetch failed"
	}
}
