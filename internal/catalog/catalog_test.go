package catalog

import (
	"errors"
	"testing"
)

func testProducts() []Product {
	return []Product{
		{ID: "a1", Name: "Armchair", ModelURI: "http://cat/models/armchair.glb"},
		{ID: "b2", Name: "Bookshelf", ModelURI: "http://cat/models/bookshelf.glb"},
		{ID: "c3", Name: "Coffee Table", ModelURI: "http://cat/models/table.glb"},
	}
}

func TestNewHealthy(t *testing.T) {
	c := New(testProducts(), nil)

	if c.Err() != nil {
		t.Errorf("healthy catalog has error: %v", c.Err())
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 items, got %d", c.Len())
	}
	if _, ok := c.Selected(); ok {
		t.Error("fresh catalog should have no selection")
	}
}

func TestNewEmptyBecomesNoProducts(t *testing.T) {
	c := New(nil, nil)

	if !errors.Is(c.Err(), ErrNoProducts) {
		t.Errorf("empty catalog error = %v, want ErrNoProducts", c.Err())
	}
	if c.Len() != 0 {
		t.Errorf("error catalog should hold no items, got %d", c.Len())
	}
}

func TestNewWithFetchError(t *testing.T) {
	c := New(nil, ErrFetchFailed)

	if !errors.Is(c.Err(), ErrFetchFailed) {
		t.Errorf("catalog error = %v, want ErrFetchFailed", c.Err())
	}
	// Never both failed and populated
	if c.Len() != 0 {
		t.Errorf("error catalog should hold no items, got %d", c.Len())
	}
	if _, err := c.Select("a1"); err == nil {
		t.Error("selecting on a failed catalog should error")
	}
}

func TestSelect(t *testing.T) {
	c := New(testProducts(), nil)

	p, err := c.Select("b2")
	if err != nil {
		t.Fatalf("Select(b2) failed: %v", err)
	}
	if p.Name != "Bookshelf" {
		t.Errorf("selected product = %q, want Bookshelf", p.Name)
	}

	sel, ok := c.Selected()
	if !ok || sel.ID != "b2" {
		t.Errorf("Selected() = %v, %v; want b2, true", sel.ID, ok)
	}
}

func TestSelectUnknownKeepsSelection(t *testing.T) {
	c := New(testProducts(), nil)

	if _, err := c.Select("a1"); err != nil {
		t.Fatalf("Select(a1) failed: %v", err)
	}

	_, err := c.Select("nope")
	if !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Select(nope) error = %v, want ErrUnknownProduct", err)
	}

	sel, ok := c.Selected()
	if !ok || sel.ID != "a1" {
		t.Errorf("selection changed by failed select: got %v, %v", sel.ID, ok)
	}
}

func TestItemsOrderPreserved(t *testing.T) {
	items := testProducts()
	c := New(items, nil)

	got := c.Items()
	for i := range items {
		if got[i].ID != items[i].ID {
			t.Errorf("item %d = %s, want %s (server order must be preserved)", i, got[i].ID, items[i].ID)
		}
	}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"no products", ErrNoProducts, "no products found"},
		{"fetch failed", ErrFetchFailed, "fetch failed"},
		{"wrapped fetch failure", errors.Join(ErrFetchFailed, errors.New("status 500")), "fetch failed"},
		{"unknown error", errors.New("boom"), "fetch failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorText(tt.err); got != tt.want {
				t.Errorf("ErrorText() = %q, want %q", got, tt.want)
			}
		})
	}
}
