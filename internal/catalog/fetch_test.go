package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetchProducts(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"a1","name":"Armchair","modelPath":"/models/armchair.glb"},
			{"_id":"b2","name":"Bookshelf","modelPath":"https://cdn.example.com/bookshelf.glb"}
		]`))
	}))
	defer srv.Close()

	products, err := FetchProducts(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "a1" || products[0].Name != "Armchair" {
		t.Errorf("product 0 = %+v", products[0])
	}
	// Relative paths resolve against the backend base URL
	if want := srv.URL + "/models/armchair.glb"; products[0].ModelURI != want {
		t.Errorf("model URI = %s, want %s", products[0].ModelURI, want)
	}
	// Absolute URLs pass through
	if want := "https://cdn.example.com/bookshelf.glb"; products[1].ModelURI != want {
		t.Errorf("model URI = %s, want %s", products[1].ModelURI, want)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("expected exactly 1 request, got %d", got)
	}
}

func TestFetchProductsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := FetchProducts(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoProducts) {
		t.Errorf("empty list error = %v, want ErrNoProducts", err)
	}
}

func TestFetchProductsServerError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchProducts(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("server error = %v, want ErrFetchFailed", err)
	}
	// No retry: a failed fetch makes exactly one attempt
	if got := requests.Load(); got != 1 {
		t.Errorf("expected exactly 1 request, got %d", got)
	}
}

func TestFetchProductsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	_, err := FetchProducts(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("bad JSON error = %v, want ErrFetchFailed", err)
	}
}

func TestFetchProductsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Reject connections

	_, err := FetchProducts(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("unreachable backend error = %v, want ErrFetchFailed", err)
	}
}

func TestResolveModelURI(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"rooted path", "http://cat:8081", "/models/x.glb", "http://cat:8081/models/x.glb"},
		{"relative path", "http://cat:8081", "models/x.glb", "http://cat:8081/models/x.glb"},
		{"absolute url", "http://cat:8081", "https://cdn.example.com/x.glb", "https://cdn.example.com/x.glb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveModelURI(tt.base, tt.path); got != tt.want {
				t.Errorf("resolveModelURI(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}
