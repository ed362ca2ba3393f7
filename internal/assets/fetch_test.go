package assets

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPFetcherDownloads(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		w.Write([]byte("model-bytes"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0, 0)
	data, err := f.Fetch(context.Background(), srv.URL+"/models/chair.glb")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !bytes.Equal(data, []byte("model-bytes")) {
		t.Errorf("Fetch returned %q, want %q", data, "model-bytes")
	}
	if !strings.Contains(accept, "model/gltf-binary") {
		t.Errorf("Accept header = %q, want it to offer model/gltf-binary", accept)
	}
}

func TestHTTPFetcherRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0, 0)
	if _, err := f.Fetch(context.Background(), srv.URL+"/models/gone.glb"); err == nil {
		t.Error("Fetch on 404 = nil error, want error")
	}
}

func TestHTTPFetcherEnforcesSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(bytes.Repeat([]byte("x"), 32))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(0, 8)
	_, err := f.Fetch(context.Background(), srv.URL+"/models/huge.glb")
	if err == nil {
		t.Fatal("Fetch over the size limit = nil error, want error")
	}
	if !strings.Contains(err.Error(), "byte limit") {
		t.Errorf("error = %v, want mention of the byte limit", err)
	}
}
