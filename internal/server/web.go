package server

import (
	_ "embed"
	"fmt"
	"net/http"
)

//go:embed web/index.html
var indexHTML []byte

// Routes assembles the viewer's HTTP surface.
func Routes(hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.HandleFunc("/healthz", serveHealthz)
	return mux
}

// serveIndex serves the embedded web client.
func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func serveHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}
