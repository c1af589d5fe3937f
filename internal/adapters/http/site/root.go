// Package site serves the embedded tray viewer page.
package site

import (
	"net/http"
)

// Register attaches the tray viewer to mux at "/" and its assets under
// "/static/".
func Register(mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	files := http.FileServer(FS())
	mux.Handle("GET /{$}", files)
	mux.Handle("GET /static/", http.StripPrefix("/static/", files))
}
