// Package site serves the embedded ratings viewer.
package site

import (
	"context"
	"net/http"
)

// Register attaches the viewer to mux at /. API routes registered with a
// more specific pattern take precedence.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /", http.FileServer(FS()))
}
