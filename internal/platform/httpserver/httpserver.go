// Package httpserver builds the portal's http.Server with production
// timeouts, keeping cmd/server free of transport tuning.
package httpserver

import (
	"net/http"
	"time"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second
)

// New returns a server ready for ListenAndServe. WriteTimeout stays above
// the per-request timeout middleware so the middleware's JSON error wins.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}
