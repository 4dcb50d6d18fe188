package server

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPServer wraps http.Server with address and lifecycle methods.
type HTTPServer struct {
	server   *http.Server
	addr     string
	certFile string
	keyFile  string
}

// Option configures an HTTPServer.
type Option func(*HTTPServer)

// WithTLS makes the server terminate TLS with the given certificate pair.
func WithTLS(certFile, keyFile string) Option {
	return func(s *HTTPServer) {
		s.certFile = certFile
		s.keyFile = keyFile
	}
}

// NewHTTPServer creates an HTTPServer serving handler on addr.
func NewHTTPServer(handler http.Handler, addr string, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		addr: addr,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start serves until Stop is called. A clean shutdown is not an error.
func (s *HTTPServer) Start() error {
	var err error
	if s.certFile != "" {
		err = s.server.ListenAndServeTLS(s.certFile, s.keyFile)
	} else {
		err = s.server.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

// Stop gracefully shuts the server down, bounded by ctx.
func (s *HTTPServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *HTTPServer) Address() string {
	return s.addr
}
