// Package webserve serves a built web bundle over HTTP on localhost.
package webserve

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the static files of one directory.
type Server struct {
	dir  string
	port int
}

// NewServer creates a Server for dir on port.
func NewServer(dir string, port int) *Server {
	return &Server{dir: dir, port: port}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort("localhost", strconv.Itoa(s.port))
}

// URL returns the address to open in a browser.
func URL(port int) string {
	return "http://" + net.JoinHostPort("localhost", strconv.Itoa(port))
}

// Handler returns the router serving the directory.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.dir)))
	return r
}

// Serve blocks until ctx is cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	return Run(ctx, s.Addr(), s.Handler())
}

// Run serves handler on addr until ctx is cancelled, then shuts down gracefully.
// Request contexts derive from ctx so long-lived handlers end with it.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", addr)
	}
	return RunListener(ctx, ln, handler)
}

// RunListener is Run on an existing listener, which it takes ownership of.
func RunListener(ctx context.Context, ln net.Listener, handler http.Handler) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", ln.Addr().String())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, domain.ErrServerFailed.Error())
	}
	return nil
}
