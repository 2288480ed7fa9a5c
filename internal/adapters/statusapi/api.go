// Package statusapi exposes the build status snapshot over HTTP and WebSocket.
package statusapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.trai.ch/nativedev/internal/adapters/webserve"
	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPollInterval is how often WebSocket streams check for a new snapshot.
const DefaultPollInterval = 100 * time.Millisecond

// StatusSource provides the current build status.
type StatusSource interface {
	Status() domain.BuildStatus
}

// API serves the status endpoints.
type API struct {
	source       StatusSource
	logger       ports.Logger
	pollInterval time.Duration
	upgrader     websocket.Upgrader
}

// New creates an API over source.
func New(source StatusSource, logger ports.Logger) *API {
	return &API{
		source:       source,
		logger:       logger,
		pollInterval: DefaultPollInterval,
		upgrader: websocket.Upgrader{
			// The API only listens on a developer-chosen local address.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// WithPollInterval overrides the WebSocket poll interval.
func (a *API) WithPollInterval(d time.Duration) *API {
	a.pollInterval = d
	return a
}

// Handler returns the router serving /status, /status/ws and /health.
func (a *API) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/status", a.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/status/ws", a.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

// Serve listens on addr until ctx is cancelled.
func (a *API) Serve(ctx context.Context, addr string) error {
	return webserve.Run(ctx, addr, a.Handler())
}

func (a *API) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.source.Status()); err != nil {
		a.logger.Warn("status api: " + err.Error())
	}
}

// handleStream pushes the snapshot once on connect and again whenever it changes.
func (a *API) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		return
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Reading is required to process close frames; clients send nothing else.
	go func() {
		defer cancel()
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				if websocket.IsUnexpectedCloseError(readErr, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					a.logger.Warn("status stream: " + readErr.Error())
				}
				return
			}
		}
	}()

	last := a.source.Status()
	if err := conn.WriteJSON(last); err != nil {
		return
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(time.Second))
			return
		case <-ticker.C:
			current := a.source.Status()
			if current.Equal(last) {
				continue
			}
			if err := conn.WriteJSON(current); err != nil {
				a.logger.Error(zerr.With(zerr.Wrap(err, "status stream write failed"), "remote", r.RemoteAddr))
				return
			}
			last = current
		}
	}
}
