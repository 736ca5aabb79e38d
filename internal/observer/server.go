// Package observer serves read-only engine status over HTTP/websocket for
// development tooling. It lives entirely in the host layer; the world
// itself has no network surface.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Status is one status frame pushed to subscribers.
type Status struct {
	Tick       uint64 `json:"tick"`
	Seed       uint64 `json:"seed"`
	Chunks     int    `json:"chunks"`
	Visible    int    `json:"visible"`
	Pending    int    `json:"pending"`
	Generated  uint64 `json:"generated"`
	ViewRadius int    `json:"view_radius"`
}

// StatusFunc samples the current engine status. It is called from the
// observer's goroutines, so implementations must only read values the host
// publishes safely (the craftd host snapshots per tick).
type StatusFunc func() Status

// Server pushes a status frame to every websocket subscriber once per
// interval and answers one-shot GETs on /status.
type Server struct {
	status   StatusFunc
	interval time.Duration
	log      *slog.Logger

	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer creates an observer bound to addr.
func NewServer(addr string, status StatusFunc, interval time.Duration, log *slog.Logger) *Server {
	s := &Server{
		status:   status,
		interval: interval,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			// Dev tool, loopback use only.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/ws", s.handleWS)
	s.httpSrv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
	}()

	s.log.Info("observer listening", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) handleStatus(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(s.status())
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(s.status()); err != nil {
			s.log.Debug("observer subscriber dropped", "error", err)
			return
		}
	}
}
