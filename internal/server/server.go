// Package server lets a WebSocket client play the hero seat against the
// configured bots. Each connection gets its own table.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/sixmax/internal/config"
	"github.com/lox/sixmax/internal/table"
)

const shutdownTimeout = 5 * time.Second

// Server represents the WebSocket server
type Server struct {
	cfg      *config.Config
	tableCfg config.TableConfig
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates a server dealing tableName from cfg, or the first table when
// tableName is empty.
func New(cfg *config.Config, tableName string, logger *log.Logger, clock quartz.Clock) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tc, ok := cfg.Table(tableName)
	if !ok {
		return nil, fmt.Errorf("no table named %q", tableName)
	}
	return &Server{
		cfg:      cfg,
		tableCfg: tc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local play only; any origin may connect.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:   logger.WithPrefix("server"),
		clock:    clock,
		sessions: make(map[string]*Session),
	}, nil
}

// Handler returns the HTTP routes: /ws for play and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then closes every session.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Starting WebSocket server", "addr", srv.Addr, "table", s.tableCfg.Name)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Close ends every open session.
func (s *Server) Close() {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	for _, sess := range sessions {
		_ = sess.Close()
	}
}

// SessionCount returns the number of connected clients.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) newTable(id string) (*table.Table, error) {
	opts := []table.Option{table.WithClock(s.clock)}
	if dir := s.cfg.Server.HandHistoryDir; dir != "" {
		opts = append(opts, table.WithHistoryDir(dir))
	}
	return table.New(s.tableCfg.Name, s.tableCfg.Game(), s.cfg.Strategies(),
		s.logger.With("session", id), opts...)
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.NewV7()
	if err != nil {
		http.Error(w, "failed to allocate session", http.StatusInternalServerError)
		return
	}
	tbl, err := s.newTable(id.String())
	if err != nil {
		s.logger.Error("Failed to create table", "error", err)
		http.Error(w, "failed to create table", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	sess := newSession(id.String(), conn, tbl, s.clock, s.cfg.BotDelay(), s.logger)
	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	total := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", sess.ID(), "total", total)

	sess.sendData("", MessageTypeWelcome, WelcomeData{
		SessionID:  sess.ID(),
		Table:      tbl.Name(),
		HeroSeat:   table.HeroSeat,
		Strategies: s.cfg.Strategies(),
	})
	sess.Start()

	go func() {
		<-sess.Done()
		s.mu.Lock()
		delete(s.sessions, sess.ID())
		total := len(s.sessions)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", sess.ID(), "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.SessionCount(),
	})
}
