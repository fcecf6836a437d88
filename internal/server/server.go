package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
	"github.com/soar/inputview/internal/hub"
)

// Controller is the view of the gamepad manager the server needs.
type Controller interface {
	hub.ProfileSelector
	State() gamepad.GamepadState
	Diagnostics() gamepad.Diagnostics
	Profiles() []string
}

type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	controller  Controller
	frontendFS  fs.FS
	addr        string
	logger      *zap.Logger
	httpServer  *http.Server
}

// New builds the routes and the HTTP server. The frontend is read and
// minified here, so a broken frontend fails startup.
func New(h *hub.Hub, b *hub.Broadcaster, c Controller, frontendFS fs.FS, addr string, logger *zap.Logger) (*Server, error) {
	s := &Server{
		hub:         h,
		broadcaster: b,
		controller:  c,
		frontendFS:  frontendFS,
		addr:        addr,
		logger:      logger.Named("server"),
	}
	handler, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes() (http.Handler, error) {
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.controller, s.logger))

	mux.HandleFunc("GET /api/status", handleStatus(s.controller))
	mux.HandleFunc("GET /api/state", handleState(s.controller))
	mux.HandleFunc("GET /api/profiles", handleProfiles(s.controller))
	mux.HandleFunc("POST /api/profile", handleSelectProfile(s.controller, s.logger))

	// Static files (frontend), minified once at startup
	static, err := newStaticHandler(s.frontendFS)
	if err != nil {
		return nil, fmt.Errorf("frontend: %w", err)
	}
	mux.Handle("/", static)

	return mux, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}
