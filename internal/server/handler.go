package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/inputview/internal/gamepad"
	"github.com/soar/inputview/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(h *hub.Hub, b *hub.Broadcaster, c Controller, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// Send current state to the new client
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPumpWithHandler(c)
	}
}

type profileRequest struct {
	Profile string `json:"profile"`
}

type profilesResponse struct {
	Profiles []string `json:"profiles"`
	Active   string   `json:"active,omitempty"`
	Override string   `json:"override,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleStatus(c Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.Diagnostics())
	}
}

func handleState(c Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, c.State())
	}
}

func handleProfiles(c Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := c.Diagnostics()
		writeJSON(w, http.StatusOK, profilesResponse{
			Profiles: c.Profiles(),
			Active:   d.Profile,
			Override: d.Override,
		})
	}
}

// handleSelectProfile forces a profile; an empty name restores detection.
func handleSelectProfile(c Controller, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}

		if err := c.SetProfileOverride(req.Profile); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, gamepad.ErrUnknownProfile) {
				status = http.StatusNotFound
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		logger.Info("Profile override via API", zap.String("profile", req.Profile))
		writeJSON(w, http.StatusOK, c.Diagnostics())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
