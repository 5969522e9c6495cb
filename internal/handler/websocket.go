package handler

import (
	"log/slog"
	"net/http"

	"relay-server/internal/hub"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins (development setting)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler upgrades inbound connections and hands them to the hub.
type WebsocketHandler struct {
	hub    *hub.Hub
	logger *slog.Logger
}

// NewWebsocketHandler creates a new WebsocketHandler.
func NewWebsocketHandler(h *hub.Hub, logger *slog.Logger) *WebsocketHandler {
	return &WebsocketHandler{hub: h, logger: logger}
}

// HandleConnection serves GET /ws.
func (h *WebsocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	h.hub.ServeWs(conn)
}
