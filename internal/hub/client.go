package hub

import (
	"encoding/json"
	"time"

	"relay-server/internal/domain"

	"github.com/gorilla/websocket"
)

// Client mediates between one WebSocket connection and the Hub.
type Client struct {
	ID     string // connection id, assigned at accept time
	UserID string // identity bound by a register event, empty until then
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
}

// readPump reads envelopes off the socket and feeds them to the hub loop.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		var req domain.WebSocketMessage
		if err := c.Conn.ReadJSON(&req); err != nil {
			c.Hub.logger.Debug("read loop ended", "conn_id", c.ID, "error", err)
			break
		}
		c.Hub.events <- &ClientRequest{Client: c, Message: req}
	}
}

// writePump drains the Send channel into the socket.
func (c *Client) writePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Hub.logger.Debug("write loop ended", "conn_id", c.ID, "error", err)
			return
		}
	}
}

// sendError pushes an error envelope to this client without blocking the hub
// loop. If the send buffer is full the notification is dropped.
func (c *Client) sendError(content string) {
	payload := domain.SystemPayload{
		Content:   content,
		Timestamp: time.Now(),
	}
	msg, err := json.Marshal(domain.WebSocketMessage{Type: domain.EventError, Payload: payload})
	if err != nil {
		return
	}
	select {
	case c.Send <- msg:
	default:
		c.Hub.logger.Warn("could not deliver error event", "conn_id", c.ID)
	}
}
