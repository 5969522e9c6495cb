package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"relay-server/internal/domain"
	"relay-server/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientRequest bundles a client with one decoded envelope.
type ClientRequest struct {
	Client  *Client
	Message domain.WebSocketMessage
}

// Hub owns the presence registry and routes every inbound event. All state
// changes run on the Run goroutine; clients and the transport layer talk to
// it over channels, so a send's persist-then-forward steps never interleave
// with another send.
type Hub struct {
	connections    map[*Client]bool
	presence       *Presence
	events         chan *ClientRequest
	register       chan *Client
	unregister     chan *Client
	messageRepo    service.IMessageRepository
	validate       *validator.Validate
	logger         *slog.Logger
	persistTimeout time.Duration
}

// NewHub creates a Hub around an injected presence registry and message log.
func NewHub(presence *Presence, messageRepo service.IMessageRepository, logger *slog.Logger, persistTimeout time.Duration) *Hub {
	return &Hub{
		connections:    make(map[*Client]bool),
		presence:       presence,
		events:         make(chan *ClientRequest),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		messageRepo:    messageRepo,
		validate:       validator.New(),
		logger:         logger,
		persistTimeout: persistTimeout,
	}
}

// Run is the hub's main loop. It must run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.connections[client] = true
		case client := <-h.unregister:
			h.dropClient(client)
		case request := <-h.events:
			h.handleMessage(request)
		}
	}
}

// ServeWs wires a freshly upgraded connection into the hub.
func (h *Hub) ServeWs(conn *websocket.Conn) {
	client := &Client{ID: uuid.NewString(), Hub: h, Conn: conn, Send: make(chan []byte, 256)}
	h.register <- client
	go client.writePump()
	go client.readPump()
}

func (h *Hub) handleMessage(req *ClientRequest) {
	switch req.Message.Type {
	case domain.EventRegister:
		h.handleRegister(req)
	case domain.EventSendMessage:
		h.handleSend(req)
	default:
		req.Client.sendError(fmt.Sprintf("unknown event type: %s", req.Message.Type))
	}
}

// handleRegister binds the connection to the identity in the payload. A
// repeat registration, from this or any other connection, overwrites the
// previous binding.
func (h *Hub) handleRegister(req *ClientRequest) {
	var userID string
	if err := parsePayload(req.Message.Payload, &userID); err != nil || userID == "" {
		req.Client.sendError("register payload must be a user id string")
		return
	}

	// A connection re-registering under a new identity gives up its old
	// one. Without this, the stale binding would outlive dropClient's
	// single-entry removal and later resolve to a closed channel.
	h.presence.RemoveByHandle(req.Client)
	h.presence.Register(userID, req.Client)
	req.Client.UserID = userID
	h.logger.Info("user registered", "user_id", userID, "conn_id", req.Client.ID)
	h.broadcastUserList()
}

// handleSend persists the message and, when the recipient is online, forwards
// the payload exactly as received, extra client fields included. Persistence
// gates delivery: a failed or timed-out write means no forward.
func (h *Hub) handleSend(req *ClientRequest) {
	var message domain.ChatMessage
	if err := parsePayload(req.Message.Payload, &message); err != nil {
		req.Client.sendError("invalid send-message payload")
		return
	}
	if err := h.validate.Struct(&message); err != nil {
		req.Client.sendError("sender, recipient, message and timestamp are required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.persistTimeout)
	err := h.messageRepo.SaveMessage(ctx, &message)
	cancel()
	if err != nil {
		h.logger.Error("failed to persist message",
			"sender", message.Sender, "recipient", message.Recipient, "error", err)
		req.Client.sendError("message could not be stored")
		return
	}

	recipient, ok := h.presence.Lookup(message.Recipient)
	if !ok {
		// Offline recipient: the row is in the log, nothing else to do.
		return
	}

	msg, err := json.Marshal(domain.WebSocketMessage{Type: domain.EventReceiveMessage, Payload: req.Message.Payload})
	if err != nil {
		h.logger.Error("failed to encode forwarded message", "error", err)
		return
	}
	select {
	case recipient.Send <- msg:
	default:
		// Delivery is best effort; a backed-up recipient loses the
		// real-time copy but keeps the stored one.
		h.logger.Warn("recipient send buffer full, dropping forward",
			"recipient", message.Recipient, "conn_id", recipient.ID)
	}
}

// dropClient tears down a disconnected client: presence cleanup by reverse
// lookup, then channel close.
func (h *Hub) dropClient(client *Client) {
	if _, ok := h.connections[client]; !ok {
		return
	}
	delete(h.connections, client)
	close(client.Send)

	if userID, ok := h.presence.RemoveByHandle(client); ok {
		h.logger.Info("user disconnected", "user_id", userID, "conn_id", client.ID)
		h.broadcastUserList()
	}
}

// broadcastUserList pushes the current online identities to every
// connection, registered or not.
func (h *Hub) broadcastUserList() {
	payload := domain.UserListPayload{Users: h.presence.OnlineUsers()}
	msg, err := json.Marshal(domain.WebSocketMessage{Type: domain.EventUserList, Payload: payload})
	if err != nil {
		return
	}
	for client := range h.connections {
		select {
		case client.Send <- msg:
		default:
		}
	}
}

// --- Helper Functions ---

func parsePayload(payload interface{}, result interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return errors.New("failed to marshal payload")
	}
	return json.Unmarshal(payloadBytes, result)
}
