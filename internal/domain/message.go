package domain

import "time"

// WebSocketMessage is the standard envelope between client and server.
type WebSocketMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Envelope types carried in WebSocketMessage.Type.
const (
	// inbound
	EventRegister    = "register"     // payload: user identity string
	EventSendMessage = "send-message" // payload: ChatMessage

	// outbound
	EventReceiveMessage = "receive-message" // payload: ChatMessage, verbatim
	EventUserList       = "user-list"       // payload: UserListPayload
	EventError          = "error"           // payload: SystemPayload
)

// SystemPayload is the payload of an 'error' envelope.
type SystemPayload struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserListPayload carries the identities currently online.
type UserListPayload struct {
	Users []string `json:"users"`
}
