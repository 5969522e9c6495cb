package domain

import "time"

// ChatMessage represents a single relayed message. The same shape travels on
// the wire as the send-message / receive-message payload and is appended to
// the messages table, so a forwarded message is byte-for-byte what the
// sender submitted.
type ChatMessage struct {
	ID        int64     `json:"-"`
	Sender    string    `json:"sender" validate:"required"`
	Recipient string    `json:"recipient" validate:"required"`
	Body      string    `json:"message" validate:"required"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}
