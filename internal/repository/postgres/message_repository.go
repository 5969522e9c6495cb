package postgres

import (
	"context"
	"database/sql"
	"relay-server/internal/domain"
)

// MessageRepository appends relayed messages to the messages table.
type MessageRepository struct {
	DB *sql.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

// SaveMessage appends one message row. The log is write-only for the relay;
// delivery never reads it back.
func (r *MessageRepository) SaveMessage(ctx context.Context, message *domain.ChatMessage) error {
	query := `INSERT INTO messages (sender, recipient, message, timestamp) VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, message.Sender, message.Recipient, message.Body, message.Timestamp)
	return err
}
