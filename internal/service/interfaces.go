//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks
package service

import (
	"context"
	"relay-server/internal/domain"
)

// --- Service Interfaces ---

// IUserService defines the credential gateway.
type IUserService interface {
	Register(userID, password string) (*domain.User, error)
	Login(userID, password string) (*domain.User, error)
}

// --- Repository Interfaces ---

// IUserRepository defines the interface for account persistence.
type IUserRepository interface {
	CreateUser(user *domain.User) error
	GetUserByCredentials(id, password string) (*domain.User, error)
}

// IMessageRepository defines the interface for the append-only message log.
type IMessageRepository interface {
	SaveMessage(ctx context.Context, message *domain.ChatMessage) error
}
