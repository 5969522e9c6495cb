//go:build wireinject
// +build wireinject

package main

import (
	"relay-server/internal/config"
	"relay-server/internal/handler"
	"relay-server/internal/hub"
	"relay-server/internal/repository/postgres"
	"relay-server/internal/service"

	"github.com/google/wire"
)

// InitializeApp creates a new application.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		// Infrastructure Providers
		wire.NewSet(
			provideLogger,
			providePostgresDB,
			providePersistTimeout,
		),
		// Repository Providers
		wire.NewSet(
			postgres.NewUserRepository,
			wire.Bind(new(service.IUserRepository), new(*postgres.UserRepository)),

			postgres.NewMessageRepository,
			wire.Bind(new(service.IMessageRepository), new(*postgres.MessageRepository)),
		),
		// Service Providers
		wire.NewSet(
			service.NewUserService,
			wire.Bind(new(service.IUserService), new(*service.UserService)),
		),
		// Presence & Hub Providers
		hub.NewPresence,
		hub.NewHub,
		// Handler Providers
		wire.NewSet(
			handler.NewWebsocketHandler,
			handler.NewAuthHandler,
		),
		// App Provider
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
