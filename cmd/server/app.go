package main

import (
	"relay-server/internal/config"
	"relay-server/internal/handler"
	"relay-server/internal/hub"
)

// App is the main application container.
type App struct {
	Config      *config.Config
	Hub         *hub.Hub
	WSHandler   *handler.WebsocketHandler
	AuthHandler *handler.AuthHandler
}
