package main

import (
	"fmt"
	"log"
	"net/http"

	"relay-server/internal/handler"

	"github.com/gorilla/mux"
)

func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	defer cleanup()

	// Hub main loop runs for the lifetime of the process
	go app.Hub.Run()

	r := mux.NewRouter()
	r.HandleFunc("/ws", app.WSHandler.HandleConnection).Methods("GET")
	r.HandleFunc("/login", app.AuthHandler.HandleLogin).Methods("POST")
	r.HandleFunc("/register", app.AuthHandler.HandleRegister).Methods("POST")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")

	addr := fmt.Sprintf(":%d", app.Config.Port)
	log.Printf("Server starting on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
