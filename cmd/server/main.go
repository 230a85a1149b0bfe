package main

import (
	"log"

	"github.com/joho/godotenv"

	httpapi "github.com/Nyaru01/Skyjo-V2-sub000/internal/api/http"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/api/ws"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/config"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/room"
	"github.com/Nyaru01/Skyjo-V2-sub000/internal/store"
)

// @title Skyjo API
// @version 2.0
// @description Room-based multiplayer Skyjo server (Go + Gin)
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment as-is")
	}
	cfg := config.Load()

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg)
	hub := ws.NewHub(rm)
	rm.SetBroadcaster(hub)

	r := httpapi.NewRouter(rm, hub, cfg)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
