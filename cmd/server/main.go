package main

import (
	"log"
	"net/http"

	"chronos-terminal/internal/config"
	"chronos-terminal/internal/db"
	"chronos-terminal/internal/server"
	"chronos-terminal/internal/world"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	var store world.Store
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
		store = db.NewStore(conn)
	} else {
		log.Println("DATABASE_URL not set, world state will not survive restarts")
		store = world.NewMemoryStore()
	}

	srv := server.New(store, cfg)
	log.Printf("chronos-terminal server listening on %s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
