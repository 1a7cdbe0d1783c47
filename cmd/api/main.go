package main

import (
	"log"

	"github.com/hoangitsk2/musicschool/internal/api"
	"github.com/hoangitsk2/musicschool/internal/config"
	database "github.com/hoangitsk2/musicschool/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Bell API Server...")

	// 1. Setup Configuration
	cfg := config.Load()

	// 2. Initialize Infrastructure
	db := database.New(cfg)

	// 3. Run Database Migrations
	db.AutoMigrate()

	// 4. Start Server
	srv := api.New(cfg, db)

	log.Printf("🚀 API Server starting on %s", cfg.API.Port)

	if err := srv.Start(cfg.API.Port); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
