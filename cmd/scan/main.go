package main

import (
	"flag"
	"log"

	"github.com/hoangitsk2/musicschool/internal/config"
	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/library"
)

func main() {
	dir := flag.String("dir", "", "Override the music directory to scan")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Library Scan...")

	// 1. Setup Configuration
	cfg := config.Load()
	if *dir != "" {
		cfg.Daemon.MusicDir = *dir
	}

	// 2. Initialize Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()

	// 3. Walk the music directory and register new files
	added, err := library.Scan(db.DB, cfg.Daemon.MusicDir)
	if err != nil {
		log.Fatalf("❌ Scan failed: %v", err)
	}

	log.Printf("✅ Scan complete. %d new track(s) registered.", added)
}
