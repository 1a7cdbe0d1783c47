package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/hoangitsk2/musicschool/internal/config"
	"github.com/hoangitsk2/musicschool/internal/daemon"
	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/player"
	"github.com/hoangitsk2/musicschool/internal/relay"
	"github.com/hoangitsk2/musicschool/internal/schedule"
)

func main() {
	// 1. Parse Flags
	// Flags override config.yaml / environment values
	backend := flag.String("backend", "", "Override audio backend (auto, cvlc, dummy)")
	noRelay := flag.Bool("no-relay", false, "Disable the amplifier relay (mock mode)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 2. Load Config
	cfg := config.Load()

	// 3. Apply Flag Overrides
	if *backend != "" {
		cfg.Daemon.Backend = *backend
	}
	if *noRelay {
		cfg.Relay.Enabled = false
	}

	log.Println("🔔 Starting Bell Daemon...")

	// 4. Init Infrastructure
	db := database.New(cfg)
	db.AutoMigrate()

	if cfg.Daemon.BootstrapSchedules != "" {
		if err := database.ApplyBootstrapSchedules(db.DB, cfg.Daemon.BootstrapSchedules, cfg.Daemon.SessionDefaultMinutes); err != nil {
			log.Printf("⚠️ Bootstrap schedules: %v", err)
		}
	}

	p, err := player.New(cfg.Daemon.Backend)
	if err != nil {
		log.Fatalf("❌ Audio backend: %v", err)
	}

	r := relay.New(relay.Config{
		Enabled:    cfg.Relay.Enabled,
		Pin:        cfg.Relay.Pin,
		ActiveHigh: cfg.Relay.ActiveHigh,
	})

	// 5. Run until interrupted
	daemon.RegisterMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d := daemon.New(cfg, db, p, r, schedule.RealClock{})
	d.Run(ctx)

	log.Println("👋 Bell Daemon stopped")
}
