// Package daemon contains the playback control loop: on a fixed tick it fires
// due schedules, drains queued commands, polls the player backend, enforces
// the session timeout and maintains a liveness heartbeat. All durable writes
// of one tick happen inside a single transaction.
package daemon

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/config"
	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/models"
	"github.com/hoangitsk2/musicschool/internal/player"
	"github.com/hoangitsk2/musicschool/internal/relay"
	"github.com/hoangitsk2/musicschool/internal/schedule"
)

// A schedule fires at most once within this window even if several ticks land
// on the same wall-clock minute.
const debounceWindow = 50 * time.Second

// minTickSleep keeps the loop from spinning when a tick overruns its period.
const minTickSleep = 100 * time.Millisecond

// Daemon owns everything the control loop touches. It is the sole writer of
// the playback-derived state fields; external collaborators only enqueue
// commands and edit schedule/playlist rows.
type Daemon struct {
	cfg    *config.Config
	db     *database.Client
	player player.Player
	relay  *relay.Controller
	clock  schedule.Clock

	// Maps the backend cursor back to track ids without re-querying
	// storage every tick.
	trackIDs []uint
}

func New(cfg *config.Config, db *database.Client, p player.Player, r *relay.Controller, clock schedule.Clock) *Daemon {
	return &Daemon{
		cfg:    cfg,
		db:     db,
		player: p,
		relay:  r,
		clock:  clock,
	}
}

// Run executes the tick loop until ctx is cancelled, then stops the backend
// and releases the relay. The sleep is self-correcting: time spent inside a
// tick is subtracted from the period so drift does not accumulate.
func (d *Daemon) Run(ctx context.Context) {
	go d.startMetricsServer()

	period := time.Duration(d.cfg.Daemon.TickMillis) * time.Millisecond
	if period <= 0 {
		period = 500 * time.Millisecond
	}
	log.Printf("🔔 Playback daemon ticking every %s", period)

	defer func() {
		d.player.Stop()
		d.relay.Cleanup()
		log.Println("👋 Playback daemon stopped")
	}()

	for {
		started := time.Now()
		if err := d.Tick(); err != nil {
			// Fatal to this tick only; state is retried next tick.
			log.Printf("❌ Tick failed: %v", err)
		}
		sleep := period - time.Since(started)
		if sleep < minTickSleep {
			sleep = minTickSleep
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// Tick runs one pass of the control loop inside a single transaction, so a
// crash mid-tick can never leave a command marked processed without its
// effect applied.
func (d *Daemon) Tick() error {
	now := d.clock.Now()
	err := d.db.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := database.EnsureState(tx); err != nil {
			return err
		}
		if err := d.fireSchedules(tx, now); err != nil {
			return err
		}
		if err := d.drainCommands(tx, now); err != nil {
			return err
		}
		if err := d.pollPlayer(tx, now); err != nil {
			return err
		}
		if err := d.enforceTimeout(tx, now); err != nil {
			return err
		}
		return d.heartbeat(tx, now)
	})
	if err == nil {
		ticksTotal.Inc()
	}
	return err
}

func (d *Daemon) pollPlayer(tx *gorm.DB, now time.Time) error {
	idx := d.player.Update()

	state, err := database.EnsureState(tx)
	if err != nil {
		return err
	}

	// Exhaustion: the backend went quiet while we still think a session is
	// running. This is the timeout-independent end of a session.
	if !d.player.IsPlaying() && state.Status == models.StatusPlaying && idx == -1 {
		return d.stopSession(tx, "playlist finished", now)
	}

	updates := map[string]any{"updated_at": now}
	if idx >= 0 && idx < len(d.trackIDs) {
		updates["current_track_id"] = d.trackIDs[idx]
	} else if idx < 0 {
		updates["current_track_id"] = nil
	}
	return tx.Model(&models.State{ID: models.StateID}).Updates(updates).Error
}

func (d *Daemon) enforceTimeout(tx *gorm.DB, now time.Time) error {
	state, err := database.EnsureState(tx)
	if err != nil {
		return err
	}
	if state.Status != models.StatusPlaying || state.SessionEndAt == nil {
		return nil
	}
	if now.Before(*state.SessionEndAt) {
		return nil
	}
	return d.stopSession(tx, "session timeout", now)
}

func (d *Daemon) heartbeat(tx *gorm.DB, now time.Time) error {
	return tx.Model(&models.State{ID: models.StateID}).Update("heartbeat_at", now).Error
}

func (d *Daemon) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("📊 Metrics at %s/metrics", d.cfg.Daemon.MetricsPort)
	if err := http.ListenAndServe(d.cfg.Daemon.MetricsPort, mux); err != nil {
		log.Printf("⚠️ Metrics server stopped: %v", err)
	}
}
