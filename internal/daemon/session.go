package daemon

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/models"
)

// Sessions never run shorter than this, whatever the requested duration.
const minSessionSeconds = 30

// startSession performs the idle → playing transition for a playlist.
// Validation failures (empty playlist) are warnings, not errors: the tick
// carries on.
func (d *Daemon) startSession(tx *gorm.DB, playlistID uint, minutes int, reason string, now time.Time) error {
	entries, err := database.PlaylistEntries(tx, playlistID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.Printf("⚠️ Playlist %d is empty, cannot start session", playlistID)
		database.LogEvent(tx, "warning", "Playlist empty, cannot start session",
			map[string]any{"playlist_id": playlistID})
		return nil
	}

	files := make([]string, len(entries))
	ids := make([]uint, len(entries))
	for i, entry := range entries {
		files[i] = filepath.Join(d.cfg.Daemon.MusicDir, entry.StoredFilename)
		ids[i] = entry.TrackID
	}

	if err := d.startTracks(tx, files, ids, minutes*60, &playlistID, now); err != nil {
		return err
	}

	log.Printf("▶️  Session started: playlist %d for %d min (%s)", playlistID, minutes, reason)
	database.LogEvent(tx, "info", "Session started", map[string]any{
		"playlist_id": playlistID,
		"minutes":     minutes,
		"reason":      reason,
	})
	sessionsStarted.WithLabelValues(triggerLabel(reason)).Inc()
	return nil
}

// startTracks powers the relay, hands the file list to the backend and stamps
// the playing state. playlistID is nil for ad-hoc previews.
func (d *Daemon) startTracks(tx *gorm.DB, files []string, ids []uint, seconds int, playlistID *uint, now time.Time) error {
	if seconds < minSessionSeconds {
		seconds = minSessionSeconds
	}

	state, err := database.EnsureState(tx)
	if err != nil {
		return err
	}
	volume := state.Volume
	if volume <= 0 {
		volume = d.cfg.Daemon.VolumeDefault
	}

	if !d.relay.IsPowerOn() {
		d.relay.PowerOn()
	}
	d.player.LoadPlaylist(files)
	d.player.SetVolume(volume)
	d.player.Play()

	d.trackIDs = ids
	end := now.Add(time.Duration(seconds) * time.Second)
	return tx.Model(&models.State{ID: models.StateID}).Updates(map[string]any{
		"status":           models.StatusPlaying,
		"volume":           volume,
		"playlist_id":      playlistID,
		"current_track_id": ids[0],
		"session_end_at":   end,
		"power_on":         true,
		"updated_at":       now,
	}).Error
}

// startPreview plays a single track outside any playlist. A running session
// is stopped first ("preview interrupt").
func (d *Daemon) startPreview(tx *gorm.DB, trackID uint, now time.Time) error {
	var track models.Track
	if err := tx.First(&track, trackID).Error; err != nil {
		log.Printf("⚠️ Preview track %d missing", trackID)
		database.LogEvent(tx, "warning", "Preview track missing", map[string]any{"track_id": trackID})
		return nil
	}
	path := filepath.Join(d.cfg.Daemon.MusicDir, track.StoredFilename)
	if _, err := os.Stat(path); err != nil {
		log.Printf("⚠️ Preview file missing: %s", path)
		database.LogEvent(tx, "warning", "Preview file missing", map[string]any{"track_id": trackID})
		return nil
	}

	state, err := database.EnsureState(tx)
	if err != nil {
		return err
	}
	if state.Status == models.StatusPlaying {
		if err := d.stopSession(tx, "preview interrupt", now); err != nil {
			return err
		}
	}

	seconds := track.DurationSec
	if seconds <= 0 {
		seconds = d.cfg.Daemon.SessionDefaultMinutes * 60
	}
	if err := d.startTracks(tx, []string{path}, []uint{track.ID}, seconds, nil, now); err != nil {
		return err
	}

	log.Printf("🎧 Preview started: track %d (%ds)", trackID, seconds)
	database.LogEvent(tx, "info", "Preview started", map[string]any{
		"track_id":         trackID,
		"duration_seconds": seconds,
	})
	sessionsStarted.WithLabelValues("preview").Inc()
	return nil
}

// stopSession performs the playing → idle transition: stop the backend, cut
// the relay, clear the session fields. Safe to call when already idle.
func (d *Daemon) stopSession(tx *gorm.DB, reason string, now time.Time) error {
	state, err := database.EnsureState(tx)
	if err != nil {
		return err
	}
	if state.Status != models.StatusPlaying && !d.relay.IsPowerOn() {
		return nil
	}

	d.player.Stop()
	if d.relay.IsPowerOn() {
		d.relay.PowerOff()
	}
	d.trackIDs = nil

	if err := tx.Model(&models.State{ID: models.StateID}).Updates(map[string]any{
		"status":           models.StatusIdle,
		"playlist_id":      nil,
		"current_track_id": nil,
		"session_end_at":   nil,
		"power_on":         false,
		"updated_at":       now,
	}).Error; err != nil {
		return err
	}

	log.Printf("⏹️  Session stopped (%s)", reason)
	database.LogEvent(tx, "info", "Session stopped", map[string]any{"reason": reason})
	sessionsStopped.WithLabelValues(reason).Inc()
	return nil
}
