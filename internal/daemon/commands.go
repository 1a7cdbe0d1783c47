package daemon

import (
	"encoding/json"
	"log"
	"strconv"
	"time"

	"gorm.io/gorm"

	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/models"
)

// drainCommands applies every pending command in creation order. A command is
// marked processed whether or not its effect could be applied, so malformed
// commands are never retried. Only storage errors abort the tick.
func (d *Daemon) drainCommands(tx *gorm.DB, now time.Time) error {
	var commands []models.Command
	if err := tx.Where("processed_at IS NULL").Order("created_at").Find(&commands).Error; err != nil {
		return err
	}

	for i := range commands {
		command := &commands[i]
		if err := d.applyCommand(tx, command, now); err != nil {
			return err
		}
		commandsProcessed.WithLabelValues(command.Type).Inc()
		if err := tx.Model(&models.Command{}).Where("id = ?", command.ID).
			Update("processed_at", now).Error; err != nil {
			return err
		}
	}
	return nil
}

func (d *Daemon) applyCommand(tx *gorm.DB, command *models.Command, now time.Time) error {
	payload := decodePayload(command.Payload)

	switch command.Type {
	case models.CommandPlay:
		minutes := d.cfg.Daemon.SessionDefaultMinutes
		if m, ok := payloadInt(payload, "minutes"); ok && m >= 1 {
			minutes = m
		}
		playlistID, ok := payloadInt(payload, "playlist_id")
		if !ok {
			resolved, found := soleExistingPlaylist(tx)
			if !found {
				log.Println("⚠️ No playlist available for PLAY command")
				database.LogEvent(tx, "warning", "No playlist available for PLAY command", nil)
				return nil
			}
			playlistID = int(resolved)
		}
		return d.startSession(tx, uint(playlistID), minutes, "command", now)

	case models.CommandStop:
		return d.stopSession(tx, "command", now)

	case models.CommandVolume:
		volume := d.cfg.Daemon.VolumeDefault
		if v, ok := payloadInt(payload, "volume"); ok {
			volume = v
		}
		if volume < 0 {
			volume = 0
		}
		if volume > 100 {
			volume = 100
		}
		d.player.SetVolume(volume)
		log.Printf("🔊 Volume set to %d", volume)
		database.LogEvent(tx, "info", "Volume updated", map[string]any{"volume": volume})
		return tx.Model(&models.State{ID: models.StateID}).Updates(map[string]any{
			"volume":     volume,
			"updated_at": now,
		}).Error

	case models.CommandSkip:
		d.player.Skip()
		// Only the cursor is reconciled here; skipping into exhaustion ends
		// the session through the player poll that follows command draining.
		idx := d.player.CurrentIndex()
		updates := map[string]any{"updated_at": now}
		if idx >= 0 && idx < len(d.trackIDs) {
			updates["current_track_id"] = d.trackIDs[idx]
		}
		return tx.Model(&models.State{ID: models.StateID}).Updates(updates).Error

	case models.CommandPowerOn:
		d.relay.PowerOn()
		database.LogEvent(tx, "info", "Relay powered on", nil)
		return tx.Model(&models.State{ID: models.StateID}).Updates(map[string]any{
			"power_on":   true,
			"updated_at": now,
		}).Error

	case models.CommandPowerOff:
		d.relay.PowerOff()
		database.LogEvent(tx, "info", "Relay powered off", nil)
		return tx.Model(&models.State{ID: models.StateID}).Updates(map[string]any{
			"power_on":   false,
			"updated_at": now,
		}).Error

	case models.CommandPreview:
		trackID, ok := payloadInt(payload, "track_id")
		if !ok {
			log.Println("⚠️ Preview command missing track_id")
			database.LogEvent(tx, "warning", "Preview command missing track_id", nil)
			return nil
		}
		return d.startPreview(tx, uint(trackID), now)
	}

	log.Printf("⚠️ Unknown command type %q (id %d)", command.Type, command.ID)
	database.LogEvent(tx, "warning", "Unknown command type", map[string]any{
		"id": command.ID, "type": command.Type,
	})
	return nil
}

// soleExistingPlaylist returns the only playlist when exactly one exists.
// Zero or several playlists make an id-less PLAY ambiguous.
func soleExistingPlaylist(tx *gorm.DB) (uint, bool) {
	var ids []uint
	if err := tx.Model(&models.Playlist{}).Limit(2).Pluck("id", &ids).Error; err != nil {
		return 0, false
	}
	if len(ids) != 1 {
		return 0, false
	}
	return ids[0], true
}

func decodePayload(raw string) map[string]any {
	payload := map[string]any{}
	if raw == "" {
		return payload
	}
	// Malformed payloads degrade to defaults rather than failing the command.
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Printf("⚠️ Ignoring malformed command payload: %v", err)
		return map[string]any{}
	}
	return payload
}

func payloadInt(payload map[string]any, key string) (int, bool) {
	switch v := payload[key].(type) {
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
