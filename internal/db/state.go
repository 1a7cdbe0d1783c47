package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
)

// EnsureState returns the singleton playback state row, creating it with
// defaults on first use.
func EnsureState(tx *gorm.DB) (*models.State, error) {
	var state models.State
	err := tx.First(&state, models.StateID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = models.State{
			ID:          models.StateID,
			Status:      models.StatusIdle,
			Volume:      70,
			HeartbeatAt: time.Now(),
		}
		if err := tx.Create(&state).Error; err != nil {
			return nil, err
		}
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// LogEvent appends a durable operator-visible event.
func LogEvent(tx *gorm.DB, level, message string, meta map[string]any) {
	encoded, _ := json.Marshal(meta)
	tx.Create(&models.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Meta:      string(encoded),
	})
}

// ResolvePlaylist looks up a playlist by numeric id or exact name.
func ResolvePlaylist(tx *gorm.DB, identifier string) (*models.Playlist, error) {
	token := strings.TrimSpace(identifier)
	if token == "" {
		return nil, errors.New("playlist identifier cannot be empty")
	}

	var playlist models.Playlist
	if id, err := strconv.ParseUint(token, 10, 32); err == nil {
		if err := tx.First(&playlist, uint(id)).Error; err == nil {
			return &playlist, nil
		}
	}

	if err := tx.Where("name = ?", token).First(&playlist).Error; err != nil {
		return nil, fmt.Errorf("playlist %q not found", token)
	}
	return &playlist, nil
}

// PlaylistEntry pairs a track id with its playable file path.
type PlaylistEntry struct {
	TrackID        uint
	StoredFilename string
}

// PlaylistEntries returns the ordered membership of a playlist.
func PlaylistEntries(tx *gorm.DB, playlistID uint) ([]PlaylistEntry, error) {
	var entries []PlaylistEntry
	err := tx.Model(&models.PlaylistTrack{}).
		Select("playlist_tracks.track_id, tracks.stored_filename").
		Joins("JOIN tracks ON tracks.id = playlist_tracks.track_id").
		Where("playlist_tracks.playlist_id = ?", playlistID).
		Order("playlist_tracks.position").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
