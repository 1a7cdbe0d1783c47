package models

import "time"

// Playback statuses stored in State.Status.
const (
	StatusIdle    = "idle"
	StatusPlaying = "playing"
)

// StateID is the primary key of the singleton state row.
const StateID = 1

// State represents the live playback status of the box.
// There is ONE row in this table (ID=1), written only by the daemon.
type State struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	Status string `gorm:"size:20;not null;default:'idle'" json:"status"`
	Volume int    `gorm:"not null;default:70" json:"volume"`

	PlaylistID     *uint `json:"playlist_id"`      // nil for ad-hoc previews
	CurrentTrackID *uint `json:"current_track_id"` // what is audible right now

	SessionEndAt *time.Time `json:"session_end_at"` // set iff Status == playing
	PowerOn      bool       `gorm:"not null;default:false" json:"power_on"`

	HeartbeatAt time.Time `json:"heartbeat_at"` // stamped every tick, liveness probe
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the default pluralization
func (State) TableName() string {
	return "state"
}
