package models

import "time"

// Command types understood by the playback daemon.
const (
	CommandPlay     = "PLAY"
	CommandStop     = "STOP"
	CommandSkip     = "SKIP"
	CommandVolume   = "SET_VOLUME"
	CommandPowerOn  = "POWER_ON"
	CommandPowerOff = "POWER_OFF"
	CommandPreview  = "PREVIEW"
)

// Command is a one-shot operator intent queued for the daemon.
// Rows are never deleted; ProcessedAt doubles as an audit trail.
type Command struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Type        string     `gorm:"size:20;not null" json:"type"`
	Payload     string     `gorm:"type:text" json:"payload"` // JSON object, shape depends on Type
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `gorm:"index" json:"processed_at"` // NULL = pending
}
