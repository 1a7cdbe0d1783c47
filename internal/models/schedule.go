package models

import (
	"time"

	"gorm.io/gorm"
)

// Schedule is a recurring playback rule: on the listed weekdays, at StartTime,
// play the referenced playlist for SessionMinutes.
type Schedule struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name string `json:"name" gorm:"size:120;not null"`

	// Canonical weekday set, comma-separated: "0,1,2,3,4" (0=Monday .. 6=Sunday)
	Days      string `json:"days" gorm:"size:20;not null;default:'0,1,2,3,4,5,6'"`
	StartTime string `json:"start_time" gorm:"type:varchar(5);not null"` // HH:MM, 24h

	SessionMinutes int  `json:"session_minutes" gorm:"not null;default:15"`
	Enabled        bool `json:"enabled" gorm:"default:true"`

	// A schedule without a playlist is inert: it matches but never fires.
	PlaylistID *uint     `json:"playlist_id" gorm:"index"`
	Playlist   *Playlist `json:"playlist,omitempty"`

	// Debounce stamp so one schedule fires at most once per minute window.
	LastFiredAt *time.Time `json:"last_fired_at"`
}
