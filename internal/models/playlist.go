package models

import (
	"time"

	"gorm.io/gorm"
)

// Playlist represents a curated, ordered collection of tracks
type Playlist struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // Hiding DeletedAt from the API

	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// PlaylistTrack is the join table that stores the specific order of tracks.
// The daemon only cares about Position ordering.
type PlaylistTrack struct {
	ID         uint `gorm:"primarykey" json:"id"`
	PlaylistID uint `gorm:"index;not null" json:"playlist_id"`
	TrackID    uint `gorm:"index;not null" json:"track_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`
}
