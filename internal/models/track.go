package models

import "gorm.io/gorm"

// Track represents an audio file stored under the music directory.
type Track struct {
	gorm.Model

	OrigFilename   string `gorm:"size:255;not null" json:"orig_filename"`
	StoredFilename string `gorm:"size:255;uniqueIndex;not null" json:"stored_filename"` // Relative to music_dir
	ContentType    string `gorm:"size:100;not null" json:"content_type"`

	Title  string `gorm:"index" json:"title"`
	Artist string `gorm:"index" json:"artist"`

	DurationSec int `json:"duration_sec"` // 0 when unknown (ffprobe unavailable)
}
