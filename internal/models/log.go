package models

import "time"

// LogEntry is a durable operator-visible event written by the daemon.
// The web layer reads these; the daemon itself has no UI.
type LogEntry struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Level     string    `gorm:"size:20;not null" json:"level"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	Meta      string    `gorm:"type:text" json:"meta"` // JSON key/value context
}

// TableName overrides the default pluralization
func (LogEntry) TableName() string {
	return "logs"
}
