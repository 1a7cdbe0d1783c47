package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
	"github.com/hoangitsk2/musicschool/internal/schedule"
)

// BootstrapSchedule is one entry of the optional startup schedule file.
// Playlist may be a numeric id or an exact playlist name.
type BootstrapSchedule struct {
	Name     string `yaml:"name"`
	Playlist string `yaml:"playlist"`
	Time     string `yaml:"time"`
	Days     string `yaml:"days"`
	Minutes  int    `yaml:"minutes"`
	Enabled  *bool  `yaml:"enabled"`
}

type bootstrapFile struct {
	Schedules []BootstrapSchedule `yaml:"schedules"`
}

// ApplyBootstrapSchedules upserts the schedule definitions from a YAML file,
// matching existing rows by exact name. A broken entry is logged and skipped;
// the daemon must still start.
func ApplyBootstrapSchedules(db *gorm.DB, path string, defaultMinutes int) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ Bootstrap schedule file %s not found, skipping", path)
			return nil
		}
		return fmt.Errorf("read bootstrap schedules: %w", err)
	}

	var file bootstrapFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse bootstrap schedules: %w", err)
	}

	log.Printf("🌱 Applying %d bootstrap schedules...", len(file.Schedules))
	for i, entry := range file.Schedules {
		if err := applyBootstrapEntry(db, entry, defaultMinutes); err != nil {
			log.Printf("⚠️ Bootstrap schedule %d (%q) skipped: %v", i, entry.Name, err)
			LogEvent(db, "warning", "Bootstrap schedule skipped", map[string]any{
				"index": i, "name": entry.Name, "error": err.Error(),
			})
		}
	}
	return nil
}

func applyBootstrapEntry(db *gorm.DB, entry BootstrapSchedule, defaultMinutes int) error {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return errors.New("missing name")
	}
	if strings.TrimSpace(entry.Playlist) == "" {
		return errors.New("missing playlist")
	}
	playlist, err := ResolvePlaylist(db, entry.Playlist)
	if err != nil {
		return err
	}
	startTime := strings.TrimSpace(entry.Time)
	if startTime == "" {
		return errors.New("missing start time")
	}

	minutes := entry.Minutes
	if minutes < 1 {
		minutes = defaultMinutes
	}
	days, err := schedule.NormalizeDays(entry.Days)
	if err != nil {
		return fmt.Errorf("invalid days: %w", err)
	}
	enabled := true
	if entry.Enabled != nil {
		enabled = *entry.Enabled
	}

	// Upsert by exact name.
	var existing models.Schedule
	err = db.Where("name = ?", name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.Schedule{
			Name:           name,
			PlaylistID:     &playlist.ID,
			Days:           days,
			StartTime:      startTime,
			SessionMinutes: minutes,
			Enabled:        enabled,
		}).Error
	}
	if err != nil {
		return err
	}

	existing.PlaylistID = &playlist.ID
	existing.Days = days
	existing.StartTime = startTime
	existing.SessionMinutes = minutes
	existing.Enabled = enabled
	if err := db.Save(&existing).Error; err != nil {
		return err
	}
	log.Printf("   📅 %s → playlist %d at %s (%s)", name, playlist.ID, startTime, days)
	return nil
}
