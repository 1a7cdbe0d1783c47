package database

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := d.AutoMigrate(&models.Playlist{}, &models.Schedule{}, &models.LogEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

func writeBootstrapFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestBootstrapCreatesSchedules(t *testing.T) {
	d := setupTestDB(t)
	d.Create(&models.Playlist{Name: "Morning Bells"})

	path := writeBootstrapFile(t, `
schedules:
  - name: Recess
    playlist: Morning Bells
    time: "09:30"
    days: Mon-Fri
    minutes: 20
`)

	if err := ApplyBootstrapSchedules(d, path, 15); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var sched models.Schedule
	if err := d.Where("name = ?", "Recess").First(&sched).Error; err != nil {
		t.Fatalf("schedule not created: %v", err)
	}
	if sched.Days != "0,1,2,3,4" {
		t.Errorf("days = %q, want 0,1,2,3,4", sched.Days)
	}
	if sched.StartTime != "09:30" {
		t.Errorf("start time = %q", sched.StartTime)
	}
	if sched.SessionMinutes != 20 {
		t.Errorf("minutes = %d, want 20", sched.SessionMinutes)
	}
	if !sched.Enabled {
		t.Error("schedule should default to enabled")
	}
}

func TestBootstrapUpdatesExistingByName(t *testing.T) {
	d := setupTestDB(t)
	var pl models.Playlist
	d.Create(&models.Playlist{Name: "Morning Bells"})
	d.Where("name = ?", "Morning Bells").First(&pl)

	d.Create(&models.Schedule{
		Name:           "Recess",
		PlaylistID:     &pl.ID,
		Days:           "0,1,2,3,4,5,6",
		StartTime:      "08:00",
		SessionMinutes: 10,
		Enabled:        true,
	})

	path := writeBootstrapFile(t, `
schedules:
  - name: Recess
    playlist: Morning Bells
    time: "10:45"
    days: Weekend
    enabled: false
`)

	if err := ApplyBootstrapSchedules(d, path, 15); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var count int64
	d.Model(&models.Schedule{}).Count(&count)
	if count != 1 {
		t.Fatalf("schedule count = %d, want 1 (upsert by name)", count)
	}

	var sched models.Schedule
	d.Where("name = ?", "Recess").First(&sched)
	if sched.StartTime != "10:45" {
		t.Errorf("start time = %q, want 10:45", sched.StartTime)
	}
	if sched.Days != "5,6" {
		t.Errorf("days = %q, want 5,6", sched.Days)
	}
	if sched.SessionMinutes != 15 {
		t.Errorf("minutes = %d, want default 15", sched.SessionMinutes)
	}
	if sched.Enabled {
		t.Error("schedule should be disabled")
	}
}

func TestBootstrapSkipsBrokenEntries(t *testing.T) {
	d := setupTestDB(t)
	d.Create(&models.Playlist{Name: "Morning Bells"})

	path := writeBootstrapFile(t, `
schedules:
  - name: Ghost
    playlist: Nonexistent
    time: "09:00"
  - name: Recess
    playlist: Morning Bells
    time: "09:30"
`)

	if err := ApplyBootstrapSchedules(d, path, 15); err != nil {
		t.Fatalf("broken entry must not abort the run: %v", err)
	}

	var count int64
	d.Model(&models.Schedule{}).Count(&count)
	if count != 1 {
		t.Fatalf("schedule count = %d, want 1", count)
	}
	var sched models.Schedule
	if err := d.Where("name = ?", "Recess").First(&sched).Error; err != nil {
		t.Fatalf("valid entry should still apply: %v", err)
	}
}

func TestBootstrapMissingFileIsNotFatal(t *testing.T) {
	d := setupTestDB(t)
	if err := ApplyBootstrapSchedules(d, "/nonexistent/schedules.yaml", 15); err != nil {
		t.Fatalf("missing file should be skipped: %v", err)
	}
}
