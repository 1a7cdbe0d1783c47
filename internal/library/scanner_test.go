package library

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
)

func setupLibraryDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	if err := db.AutoMigrate(&models.Track{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestScanRegistersSupportedFiles(t *testing.T) {
	db := setupLibraryDB(t)
	dir := t.TempDir()

	// Tagless files: the scanner falls back to a cleaned filename.
	for _, name := range []string{"school_bell.mp3", "pause_chime.wav", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("data"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	added, err := Scan(db, dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 registered tracks, got %d", added)
	}

	var track models.Track
	if err := db.Where("stored_filename = ?", "school_bell.mp3").First(&track).Error; err != nil {
		t.Fatalf("track not registered: %v", err)
	}
	if track.Title != "school bell" {
		t.Errorf("fallback title = %q, want %q", track.Title, "school bell")
	}
	if track.ContentType == "" {
		t.Error("content type must be filled")
	}
}

func TestScanIsIdempotent(t *testing.T) {
	db := setupLibraryDB(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bell.mp3"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Scan(db, dir); err != nil {
		t.Fatal(err)
	}
	added, err := Scan(db, dir)
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Errorf("second scan must register nothing, got %d", added)
	}

	var count int64
	db.Model(&models.Track{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 track after rescan, got %d", count)
	}
}

func TestScanWalksSubdirectories(t *testing.T) {
	db := setupLibraryDB(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "bells")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "recess.mp3"), []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Scan(db, dir); err != nil {
		t.Fatal(err)
	}

	var track models.Track
	want := filepath.Join("bells", "recess.mp3")
	if err := db.Where("stored_filename = ?", want).First(&track).Error; err != nil {
		t.Fatalf("nested track not registered under %q: %v", want, err)
	}
}
