// Package library registers audio files found under the music directory as
// Track rows, so playlists can be assembled from them.
package library

import (
	"errors"
	"io/fs"
	"log"
	"mime"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"gorm.io/gorm"

	"github.com/hoangitsk2/musicschool/internal/models"
)

var supportedExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".ogg": true, ".m4a": true,
}

// Scan walks musicDir and upserts a Track row per playable file, keyed by the
// path relative to musicDir. Returns the number of new tracks registered.
func Scan(db *gorm.DB, musicDir string) (int, error) {
	added := 0
	err := filepath.WalkDir(musicDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !supportedExtensions[ext] {
			return nil
		}

		rel, err := filepath.Rel(musicDir, path)
		if err != nil {
			return err
		}

		var existing models.Track
		lookupErr := db.Where("stored_filename = ?", rel).First(&existing).Error
		if lookupErr == nil {
			return nil // already registered
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return lookupErr
		}

		track := buildTrack(path, rel, ext)
		if err := db.Create(&track).Error; err != nil {
			return err
		}
		log.Printf("🎵 Registered: %s (%s – %s)", rel, track.Artist, track.Title)
		added++
		return nil
	})
	return added, err
}

func buildTrack(path, rel, ext string) models.Track {
	track := models.Track{
		OrigFilename:   filepath.Base(path),
		StoredFilename: rel,
		ContentType:    contentTypeFor(ext),
		Title:          cleanFilename(filepath.Base(path)),
		DurationSec:    probeDuration(path),
	}
	// Embedded tags win over filename guesses when present.
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if meta, err := tag.ReadFrom(f); err == nil {
			if title := strings.TrimSpace(meta.Title()); title != "" {
				track.Title = title
			}
			track.Artist = strings.TrimSpace(meta.Artist())
		}
	}
	return track
}

func contentTypeFor(ext string) string {
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "audio/mpeg"
}

func cleanFilename(filename string) string {
	clean := strings.TrimSuffix(filename, filepath.Ext(filename))
	clean = strings.ReplaceAll(clean, "_", " ")
	return strings.TrimSpace(clean)
}

// probeDuration asks ffprobe for the stream length; 0 when unavailable.
func probeDuration(path string) int {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return int(seconds)
}
