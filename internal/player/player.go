// Package player abstracts audio playback of an ordered file list behind a
// small capability set, so the daemon never cares which engine does the work.
package player

import (
	"fmt"
	"log"
	"strings"
)

// Player is the capability set every backend implements. All calls are quick
// (spawn/signal, never wait-for-completion) and none of them block on I/O the
// daemon tick would feel.
type Player interface {
	// LoadPlaylist replaces the current playlist, stopping any prior
	// playback and resetting the cursor to the first file.
	LoadPlaylist(files []string)
	// Play begins/resumes playback from the current cursor. No-op when no
	// playlist is loaded.
	Play()
	// Stop halts playback, releases backend resources and resets the cursor.
	Stop()
	// SetVolume clamps to 0..100; applies immediately when playing.
	SetVolume(volume int)
	IsPlaying() bool
	// Skip advances the cursor; past the last file it behaves as Stop.
	Skip()
	// CurrentIndex returns the cursor, -1 meaning "no current track".
	CurrentIndex() int
	// Update is the backend's only channel for asynchronous events
	// (subprocess death, engine-driven track advance). Non-blocking,
	// called once per daemon tick; returns the current index.
	Update() int
}

// New constructs the requested backend. "auto" falls through the preference
// chain and ends at the dummy backend, which never fails, so the daemon can
// always start.
func New(backend string) (Player, error) {
	switch strings.ToLower(backend) {
	case "cvlc":
		return NewCVLC()
	case "dummy":
		return NewDummy(), nil
	case "auto", "":
		if p, err := NewCVLC(); err == nil {
			return p, nil
		} else {
			log.Printf("⚠️ VLC backend unavailable (%v), using dummy player", err)
		}
		return NewDummy(), nil
	}
	return nil, fmt.Errorf("unknown player backend %q", backend)
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}
