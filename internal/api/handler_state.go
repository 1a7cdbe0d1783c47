package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	database "github.com/hoangitsk2/musicschool/internal/db"
	"github.com/hoangitsk2/musicschool/internal/models"
)

// The daemon heartbeats every tick; anything older than this means it is not
// running.
const heartbeatStale = 10 * time.Second

func (s *Server) GetState(c *gin.Context) {
	state, err := database.EnsureState(s.db.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":        state,
		"daemon_alive": time.Since(state.HeartbeatAt) < heartbeatStale,
	})
}

func (s *Server) GetTracks(c *gin.Context) {
	var tracks []models.Track
	s.db.DB.Order("id").Find(&tracks)
	c.JSON(http.StatusOK, tracks)
}

func (s *Server) GetPlaylists(c *gin.Context) {
	var playlists []models.Playlist
	s.db.DB.Order("name").Find(&playlists)

	type row struct {
		models.Playlist
		TrackCount int64 `json:"track_count"`
	}
	out := make([]row, len(playlists))
	for i, playlist := range playlists {
		var count int64
		s.db.DB.Model(&models.PlaylistTrack{}).Where("playlist_id = ?", playlist.ID).Count(&count)
		out[i] = row{Playlist: playlist, TrackCount: count}
	}
	c.JSON(http.StatusOK, out)
}
