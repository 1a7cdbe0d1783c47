package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hoangitsk2/musicschool/internal/models"
)

func (s *Server) enqueue(c *gin.Context, cmdType string, payload map[string]any) {
	encoded, _ := json.Marshal(payload)
	command := models.Command{Type: cmdType, Payload: string(encoded)}
	if err := s.db.DB.Create(&command).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue command"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": command.ID, "type": cmdType})
}

func (s *Server) Play(c *gin.Context) {
	var input struct {
		PlaylistID *uint `json:"playlist_id"`
		Minutes    *int  `json:"minutes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := map[string]any{}
	if input.PlaylistID != nil {
		// Validate up front for a friendlier error; the daemon re-checks.
		var playlist models.Playlist
		if err := s.db.DB.First(&playlist, *input.PlaylistID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Playlist not found"})
			return
		}
		payload["playlist_id"] = *input.PlaylistID
	}
	if input.Minutes != nil && *input.Minutes >= 1 {
		payload["minutes"] = *input.Minutes
	}
	s.enqueue(c, models.CommandPlay, payload)
}

func (s *Server) StopPlayback(c *gin.Context) {
	s.enqueue(c, models.CommandStop, nil)
}

func (s *Server) Skip(c *gin.Context) {
	s.enqueue(c, models.CommandSkip, nil)
}

func (s *Server) SetVolume(c *gin.Context) {
	var input struct {
		Volume int `json:"volume"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.enqueue(c, models.CommandVolume, map[string]any{"volume": input.Volume})
}

func (s *Server) Power(c *gin.Context) {
	var input struct {
		On *bool `json:"on" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmdType := models.CommandPowerOff
	if *input.On {
		cmdType = models.CommandPowerOn
	}
	s.enqueue(c, cmdType, nil)
}

func (s *Server) Preview(c *gin.Context) {
	var input struct {
		TrackID uint `json:"track_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var track models.Track
	if err := s.db.DB.First(&track, input.TrackID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Track not found"})
		return
	}
	s.enqueue(c, models.CommandPreview, map[string]any{"track_id": input.TrackID})
}
