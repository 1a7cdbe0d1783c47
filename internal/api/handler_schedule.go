package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hoangitsk2/musicschool/internal/models"
	"github.com/hoangitsk2/musicschool/internal/schedule"
)

type scheduleInput struct {
	Name           string `json:"name" binding:"required"`
	PlaylistID     *uint  `json:"playlist_id"`
	Days           string `json:"days"`
	StartTime      string `json:"start_time" binding:"required"`
	SessionMinutes int    `json:"session_minutes"`
	Enabled        *bool  `json:"enabled"`
}

func (s *Server) GetSchedules(c *gin.Context) {
	var schedules []models.Schedule
	s.db.DB.Preload("Playlist").Order("start_time").Find(&schedules)

	type row struct {
		models.Schedule
		DaysLabel string     `json:"days_label"`
		NextRunAt *time.Time `json:"next_run_at"`
	}
	now := time.Now()
	out := make([]row, len(schedules))
	for i, sched := range schedules {
		out[i] = row{Schedule: sched, DaysLabel: schedule.DescribeDays(sched.Days)}
		if sched.Enabled {
			if next, ok := schedule.NextOccurrence(sched.Days, sched.StartTime, now); ok {
				out[i].NextRunAt = &next
			}
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) CreateSchedule(c *gin.Context) {
	var input scheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, err := schedule.NormalizeDays(input.Days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	minutes := input.SessionMinutes
	if minutes < 1 {
		minutes = s.cfg.Daemon.SessionDefaultMinutes
	}
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}

	sched := models.Schedule{
		Name:           input.Name,
		PlaylistID:     input.PlaylistID,
		Days:           days,
		StartTime:      input.StartTime,
		SessionMinutes: minutes,
		Enabled:        enabled,
	}
	if err := s.db.DB.Create(&sched).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule"})
		return
	}
	c.JSON(http.StatusCreated, sched)
}

func (s *Server) UpdateSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	var sched models.Schedule
	if err := s.db.DB.First(&sched, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var input scheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	days, err := schedule.NormalizeDays(input.Days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sched.Name = input.Name
	sched.PlaylistID = input.PlaylistID
	sched.Days = days
	sched.StartTime = input.StartTime
	if input.SessionMinutes >= 1 {
		sched.SessionMinutes = input.SessionMinutes
	}
	if input.Enabled != nil {
		sched.Enabled = *input.Enabled
	}
	if err := s.db.DB.Save(&sched).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule"})
		return
	}
	c.JSON(http.StatusOK, sched)
}

func (s *Server) DeleteSchedule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule ID"})
		return
	}

	result := s.db.DB.Delete(&models.Schedule{}, uint(id))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted", "id": id})
}
