// Package api is the management surface in front of the playback daemon. It
// never touches the player or relay directly: every intent becomes a Command
// row the daemon drains on its next tick.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hoangitsk2/musicschool/internal/config"
	database "github.com/hoangitsk2/musicschool/internal/db"
)

type Server struct {
	cfg    *config.Config
	db     *database.Client
	router *gin.Engine
}

func New(cfg *config.Config, db *database.Client) *Server {
	if cfg.API.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		db:     db,
		router: gin.Default(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// CORS Configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}

	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	// Health Check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "musicschool"})
	})

	// API Group
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/state", s.GetState)
		v1.GET("/tracks", s.GetTracks)
		v1.GET("/playlists", s.GetPlaylists)

		// Player control — everything is queued for the daemon
		v1.POST("/play", s.Play)
		v1.POST("/stop", s.StopPlayback)
		v1.POST("/skip", s.Skip)
		v1.POST("/volume", s.SetVolume)
		v1.POST("/power", s.Power)
		v1.POST("/preview", s.Preview)

		// Schedule management
		v1.GET("/schedules", s.GetSchedules)
		v1.POST("/schedules", s.CreateSchedule)
		v1.PUT("/schedules/:id", s.UpdateSchedule)
		v1.DELETE("/schedules/:id", s.DeleteSchedule)
	}
}

// Start runs the server on the configured port
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
