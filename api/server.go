package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/healthtrack-app/healthtrack-api/logmodule"
	"github.com/healthtrack-app/healthtrack-api/notification"
	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/sensor"
	"github.com/healthtrack-app/healthtrack-api/store"
	"github.com/healthtrack-app/healthtrack-api/tracker"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// StepHistory reads the persisted daily step totals
type StepHistory interface {
	History(ctx context.Context, userID string) (schema.DailyStepHistory, error)
	LoadDay(ctx context.Context, userID, day string) (int, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// JWT signing secret
	jwtSecret []byte

	// Stores
	store    store.Pinger
	history  StepHistory
	sessions store.SessionLog

	// Step tracking
	hub      *sensor.Hub
	trackers *tracker.Registry
	inbox    *notification.Inbox
}

// NewServer new instance of server
func NewServer(
	jwtSecret []byte,
	pinger store.Pinger,
	history StepHistory,
	sessions store.SessionLog,
	hub *sensor.Hub,
	trackers *tracker.Registry,
	inbox *notification.Inbox) *Server {
	return &Server{
		jwtSecret: jwtSecret,
		store:     pinger,
		history:   history,
		sessions:  sessions,
		hub:       hub,
		trackers:  trackers,
		inbox:     inbox,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Timezone", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(s.authMiddleware())

	stepRoute := apiRoute.Group("/steps")
	{
		stepRoute.GET("/sessions", s.listSessions)
		stepRoute.POST("/sessions", s.startSession)
		stepRoute.GET("/sessions/current", s.currentSession)
		stepRoute.DELETE("/sessions/current", s.stopSession)

		stepRoute.POST("/samples", s.pushSamples)
		stepRoute.POST("/locations", s.pushLocations)

		stepRoute.GET("/today", s.today)
		stepRoute.GET("/history", s.stepHistory)
		stepRoute.GET("/notifications", s.notifications)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	err = s.sessions.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
