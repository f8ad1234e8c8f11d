package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/sensor"
	"github.com/healthtrack-app/healthtrack-api/tracker"
	"github.com/healthtrack-app/healthtrack-api/utils"
)

const (
	maxBatchSize        = 1000
	defaultSessionLimit = 20
)

// requesterTracker returns the tracker of the authenticated user
func (s *Server) requesterTracker(c *gin.Context) (*tracker.Tracker, bool) {
	t, err := s.trackers.Get(c.GetString("requester"))
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return nil, false
	}
	return t, true
}

func (s *Server) startSession(c *gin.Context) {
	var caps sensor.Capabilities
	if err := c.BindJSON(&caps); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	t, ok := s.requesterTracker(c)
	if !ok {
		return
	}

	if t.Status().State == tracker.Idle {
		s.hub.Stream(t.UserID()).Declare(caps)
	}

	err := t.Start(c)
	switch {
	case err == nil:
	case errors.Is(err, tracker.ErrPermissionDenied):
		abortWithEncoding(c, http.StatusForbidden, errorPermissionDenied, err)
		return
	case errors.Is(err, tracker.ErrSensorUnavailable):
		abortWithEncoding(c, http.StatusConflict, errorSensorUnavailable, err)
		return
	case errors.Is(err, tracker.ErrBusy):
		abortWithEncoding(c, http.StatusConflict, errorTrackerBusy, err)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": t.Status()})
}

func (s *Server) currentSession(c *gin.Context) {
	t, ok := s.requesterTracker(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": t.Status()})
}

func (s *Server) stopSession(c *gin.Context) {
	t, ok := s.requesterTracker(c)
	if !ok {
		return
	}

	summary, err := t.Stop(c)
	switch {
	case err == nil:
	case errors.Is(err, tracker.ErrNotTracking):
		abortWithEncoding(c, http.StatusConflict, errorNotTracking, err)
		return
	case errors.Is(err, tracker.ErrBusy):
		abortWithEncoding(c, http.StatusConflict, errorTrackerBusy, err)
		return
	case errors.Is(err, tracker.ErrFlushFailed):
		abortWithEncoding(c, http.StatusServiceUnavailable, errorSaveSteps, err)
		return
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary,
		"status":  t.Status(),
	})
}

func (s *Server) listSessions(c *gin.Context) {
	var params struct {
		Limit int `form:"limit"`
	}
	if err := c.BindQuery(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	switch {
	case params.Limit < 0:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	case params.Limit == 0:
		params.Limit = defaultSessionLimit
	}

	records, err := s.sessions.ListSessions(c.GetString("requester"), params.Limit)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": records})
}

func (s *Server) pushSamples(c *gin.Context) {
	var body struct {
		Samples []schema.AccelerationSample `json:"samples"`
	}
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if len(body.Samples) == 0 || len(body.Samples) > maxBatchSize {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	t, ok := s.requesterTracker(c)
	if !ok {
		return
	}

	delivered := s.hub.Stream(t.UserID()).PublishSamples(body.Samples...)
	c.JSON(http.StatusOK, gin.H{
		"delivered": delivered,
		"status":    t.Status(),
	})
}

func (s *Server) pushLocations(c *gin.Context) {
	var body struct {
		Locations []schema.LocationFix `json:"locations"`
	}
	if err := c.BindJSON(&body); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	if len(body.Locations) == 0 || len(body.Locations) > maxBatchSize {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	delivered := 0
	if t, ok := s.trackers.Lookup(c.GetString("requester")); ok {
		delivered = s.hub.Stream(t.UserID()).PublishFixes(body.Locations...)
	}
	c.JSON(http.StatusOK, gin.H{"delivered": delivered})
}

// today returns the persisted total of the current day. A Timezone header
// in GMT+X form picks the calendar day of the client.
func (s *Server) today(c *gin.Context) {
	if tz := c.GetHeader("Timezone"); tz != "" {
		loc := utils.GetLocation(tz)
		if loc == nil {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidTimezone)
			return
		}

		day := utils.DateKey(time.Now(), loc)
		total, err := s.history.LoadDay(c, c.GetString("requester"), day)
		if err != nil {
			abortWithEncoding(c, http.StatusInternalServerError, errorLoadSteps, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"date": day, "today": total})
		return
	}

	t, ok := s.requesterTracker(c)
	if !ok {
		return
	}

	total, err := t.LoadToday(c)
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorLoadSteps, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"today": total})
}

func (s *Server) stepHistory(c *gin.Context) {
	history, err := s.history.History(c, c.GetString("requester"))
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorLoadSteps, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (s *Server) notifications(c *gin.Context) {
	lang := c.GetHeader("Accept-Language")
	if lang == "" {
		lang = "en"
	}

	notifications, err := s.inbox.Drain(c.GetString("requester"), lang)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
