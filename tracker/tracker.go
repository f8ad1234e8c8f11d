package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/healthtrack-app/healthtrack-api/geo"
	"github.com/healthtrack-app/healthtrack-api/notification"
	"github.com/healthtrack-app/healthtrack-api/pedometer"
	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/store"
)

var (
	ErrPermissionDenied         = errors.New("motion permission denied")
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrSensorUnavailable        = errors.New("motion sensor unavailable")
	ErrNotTracking              = errors.New("not tracking")
	ErrBusy                     = errors.New("tracker is changing state")
	ErrFlushFailed              = errors.New("failed to save steps")
)

var log = logrus.WithField("prefix", "tracker")

// State of a tracking session
type State int

const (
	Idle State = iota
	RequestingPermission
	Subscribing
	Tracking
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RequestingPermission:
		return "requesting_permission"
	case Subscribing:
		return "subscribing"
	case Tracking:
		return "tracking"
	case Stopping:
		return "stopping"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is the live view of a tracker.
type Status struct {
	State         State  `json:"state"`
	SessionID     string `json:"session_id,omitempty"`
	Steps         int    `json:"steps"`
	Unsaved       int    `json:"unsaved"`
	RejectedByGPS int    `json:"rejected_by_gps"`
	Corroborating bool   `json:"corroborating"`
	Today         int    `json:"today"`
}

// Dependencies are the collaborators of a tracker. Location, Sessions,
// Notifier and Scope are optional.
type Dependencies struct {
	Sensor     MotionSensor
	Location   LocationProvider
	Aggregator Aggregator
	Sessions   store.SessionLog
	Clock      Clock
	Notifier   Notifier
	Scope      tally.Scope
}

type metrics struct {
	samples       tally.Counter
	accepted      tally.Counter
	rejectedByGPS tally.Counter
	sessions      tally.Counter
	flushFailures tally.Counter
	sessionSteps  tally.Gauge
}

func newMetrics(scope tally.Scope) metrics {
	return metrics{
		samples:       scope.Counter("samples"),
		accepted:      scope.Counter("steps_accepted"),
		rejectedByGPS: scope.Counter("steps_rejected_gps"),
		sessions:      scope.Counter("sessions_started"),
		flushFailures: scope.Counter("flush_failures"),
		sessionSteps:  scope.Gauge("session_steps"),
	}
}

// Tracker runs the step pipeline of one user. Sensor callbacks, location
// callbacks and the session operations may arrive on different goroutines;
// every sample is processed completely before the next one.
type Tracker struct {
	mu sync.Mutex

	userID       string
	cfg          Config
	deps         Dependencies
	pipeline     *pedometer.Pipeline
	corroborator *geo.Corroborator
	metrics      metrics

	state       State
	motionSub   Subscription
	locationSub Subscription

	sessionID     string
	startedAt     int64
	steps         int
	rejectedByGPS int
	acceptedAt    []int64
	sessionDays   map[string]int

	// pending holds accepted steps per day which are not persisted yet.
	// It survives failed flushes.
	pending map[string]int
	today   int
	last    *Summary
}

// New builds an idle tracker for userID.
func New(userID string, cfg Config, deps Dependencies) (*Tracker, error) {
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	if deps.Sensor == nil || deps.Aggregator == nil {
		return nil, fmt.Errorf("sensor and aggregator are required")
	}

	pipeline, err := pedometer.NewPipeline(cfg.Pedometer)
	if err != nil {
		return nil, err
	}

	if deps.Clock == nil {
		deps.Clock = NewSystemClock(nil)
	}
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Scope == nil {
		deps.Scope = tally.NoopScope
	}

	return &Tracker{
		userID:       userID,
		cfg:          cfg,
		deps:         deps,
		pipeline:     pipeline,
		corroborator: geo.NewCorroborator(cfg.Corroboration),
		metrics:      newMetrics(deps.Scope),
		state:        Idle,
		pending:      map[string]int{},
		sessionDays:  map[string]int{},
	}, nil
}

func (t *Tracker) UserID() string {
	return t.userID
}

func (t *Tracker) logger() *logrus.Entry {
	return log.WithField("user", t.userID)
}

// Status returns the state and the live counters.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	unsaved := 0
	for _, steps := range t.pending {
		unsaved += steps
	}

	return Status{
		State:         t.state,
		SessionID:     t.sessionID,
		Steps:         t.steps,
		Unsaved:       unsaved,
		RejectedByGPS: t.rejectedByGPS,
		Corroborating: t.state == Tracking && t.corroborator.Active(),
		Today:         t.today,
	}
}

// Evictable reports whether the tracker holds no session and no unsaved steps.
func (t *Tracker) Evictable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Idle && len(t.pending) == 0
}

// LoadToday reads the persisted total of the current day, which seeds the
// displayed count before any session starts.
func (t *Tracker) LoadToday(ctx context.Context) (int, error) {
	total, err := t.deps.Aggregator.LoadDay(ctx, t.userID, t.deps.Clock.Today())
	if err != nil {
		t.logger().WithError(err).Error("load today steps")
		t.deps.Notifier.Notify(t.userID, notification.StorageFailure, err)
		return 0, err
	}

	t.mu.Lock()
	t.today = total
	t.mu.Unlock()

	return total, nil
}

// Start asks for permissions, subscribes to the streams and enters Tracking.
// It is a no-op while already tracking.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	switch t.state {
	case Idle:
	case Tracking:
		t.mu.Unlock()
		t.logger().Debug("already tracking")
		return nil
	default:
		t.mu.Unlock()
		return ErrBusy
	}
	t.state = RequestingPermission
	t.mu.Unlock()

	granted, err := t.deps.Sensor.RequestPermission(ctx)
	if err != nil {
		return t.abort(notification.PermissionDenied, fmt.Errorf("%w: %s", ErrPermissionDenied, err))
	}
	if !granted {
		return t.abort(notification.PermissionDenied, ErrPermissionDenied)
	}

	available, err := t.deps.Sensor.IsAvailable(ctx)
	if err != nil || !available {
		return t.abort(notification.SensorUnavailable, ErrSensorUnavailable)
	}

	corroborate := t.requestLocation(ctx)

	t.mu.Lock()
	t.state = Subscribing
	t.pipeline.Reset()
	t.corroborator.Reset()
	t.sessionID = uuid.New().String()
	t.startedAt = t.deps.Clock.NowMillis()
	t.steps = 0
	t.rejectedByGPS = 0
	t.acceptedAt = nil
	t.sessionDays = map[string]int{}
	t.mu.Unlock()

	motionSub, err := t.deps.Sensor.Subscribe(t.onSample, t.cfg.SampleInterval)
	if err != nil {
		return t.abort(notification.SensorUnavailable, fmt.Errorf("%w: %s", ErrSensorUnavailable, err))
	}

	var locationSub Subscription
	if corroborate {
		locationSub, err = t.deps.Location.Watch(t.onFix, t.cfg.LocationInterval)
		if err != nil {
			t.logger().WithError(err).Warn("location watch failed, steps are not corroborated")
			locationSub = nil
		} else {
			t.corroborator.Enable()
		}
	}

	t.mu.Lock()
	t.motionSub = motionSub
	t.locationSub = locationSub
	t.state = Tracking
	sessionID := t.sessionID
	t.mu.Unlock()

	t.metrics.sessions.Inc(1)
	t.logger().WithFields(logrus.Fields{
		"session":     sessionID,
		"strategy":    t.pipeline.Strategy(),
		"corroborate": locationSub != nil,
	}).Info("tracking started")

	return nil
}

// requestLocation reports whether location fixes can corroborate this
// session. A denial degrades corroboration to a pass-through.
func (t *Tracker) requestLocation(ctx context.Context) bool {
	if t.deps.Location == nil || !t.cfg.Corroboration.Enabled {
		return false
	}

	granted, err := t.deps.Location.RequestPermission(ctx)
	if err != nil || !granted {
		if err == nil {
			err = ErrLocationPermissionDenied
		}
		t.logger().WithError(err).Info("location unavailable, steps are not corroborated")
		t.deps.Notifier.Notify(t.userID, notification.LocationPermissionDenied, err)
		return false
	}
	return true
}

func (t *Tracker) abort(kind notification.Kind, err error) error {
	t.mu.Lock()
	t.state = Idle
	t.mu.Unlock()

	t.logger().WithError(err).Warn("tracking not started")
	t.deps.Notifier.Notify(t.userID, kind, err)
	return err
}

func (t *Tracker) onSample(sample schema.AccelerationSample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Tracking {
		return
	}
	t.metrics.samples.Inc(1)

	now := sample.Timestamp
	if now <= 0 {
		now = t.deps.Clock.NowMillis()
	}

	reading, candidate := t.pipeline.Observe(sample, now)
	if !candidate {
		return
	}

	if !t.corroborator.Plausible() {
		t.rejectedByGPS++
		t.metrics.rejectedByGPS.Inc(1)
		t.logger().WithField("timestamp", now).Debug("step rejected by gps")
		return
	}

	t.pipeline.Accept(reading, now)
	t.corroborator.Accepted()

	day := t.deps.Clock.Today()
	t.steps++
	t.pending[day]++
	t.sessionDays[day]++
	t.acceptedAt = append(t.acceptedAt, now)

	t.metrics.accepted.Inc(1)
	t.metrics.sessionSteps.Update(float64(t.steps))
}

func (t *Tracker) onFix(fix schema.LocationFix) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Tracking {
		return
	}
	t.corroborator.Update(fix)
}

// Stop unsubscribes the streams, then merges the accepted steps into the
// daily history. When the previous flush failed, calling Stop again while
// idle retries it.
func (t *Tracker) Stop(ctx context.Context) (*Summary, error) {
	t.mu.Lock()
	switch t.state {
	case Tracking:
	case Idle:
		if len(t.pending) == 0 {
			t.mu.Unlock()
			return nil, ErrNotTracking
		}
		t.state = Stopping
		last := t.last
		t.mu.Unlock()
		t.logger().Info("retry saving steps")
		return t.flush(ctx, last)
	default:
		t.mu.Unlock()
		return nil, ErrBusy
	}

	t.state = Stopping
	motionSub, locationSub := t.motionSub, t.locationSub
	t.motionSub, t.locationSub = nil, nil
	t.mu.Unlock()

	// no callback may change the counters once the streams are gone
	if motionSub != nil {
		motionSub.Unsubscribe()
	}
	if locationSub != nil {
		locationSub.Unsubscribe()
	}

	t.mu.Lock()
	summary := t.summarize()
	t.last = summary
	t.corroborator.Reset()
	t.mu.Unlock()

	t.record(summary)

	return t.flush(ctx, summary)
}

func (t *Tracker) summarize() *Summary {
	days := make(map[string]int, len(t.sessionDays))
	for day, steps := range t.sessionDays {
		days[day] = steps
	}

	cadenceSPM, deviation := cadence(t.acceptedAt)

	return &Summary{
		SessionID:            t.sessionID,
		Strategy:             t.pipeline.Strategy(),
		Steps:                t.steps,
		RejectedByGPS:        t.rejectedByGPS,
		Days:                 days,
		StartedAt:            t.startedAt,
		EndedAt:              t.deps.Clock.NowMillis(),
		CadenceSPM:           cadenceSPM,
		IntervalStdDevMs:     deviation,
		LocationCorroborated: t.corroborator.Active(),
	}
}

func (t *Tracker) record(summary *Summary) {
	if t.deps.Sessions == nil || summary == nil {
		return
	}

	if err := t.deps.Sessions.RecordSession(summary.Record(t.userID)); err != nil && err != store.ErrSessionRecorded {
		t.logger().WithError(err).WithField("session", summary.SessionID).Warn("record session summary")
	}
}

func (t *Tracker) flush(ctx context.Context, summary *Summary) (*Summary, error) {
	t.mu.Lock()
	increments := make(map[string]int, len(t.pending))
	for day, steps := range t.pending {
		increments[day] = steps
	}
	t.mu.Unlock()

	total, err := t.deps.Aggregator.FlushDays(ctx, t.userID, increments, t.deps.Clock.Today())

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = Idle

	if err != nil {
		t.metrics.flushFailures.Inc(1)
		t.logger().WithError(err).WithField("increments", increments).Error("save steps")
		t.deps.Notifier.Notify(t.userID, notification.StorageFailure, err)
		return copySummary(summary), fmt.Errorf("%w: %s", ErrFlushFailed, err)
	}

	t.pending = map[string]int{}
	t.steps = 0
	t.today = total
	t.metrics.sessionSteps.Update(0)

	result := copySummary(summary)
	if result != nil {
		result.TodayTotal = total
	}

	t.logger().WithFields(logrus.Fields{
		"increments": increments,
		"today":      total,
	}).Info("tracking stopped")

	return result, nil
}

func copySummary(s *Summary) *Summary {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
