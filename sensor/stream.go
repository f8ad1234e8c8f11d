package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/healthtrack-app/healthtrack-api/schema"
	"github.com/healthtrack-app/healthtrack-api/tracker"
)

var log = logrus.WithField("prefix", "sensor")

// Capabilities are declared by a device when it asks to start tracking.
type Capabilities struct {
	MotionPermission   bool `json:"motion_permission"`
	LocationPermission bool `json:"location_permission"`
	MotionAvailable    bool `json:"motion_available"`
}

// Stream fans out the readings pushed by one device to the subscribers of
// its motion and location sources. Deliveries of a source are serialized
// and happen in publish order.
type Stream struct {
	mu   sync.Mutex
	caps Capabilities

	nextID int

	motionDelivery sync.Mutex
	motionSubs     map[int]func(schema.AccelerationSample)

	locationDelivery sync.Mutex
	locationSubs     map[int]func(schema.LocationFix)
}

func NewStream() *Stream {
	return &Stream{
		motionSubs:   map[int]func(schema.AccelerationSample){},
		locationSubs: map[int]func(schema.LocationFix){},
	}
}

// Declare replaces the capabilities of the device.
func (s *Stream) Declare(caps Capabilities) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caps = caps
}

func (s *Stream) capabilities() Capabilities {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps
}

// Motion returns the accelerometer view of the stream.
func (s *Stream) Motion() tracker.MotionSensor {
	return &motionSource{s}
}

// Location returns the positioning view of the stream.
func (s *Stream) Location() tracker.LocationProvider {
	return &locationSource{s}
}

// PublishSamples delivers samples to every motion subscriber in order.
// It returns the number of samples that reached at least one subscriber.
func (s *Stream) PublishSamples(samples ...schema.AccelerationSample) int {
	s.motionDelivery.Lock()
	defer s.motionDelivery.Unlock()

	s.mu.Lock()
	subs := make([]func(schema.AccelerationSample), 0, len(s.motionSubs))
	for _, cb := range s.motionSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	if len(subs) == 0 {
		log.WithField("samples", len(samples)).Debug("no motion subscriber, samples dropped")
		return 0
	}

	for _, sample := range samples {
		for _, cb := range subs {
			cb(sample)
		}
	}
	return len(samples)
}

// PublishFixes delivers location fixes to every location subscriber.
func (s *Stream) PublishFixes(fixes ...schema.LocationFix) int {
	s.locationDelivery.Lock()
	defer s.locationDelivery.Unlock()

	s.mu.Lock()
	subs := make([]func(schema.LocationFix), 0, len(s.locationSubs))
	for _, cb := range s.locationSubs {
		subs = append(subs, cb)
	}
	s.mu.Unlock()

	if len(subs) == 0 {
		return 0
	}

	for _, fix := range fixes {
		for _, cb := range subs {
			cb(fix)
		}
	}
	return len(fixes)
}

// Subscribers returns the number of motion and location subscribers.
func (s *Stream) Subscribers() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.motionSubs), len(s.locationSubs)
}

type subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe waits for an in-flight delivery to finish.
func (sub *subscription) Unsubscribe() {
	sub.once.Do(sub.cancel)
}

type motionSource struct {
	*Stream
}

func (m *motionSource) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return m.capabilities().MotionPermission, nil
}

func (m *motionSource) IsAvailable(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return m.capabilities().MotionAvailable, nil
}

func (m *motionSource) Subscribe(callback func(schema.AccelerationSample), interval time.Duration) (tracker.Subscription, error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.motionSubs[id] = callback
	m.mu.Unlock()

	log.WithField("interval", interval).Debug("motion subscribed")

	return &subscription{cancel: func() {
		m.motionDelivery.Lock()
		defer m.motionDelivery.Unlock()
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.motionSubs, id)
	}}, nil
}

type locationSource struct {
	*Stream
}

func (l *locationSource) RequestPermission(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return l.capabilities().LocationPermission, nil
}

func (l *locationSource) Watch(callback func(schema.LocationFix), interval time.Duration) (tracker.Subscription, error) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.locationSubs[id] = callback
	l.mu.Unlock()

	log.WithField("interval", interval).Debug("location watched")

	return &subscription{cancel: func() {
		l.locationDelivery.Lock()
		defer l.locationDelivery.Unlock()
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locationSubs, id)
	}}, nil
}
