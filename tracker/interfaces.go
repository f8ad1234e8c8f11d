package tracker

import (
	"context"
	"time"

	"github.com/healthtrack-app/healthtrack-api/notification"
	"github.com/healthtrack-app/healthtrack-api/schema"
)

// Subscription is a handle of an active sensor or location stream.
// Unsubscribe must not return before the stream stopped calling back.
type Subscription interface {
	Unsubscribe()
}

// MotionSensor - accelerometer of a device
type MotionSensor interface {
	RequestPermission(ctx context.Context) (bool, error)
	IsAvailable(ctx context.Context) (bool, error)
	Subscribe(callback func(schema.AccelerationSample), interval time.Duration) (Subscription, error)
}

// LocationProvider - positioning service of a device
type LocationProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	Watch(callback func(schema.LocationFix), interval time.Duration) (Subscription, error)
}

// Aggregator persists the per-day step totals of a user.
type Aggregator interface {
	LoadDay(ctx context.Context, userID, day string) (int, error)
	FlushDays(ctx context.Context, userID string, increments map[string]int, today string) (int, error)
}

// Notifier receives the user facing failures of a tracker.
type Notifier interface {
	Notify(userID string, kind notification.Kind, err error)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, notification.Kind, error) {}
