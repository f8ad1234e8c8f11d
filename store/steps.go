package store

import (
	"context"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

const stepsLogPrefix = "steps"

// DateKeyFunc returns the current local date key (YYYY-MM-DD).
type DateKeyFunc func() string

// DailyAggregator owns the read-modify-write of per-user daily step history.
// The whole mapping is stored as one JSON blob, so writers are serialized
// in process and a single writer per user is assumed across processes.
type DailyAggregator struct {
	sync.Mutex
	kv          KeyValueStore
	today       DateKeyFunc
	onMalformed func(userID string, err error)
}

func NewDailyAggregator(kv KeyValueStore, today DateKeyFunc) *DailyAggregator {
	return &DailyAggregator{
		kv:    kv,
		today: today,
	}
}

// OnMalformed registers a callback for history blobs that fail to parse.
func (a *DailyAggregator) OnMalformed(fn func(userID string, err error)) {
	a.onMalformed = fn
}

// History returns the full per-day mapping of a user. A missing or malformed
// blob yields an empty history.
func (a *DailyAggregator) History(ctx context.Context, userID string) (schema.DailyStepHistory, error) {
	history := schema.DailyStepHistory{}

	data, err := a.kv.GetString(ctx, StepHistoryKey(userID))
	if err == ErrKeyNotFound {
		return history, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(data), &history); err != nil {
		log.WithField("prefix", stepsLogPrefix).
			WithField("user", userID).
			WithError(err).
			Warn("malformed step history, treated as empty")
		if a.onMalformed != nil {
			a.onMalformed(userID, err)
		}
		return schema.DailyStepHistory{}, nil
	}

	if history == nil {
		history = schema.DailyStepHistory{}
	}
	return history, nil
}

// LoadToday returns the persisted total of the current day.
func (a *DailyAggregator) LoadToday(ctx context.Context, userID string) (int, error) {
	return a.LoadDay(ctx, userID, a.today())
}

// LoadDay returns the persisted total of a given day key.
func (a *DailyAggregator) LoadDay(ctx context.Context, userID, day string) (int, error) {
	history, err := a.History(ctx, userID)
	if err != nil {
		return 0, err
	}
	return history[day], nil
}

// Flush merges the steps of a session into today's total and returns it.
func (a *DailyAggregator) Flush(ctx context.Context, userID string, steps int) (int, error) {
	today := a.today()
	return a.FlushDays(ctx, userID, map[string]int{today: steps}, today)
}

// FlushDays merges per-day increments into the history and returns the
// updated total of today. Non-positive increments are ignored.
func (a *DailyAggregator) FlushDays(ctx context.Context, userID string, increments map[string]int, today string) (int, error) {
	a.Lock()
	defer a.Unlock()

	history, err := a.History(ctx, userID)
	if err != nil {
		return 0, err
	}

	changed := false
	for day, steps := range increments {
		if steps <= 0 {
			continue
		}
		history[day] += steps
		changed = true
	}

	if !changed {
		return history[today], nil
	}

	data, err := json.Marshal(history)
	if err != nil {
		return 0, err
	}

	if err := a.kv.SetString(ctx, StepHistoryKey(userID), string(data)); err != nil {
		return 0, err
	}

	log.WithField("prefix", stepsLogPrefix).
		WithField("user", userID).
		Debugf("flushed step increments: %v", increments)

	return history[today], nil
}
