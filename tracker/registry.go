package tracker

import (
	"context"
	"sync"
	"time"
)

// Factory builds the tracker of a user.
type Factory func(userID string) (*Tracker, error)

type registryEntry struct {
	tracker  *Tracker
	lastUsed time.Time
}

// Registry keeps one tracker per user, created on first use.
type Registry struct {
	sync.Mutex
	factory Factory
	entries map[string]*registryEntry
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory: factory,
		entries: map[string]*registryEntry{},
	}
}

// Get returns the tracker of userID, building it if needed.
func (r *Registry) Get(userID string) (*Tracker, error) {
	r.Lock()
	defer r.Unlock()

	if e, ok := r.entries[userID]; ok {
		e.lastUsed = now()
		return e.tracker, nil
	}

	t, err := r.factory(userID)
	if err != nil {
		return nil, err
	}
	r.entries[userID] = &registryEntry{tracker: t, lastUsed: now()}
	return t, nil
}

// Lookup returns the tracker of userID without building one.
func (r *Registry) Lookup(userID string) (*Tracker, bool) {
	r.Lock()
	defer r.Unlock()

	e, ok := r.entries[userID]
	if !ok {
		return nil, false
	}
	e.lastUsed = now()
	return e.tracker, true
}

// Prune drops the trackers which were not used for maxIdle and hold neither
// a session nor unsaved steps. It returns the evicted user ids.
func (r *Registry) Prune(maxIdle time.Duration) []string {
	r.Lock()
	defer r.Unlock()

	evicted := []string{}
	for userID, e := range r.entries {
		if now().Sub(e.lastUsed) < maxIdle || !e.tracker.Evictable() {
			continue
		}
		delete(r.entries, userID)
		evicted = append(evicted, userID)
	}

	if len(evicted) > 0 {
		log.WithField("users", evicted).Debug("evicted idle trackers")
	}
	return evicted
}

// PruneEvery runs Prune every maxIdle until ctx is done and hands each
// evicted user id to onEvict.
func (r *Registry) PruneEvery(ctx context.Context, maxIdle time.Duration, onEvict func(userID string)) {
	ticker := time.NewTicker(maxIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, userID := range r.Prune(maxIdle) {
				if onEvict != nil {
					onEvict(userID)
				}
			}
		}
	}
}

// Len returns the number of live trackers.
func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.entries)
}

// Shutdown stops every active session and saves its steps.
func (r *Registry) Shutdown(ctx context.Context) {
	r.Lock()
	trackers := make([]*Tracker, 0, len(r.entries))
	for _, e := range r.entries {
		trackers = append(trackers, e.tracker)
	}
	r.Unlock()

	for _, t := range trackers {
		if _, err := t.Stop(ctx); err != nil && err != ErrNotTracking {
			t.logger().WithError(err).Error("stop tracker on shutdown")
		}
	}
}
