package tracker

import (
	"sync"
	"time"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

// Clock supplies millisecond time for debouncing and the local calendar day
// used to bucket accepted steps.
type Clock interface {
	NowMillis() int64
	Today() string
}

var now = time.Now

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) NowMillis() int64 {
	return now().UnixMilli()
}

func (c *SystemClock) Today() string {
	return now().In(c.loc).Format(schema.DateKeyLayout)
}

// ReplayClock follows the timestamps of recorded samples.
type ReplayClock struct {
	sync.Mutex
	loc    *time.Location
	millis int64
}

func NewReplayClock(loc *time.Location) *ReplayClock {
	if loc == nil {
		loc = time.Local
	}
	return &ReplayClock{loc: loc}
}

// Advance moves the clock forward. It never goes backwards.
func (c *ReplayClock) Advance(millis int64) {
	c.Lock()
	defer c.Unlock()
	if millis > c.millis {
		c.millis = millis
	}
}

func (c *ReplayClock) NowMillis() int64 {
	c.Lock()
	defer c.Unlock()
	return c.millis
}

func (c *ReplayClock) Today() string {
	return time.UnixMilli(c.NowMillis()).In(c.loc).Format(schema.DateKeyLayout)
}
