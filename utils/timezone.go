package utils

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

var (
	locationsLock sync.Mutex
	locations     = map[string]*time.Location{}
)

func init() {
	for i := time.Duration(-12); i < 15; i++ {
		name := fmt.Sprintf("GMT%+d", i)
		locations[name] = time.FixedZone(name, int((i * time.Hour).Seconds()))
	}
}

// GetLocation returns a location of a GMT-X or GMT+X:MM format timezone.
// It returns nil for anything else.
func GetLocation(timezone string) *time.Location {
	name := strings.ToUpper(strings.TrimSpace(timezone))

	locationsLock.Lock()
	defer locationsLock.Unlock()

	if tz, ok := locations[name]; ok {
		return tz
	}

	offset, ok := parseGMTOffset(name)
	if !ok {
		return nil
	}

	// cache by offset so padded spellings share one entry
	canonical := gmtName(offset)
	if tz, ok := locations[canonical]; ok {
		return tz
	}

	tz := time.FixedZone(canonical, offset)
	locations[canonical] = tz
	return tz
}

// gmtName formats an offset in seconds as GMT+H or GMT+H:MM
func gmtName(offset int) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	hours, minutes := offset/3600, offset%3600/60
	if minutes == 0 {
		return fmt.Sprintf("GMT%s%d", sign, hours)
	}
	return fmt.Sprintf("GMT%s%d:%02d", sign, hours, minutes)
}

// parseGMTOffset reads the offset in seconds of GMT+H:MM
func parseGMTOffset(name string) (int, bool) {
	if !strings.HasPrefix(name, "GMT") || len(name) < 5 {
		return 0, false
	}

	sign := 1
	switch name[3] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, false
	}

	parts := strings.SplitN(name[4:], ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 14 {
		return 0, false
	}

	minutes := 0
	if len(parts) == 2 {
		minutes, err = strconv.Atoi(parts[1])
		if err != nil || minutes < 0 || minutes >= 60 {
			return 0, false
		}
	}

	return sign * (hours*3600 + minutes*60), true
}

// DateKey formats the calendar day of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(schema.DateKeyLayout)
}
