package schema

import (
	"github.com/paulmach/orb"
)

const (
	KeyValueCollection = "kv_store"

	// DateKeyLayout formats a local calendar day into a daily history key.
	DateKeyLayout = "2006-01-02"
)

// AccelerationSample is a single motion sensor reading. Units follow the
// device sensor mode and timestamps never decrease within a stream.
type AccelerationSample struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Timestamp int64   `json:"timestamp"`
}

// LocationFix is a WGS84 position reported by the platform location service.
type LocationFix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

// Point returns the fix as an orb point (lon, lat).
func (f LocationFix) Point() orb.Point {
	return orb.Point{f.Longitude, f.Latitude}
}

// Valid reports whether the fix carries usable coordinates.
func (f LocationFix) Valid() bool {
	if f.Latitude == 0 && f.Longitude == 0 {
		return false
	}
	return f.Latitude >= -90 && f.Latitude <= 90 && f.Longitude >= -180 && f.Longitude <= 180
}

// DailyStepHistory maps a date key (YYYY-MM-DD) to the steps accumulated on that day.
type DailyStepHistory map[string]int

// KeyValue is the document shape of the mongo backed key value store
type KeyValue struct {
	Key       string `bson:"key"`
	Value     string `bson:"value"`
	UpdatedAt int64  `bson:"updated_at"`
}
