package geo

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

const (
	EarthRadiusMeters = 6371000

	DefaultStepDistance = 0.5
	DefaultLeniency     = 0.3
)

var log = logrus.WithField("prefix", "geo")

// HaversineMeters returns the great-circle distance between two fixes.
func HaversineMeters(from, to schema.LocationFix) float64 {
	toRad := func(deg float64) float64 {
		return deg * math.Pi / 180
	}

	dLat := toRad(to.Latitude - from.Latitude)
	dLon := toRad(to.Longitude - from.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(from.Latitude))*math.Cos(toRad(to.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// IsPlausibleStep reports whether the device moved far enough between two
// fixes for a step to be believable. Missing or invalid fixes never block a
// step. minDistanceMeters is the nominal stride and only the default leniency
// fraction of it is required.
func IsPlausibleStep(newFix, lastFix *schema.LocationFix, minDistanceMeters float64) bool {
	return isPlausibleStep(newFix, lastFix, minDistanceMeters*DefaultLeniency)
}

func isPlausibleStep(newFix, lastFix *schema.LocationFix, required float64) bool {
	if newFix == nil || lastFix == nil {
		log.Debug("gps check skipped, no location data")
		return true
	}

	if !newFix.Valid() || !lastFix.Valid() {
		log.Debug("gps check skipped, invalid location data")
		return true
	}

	distance := HaversineMeters(*lastFix, *newFix)
	valid := distance >= required
	log.WithFields(logrus.Fields{
		"distance": distance,
		"required": required,
		"valid":    valid,
	}).Debug("gps validation result")

	return valid
}

type Config struct {
	Enabled      bool
	StepDistance float64
	Leniency     float64
}

var DefaultConfig = Config{
	Enabled:      true,
	StepDistance: DefaultStepDistance,
	Leniency:     DefaultLeniency,
}

// ConfigFromViper reads `corroboration.*` keys with defaults.
func ConfigFromViper() Config {
	cfg := DefaultConfig
	if viper.IsSet("corroboration.enabled") {
		cfg.Enabled = viper.GetBool("corroboration.enabled")
	}
	if viper.IsSet("corroboration.step_distance") {
		cfg.StepDistance = viper.GetFloat64("corroboration.step_distance")
	}
	if viper.IsSet("corroboration.leniency") {
		cfg.Leniency = viper.GetFloat64("corroboration.leniency")
	}
	return cfg
}

// Corroborator keeps the latest fix of a location stream and the fix that was
// current when the last step was accepted. Fixes arrive independently of
// motion samples, so it is safe for concurrent use.
type Corroborator struct {
	sync.Mutex
	cfg Config

	enabled bool
	latest  *schema.LocationFix
	anchor  *schema.LocationFix
}

func NewCorroborator(cfg Config) *Corroborator {
	return &Corroborator{cfg: cfg}
}

// Enable switches corroboration on for a session that has location access.
func (c *Corroborator) Enable() {
	c.Lock()
	defer c.Unlock()
	c.enabled = c.cfg.Enabled
}

// Update records a fix delivered by the location stream.
func (c *Corroborator) Update(fix schema.LocationFix) {
	c.Lock()
	defer c.Unlock()
	c.latest = &fix
}

// Plausible checks whether the device moved far enough since the last
// accepted step. It passes whenever corroboration is off or location data is
// missing.
func (c *Corroborator) Plausible() bool {
	c.Lock()
	defer c.Unlock()

	if !c.enabled {
		return true
	}
	return isPlausibleStep(c.latest, c.anchor, c.cfg.StepDistance*c.cfg.Leniency)
}

// Accepted moves the anchor to the latest fix after a step is counted.
func (c *Corroborator) Accepted() {
	c.Lock()
	defer c.Unlock()
	c.anchor = c.latest
}

// Active reports whether candidates are currently checked against location.
func (c *Corroborator) Active() bool {
	c.Lock()
	defer c.Unlock()
	return c.enabled
}

// Reset disables corroboration and forgets all fixes.
func (c *Corroborator) Reset() {
	c.Lock()
	defer c.Unlock()
	c.enabled = false
	c.latest = nil
	c.anchor = nil
}
