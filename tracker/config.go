package tracker

import (
	"time"

	"github.com/spf13/viper"

	"github.com/healthtrack-app/healthtrack-api/geo"
	"github.com/healthtrack-app/healthtrack-api/pedometer"
)

const (
	DefaultSampleInterval   = 100 * time.Millisecond
	DefaultLocationInterval = time.Second
)

type Config struct {
	Pedometer     pedometer.Config
	Corroboration geo.Config

	SampleInterval   time.Duration
	LocationInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Pedometer:        pedometer.DefaultConfig(),
		Corroboration:    geo.DefaultConfig,
		SampleInterval:   DefaultSampleInterval,
		LocationInterval: DefaultLocationInterval,
	}
}

// ConfigFromViper collects the pedometer, corroboration and `tracker.*` keys.
func ConfigFromViper() Config {
	cfg := Config{
		Pedometer:        pedometer.ConfigFromViper(),
		Corroboration:    geo.ConfigFromViper(),
		SampleInterval:   DefaultSampleInterval,
		LocationInterval: DefaultLocationInterval,
	}

	if d := viper.GetDuration("tracker.sample_interval"); d > 0 {
		cfg.SampleInterval = d
	}
	if d := viper.GetDuration("tracker.location_interval"); d > 0 {
		cfg.LocationInterval = d
	}
	return cfg
}
