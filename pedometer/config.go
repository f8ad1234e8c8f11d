package pedometer

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StrategyMagnitude = "magnitude"
	StrategyAxis      = "axis"
)

var ErrInvalidConfig = fmt.Errorf("invalid pedometer configuration")

// MagnitudeConfig tunes the magnitude-delta detector.
type MagnitudeConfig struct {
	StepThreshold   float64
	MinStepInterval time.Duration
	MinVertical     float64
	MaxLateral      float64
}

// AxisConfig tunes the single axis detector. Recordings showed both 500ms and
// 800ms intervals in use; 500ms is the default.
type AxisConfig struct {
	Threshold       float64
	MinStepInterval time.Duration
}

type Config struct {
	Strategy        string
	SmoothingFactor float64
	Magnitude       MagnitudeConfig
	Axis            AxisConfig
}

var DefaultMagnitudeConfig = MagnitudeConfig{
	StepThreshold:   0.8,
	MinStepInterval: 200 * time.Millisecond,
	MinVertical:     0.5,
	MaxLateral:      1.5,
}

var DefaultAxisConfig = AxisConfig{
	Threshold:       0.2,
	MinStepInterval: 500 * time.Millisecond,
}

func DefaultConfig() Config {
	return Config{
		Strategy:        StrategyMagnitude,
		SmoothingFactor: DefaultSmoothingFactor,
		Magnitude:       DefaultMagnitudeConfig,
		Axis:            DefaultAxisConfig,
	}
}

// Validate checks the strategy name and the ranges of the tunables.
func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyMagnitude, StrategyAxis:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, c.Strategy)
	}

	if c.SmoothingFactor <= 0 || c.SmoothingFactor >= 1 {
		return fmt.Errorf("%w: smoothing factor %v not in (0,1)", ErrInvalidConfig, c.SmoothingFactor)
	}

	if c.Magnitude.StepThreshold <= 0 || c.Magnitude.MinStepInterval <= 0 || c.Magnitude.MaxLateral <= 0 {
		return fmt.Errorf("%w: magnitude thresholds must be positive", ErrInvalidConfig)
	}

	if c.Axis.Threshold <= 0 || c.Axis.MinStepInterval <= 0 {
		return fmt.Errorf("%w: axis thresholds must be positive", ErrInvalidConfig)
	}

	return nil
}

// ConfigFromViper reads `pedometer.*` keys, falling back to the defaults for
// anything unset.
func ConfigFromViper() Config {
	cfg := DefaultConfig()

	if viper.IsSet("pedometer.strategy") {
		cfg.Strategy = viper.GetString("pedometer.strategy")
	}
	if viper.IsSet("pedometer.smoothing_factor") {
		cfg.SmoothingFactor = viper.GetFloat64("pedometer.smoothing_factor")
	}

	if viper.IsSet("pedometer.magnitude.step_threshold") {
		cfg.Magnitude.StepThreshold = viper.GetFloat64("pedometer.magnitude.step_threshold")
	}
	if viper.IsSet("pedometer.magnitude.min_step_interval_ms") {
		cfg.Magnitude.MinStepInterval = interval(viper.GetInt64("pedometer.magnitude.min_step_interval_ms"))
	}
	if viper.IsSet("pedometer.magnitude.min_vertical") {
		cfg.Magnitude.MinVertical = viper.GetFloat64("pedometer.magnitude.min_vertical")
	}
	if viper.IsSet("pedometer.magnitude.max_lateral") {
		cfg.Magnitude.MaxLateral = viper.GetFloat64("pedometer.magnitude.max_lateral")
	}

	if viper.IsSet("pedometer.axis.threshold") {
		cfg.Axis.Threshold = viper.GetFloat64("pedometer.axis.threshold")
	}
	if viper.IsSet("pedometer.axis.min_step_interval_ms") {
		cfg.Axis.MinStepInterval = interval(viper.GetInt64("pedometer.axis.min_step_interval_ms"))
	}

	return cfg
}
