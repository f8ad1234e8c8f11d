package pedometer

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

func smoothed(x, y, z float64) Reading {
	s := schema.AccelerationSample{X: x, Y: y, Z: z}
	return Reading{Raw: s, Smoothed: s}
}

// observe runs the two step decision the way the tracker does, without any veto.
func observe(d Detector, r Reading, now int64) bool {
	if d.Candidate(r, now) {
		d.Accept(r, now)
		return true
	}
	return false
}

func TestMagnitudeDetectorFirstReadingIsNotAStep(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	assert.False(t, d.Candidate(smoothed(0, 0, 5), 1000))
}

func TestMagnitudeDetectorBasicSession(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	assert.False(t, observe(d, smoothed(0, 0, 1.6), 1000))

	steps := 0
	now := int64(1000)
	for i := 0; i < 10; i++ {
		now += 300
		z := 0.6
		if i%2 == 1 {
			z = 1.6
		}
		if observe(d, smoothed(0, 0, z), now) {
			steps++
		}
	}
	assert.Equal(t, 10, steps)
}

func TestMagnitudeDetectorRejectsFastDoubleTap(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	observe(d, smoothed(0, 0, 1.6), 1000)

	assert.True(t, observe(d, smoothed(0, 0, 0.6), 1300))
	assert.False(t, observe(d, smoothed(0, 0, 1.6), 1350))
}

func TestMagnitudeDetectorAxisGates(t *testing.T) {
	cases := []struct {
		name    string
		last    Reading
		current Reading
	}{
		{"small delta", smoothed(0, 0, 1.0), smoothed(0, 0, 1.5)},
		{"low vertical", smoothed(0, 0, 1.5), smoothed(0, 0, 0.4)},
		{"lateral x", smoothed(0, 0, 0.6), smoothed(1.6, 0, 0.6)},
		{"lateral y", smoothed(0, 0, 0.6), smoothed(0, -1.6, 0.6)},
	}

	for _, c := range cases {
		d := NewMagnitudeDetector(DefaultMagnitudeConfig)
		d.Candidate(c.last, 1000)
		assert.False(t, d.Candidate(c.current, 2000), c.name)
	}
}

func TestMagnitudeDetectorAlwaysKeepsLastSample(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	d.Candidate(smoothed(0, 0, 1.6), 1000)

	// rejected by lateral motion, but it still becomes the reference
	assert.False(t, d.Candidate(smoothed(1.6, 0, 3.0), 1300))
	assert.False(t, d.Candidate(smoothed(0, 0, 3.1), 1600))
}

func TestMagnitudeDetectorDebounceInvariant(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	observe(d, smoothed(0, 0, 0.6), 0)

	var accepted []int64
	now := int64(0)
	for i := 0; i < 200; i++ {
		now += 35
		z := 0.6
		if i%2 == 0 {
			z = 2.0
		}
		if observe(d, smoothed(0, 0, z), now) {
			accepted = append(accepted, now)
		}
	}

	assert.NotEmpty(t, accepted)
	for i := 1; i < len(accepted); i++ {
		assert.GreaterOrEqual(t, accepted[i]-accepted[i-1], DefaultMagnitudeConfig.MinStepInterval.Milliseconds())
	}
}

func TestMagnitudeDetectorReset(t *testing.T) {
	d := NewMagnitudeDetector(DefaultMagnitudeConfig)
	observe(d, smoothed(0, 0, 1.6), 1000)
	assert.True(t, observe(d, smoothed(0, 0, 0.6), 1300))

	d.Reset()
	assert.False(t, d.Candidate(smoothed(0, 0, 1.6), 1400), "no reference after reset")
	assert.True(t, d.Candidate(smoothed(0, 0, 0.6), 1450), "debounce restarts after reset")
}

func TestMagnitudeDetectorCustomInterval(t *testing.T) {
	cfg := DefaultMagnitudeConfig
	cfg.MinStepInterval = 800 * time.Millisecond
	d := NewMagnitudeDetector(cfg)

	observe(d, smoothed(0, 0, 1.6), 1000)
	assert.True(t, observe(d, smoothed(0, 0, 0.6), 1300))
	assert.False(t, observe(d, smoothed(0, 0, 1.6), 1900))
	assert.True(t, observe(d, smoothed(0, 0, 0.6), 2200))
}

func TestAxisDetector(t *testing.T) {
	d := NewAxisDetector(DefaultAxisConfig)
	raw := func(y float64) Reading {
		return Reading{Raw: schema.AccelerationSample{Y: y}}
	}

	assert.True(t, observe(d, raw(0.3), 600))
	assert.False(t, observe(d, raw(0.35), 1200), "below threshold")
	assert.True(t, observe(d, raw(0.6), 1300))
	assert.False(t, observe(d, raw(0.9), 1500), "inside refractory interval")
	assert.True(t, observe(d, raw(0.9), 1900), "reference only moves on acceptance")
}

func TestAxisDetectorUsesRawAxis(t *testing.T) {
	d := NewAxisDetector(DefaultAxisConfig)
	r := Reading{
		Raw:      schema.AccelerationSample{Y: 0.5},
		Smoothed: schema.AccelerationSample{Y: 0.1},
	}
	assert.True(t, d.Candidate(r, 1000))
}

func TestNewPipeline(t *testing.T) {
	p, err := NewPipeline(DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, StrategyMagnitude, p.Strategy())

	cfg := DefaultConfig()
	cfg.Strategy = StrategyAxis
	p, err = NewPipeline(cfg)
	assert.NoError(t, err)
	assert.Equal(t, StrategyAxis, p.Strategy())

	cfg.Strategy = "peak"
	_, err = NewPipeline(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.SmoothingFactor = 1
	_, err = NewPipeline(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPipelineSmoothsBeforeDetecting(t *testing.T) {
	p, err := NewPipeline(DefaultConfig())
	assert.NoError(t, err)

	r, candidate := p.Observe(schema.AccelerationSample{Z: 4}, 0)
	assert.False(t, candidate)
	assert.Equal(t, 4.0, r.Smoothed.Z)

	steps := 0
	now := int64(0)
	for i := 0; i < 10; i++ {
		now += 300
		z := 9.0
		if i%2 == 1 {
			z = 0
		}
		r, candidate = p.Observe(schema.AccelerationSample{Z: z, Timestamp: now}, now)
		if candidate {
			p.Accept(r, now)
			steps++
		}
	}
	assert.Equal(t, 10, steps)
}

func TestConfigFromViper(t *testing.T) {
	defer viper.Reset()

	assert.Equal(t, DefaultConfig(), ConfigFromViper())

	viper.Set("pedometer.strategy", "axis")
	viper.Set("pedometer.axis.min_step_interval_ms", 800)
	viper.Set("pedometer.magnitude.step_threshold", 1.1)

	cfg := ConfigFromViper()
	assert.Equal(t, StrategyAxis, cfg.Strategy)
	assert.Equal(t, 800*time.Millisecond, cfg.Axis.MinStepInterval)
	assert.Equal(t, 1.1, cfg.Magnitude.StepThreshold)
	assert.Equal(t, DefaultSmoothingFactor, cfg.SmoothingFactor)
}
