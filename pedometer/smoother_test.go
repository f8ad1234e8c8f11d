package pedometer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

func TestSmoothWithoutPrevious(t *testing.T) {
	current := schema.AccelerationSample{X: 1.5, Y: -2, Z: 9.8, Timestamp: 100}
	assert.Equal(t, current, Smooth(current, nil))
}

func TestSmoothBlendsPerAxis(t *testing.T) {
	previous := schema.AccelerationSample{X: 1, Y: 2, Z: 3, Timestamp: 100}
	current := schema.AccelerationSample{X: 6, Y: 7, Z: 8, Timestamp: 200}

	s := Smooth(current, &previous)
	assert.InDelta(t, 2.0, s.X, 1e-9)
	assert.InDelta(t, 3.0, s.Y, 1e-9)
	assert.InDelta(t, 4.0, s.Z, 1e-9)
	assert.Equal(t, int64(200), s.Timestamp)
}

func TestSmoothWithCustomFactor(t *testing.T) {
	previous := schema.AccelerationSample{X: 10}
	current := schema.AccelerationSample{X: 0}

	s := SmoothWith(0.5, current, &previous)
	assert.InDelta(t, 5.0, s.X, 1e-9)
}

func TestSmootherConstantInputDoesNotDrift(t *testing.T) {
	smoother := NewSmoother(DefaultSmoothingFactor)
	constant := schema.AccelerationSample{X: 0.3, Y: -0.4, Z: 1.2}

	for i := 0; i < 50; i++ {
		constant.Timestamp = int64(i * 100)
		s := smoother.Next(constant)
		assert.InDelta(t, constant.X, s.X, 1e-9)
		assert.InDelta(t, constant.Y, s.Y, 1e-9)
		assert.InDelta(t, constant.Z, s.Z, 1e-9)
	}
}

func TestSmootherReset(t *testing.T) {
	smoother := NewSmoother(DefaultSmoothingFactor)
	smoother.Next(schema.AccelerationSample{Z: 10})

	smoother.Reset()
	s := smoother.Next(schema.AccelerationSample{Z: 2})
	assert.Equal(t, 2.0, s.Z, "first sample after reset passes through")
}
