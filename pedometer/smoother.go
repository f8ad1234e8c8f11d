package pedometer

import (
	"github.com/healthtrack-app/healthtrack-api/schema"
)

// DefaultSmoothingFactor is the weight kept from the previous smoothed sample.
const DefaultSmoothingFactor = 0.8

// Smooth applies the default exponential moving average to current.
func Smooth(current schema.AccelerationSample, previous *schema.AccelerationSample) schema.AccelerationSample {
	return SmoothWith(DefaultSmoothingFactor, current, previous)
}

// SmoothWith blends current into previous per axis:
// previous*alpha + current*(1-alpha). A nil previous returns current as is.
func SmoothWith(alpha float64, current schema.AccelerationSample, previous *schema.AccelerationSample) schema.AccelerationSample {
	if previous == nil {
		return current
	}

	return schema.AccelerationSample{
		X:         previous.X*alpha + current.X*(1-alpha),
		Y:         previous.Y*alpha + current.Y*(1-alpha),
		Z:         previous.Z*alpha + current.Z*(1-alpha),
		Timestamp: current.Timestamp,
	}
}

// Smoother keeps the rolling smoothed sample of one session.
type Smoother struct {
	alpha float64
	last  *schema.AccelerationSample
}

func NewSmoother(alpha float64) *Smoother {
	return &Smoother{alpha: alpha}
}

// Next smooths raw against the previous output and remembers the result.
func (s *Smoother) Next(raw schema.AccelerationSample) schema.AccelerationSample {
	smoothed := SmoothWith(s.alpha, raw, s.last)
	s.last = &smoothed
	return smoothed
}

// Reset drops the rolling state so the next sample passes through unsmoothed.
func (s *Smoother) Reset() {
	s.last = nil
}
