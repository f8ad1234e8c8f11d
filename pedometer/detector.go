package pedometer

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/healthtrack-app/healthtrack-api/schema"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "pedometer")
}

// Reading is one sensor tick as seen by a detector.
type Reading struct {
	Raw      schema.AccelerationSample
	Smoothed schema.AccelerationSample
}

// Detector decides whether a reading is a step. Detection is split in two so
// that a secondary signal can veto a candidate before the detector commits it.
type Detector interface {
	Name() string

	// Candidate reports whether r qualifies as a step at now (milliseconds).
	Candidate(r Reading, now int64) bool

	// Accept commits a candidate as a step event.
	Accept(r Reading, now int64)

	// Reset restores the state of a fresh session.
	Reset()
}

// Magnitude computes the euclidean norm of a sample.
func Magnitude(s schema.AccelerationSample) float64 {
	return floats.Norm([]float64{s.X, s.Y, s.Z}, 2)
}

// MagnitudeDetector detects steps from the change of the smoothed acceleration
// magnitude, gated by vertical and planar bounds.
type MagnitudeDetector struct {
	cfg MagnitudeConfig

	last         *schema.AccelerationSample
	lastAccepted int64
}

func NewMagnitudeDetector(cfg MagnitudeConfig) *MagnitudeDetector {
	return &MagnitudeDetector{cfg: cfg}
}

func (d *MagnitudeDetector) Name() string {
	return StrategyMagnitude
}

func (d *MagnitudeDetector) Candidate(r Reading, now int64) bool {
	current := r.Smoothed
	defer func() {
		d.last = &current
	}()

	if d.last == nil {
		return false
	}

	delta := math.Abs(Magnitude(current) - Magnitude(*d.last))
	sinceLast := now - d.lastAccepted

	isStep := delta > d.cfg.StepThreshold &&
		sinceLast > d.cfg.MinStepInterval.Milliseconds() &&
		current.Z > d.cfg.MinVertical &&
		math.Abs(current.X) < d.cfg.MaxLateral &&
		math.Abs(current.Y) < d.cfg.MaxLateral

	if !isStep {
		log.WithFields(logrus.Fields{
			"delta":           delta,
			"time_since_last": sinceLast,
			"x":               current.X,
			"y":               current.Y,
			"z":               current.Z,
		}).Debug("no step detected")
	}

	return isStep
}

func (d *MagnitudeDetector) Accept(_ Reading, now int64) {
	if now > d.lastAccepted {
		d.lastAccepted = now
	}
}

func (d *MagnitudeDetector) Reset() {
	d.last = nil
	d.lastAccepted = 0
}

// AxisDetector detects steps from raw vertical axis crossings.
type AxisDetector struct {
	cfg AxisConfig

	lastY        float64
	lastAccepted int64
}

func NewAxisDetector(cfg AxisConfig) *AxisDetector {
	return &AxisDetector{cfg: cfg}
}

func (d *AxisDetector) Name() string {
	return StrategyAxis
}

func (d *AxisDetector) Candidate(r Reading, now int64) bool {
	return math.Abs(r.Raw.Y-d.lastY) > d.cfg.Threshold &&
		now-d.lastAccepted > d.cfg.MinStepInterval.Milliseconds()
}

func (d *AxisDetector) Accept(r Reading, now int64) {
	d.lastY = r.Raw.Y
	if now > d.lastAccepted {
		d.lastAccepted = now
	}
}

func (d *AxisDetector) Reset() {
	d.lastY = 0
	d.lastAccepted = 0
}

// Pipeline runs the smoother ahead of a detector.
type Pipeline struct {
	smoother *Smoother
	detector Detector
}

// NewPipeline builds the smoother and the configured detector strategy
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var detector Detector
	switch cfg.Strategy {
	case StrategyAxis:
		detector = NewAxisDetector(cfg.Axis)
	default:
		detector = NewMagnitudeDetector(cfg.Magnitude)
	}

	return &Pipeline{
		smoother: NewSmoother(cfg.SmoothingFactor),
		detector: detector,
	}, nil
}

// Observe smooths raw and asks the detector for a decision.
func (p *Pipeline) Observe(raw schema.AccelerationSample, now int64) (Reading, bool) {
	r := Reading{
		Raw:      raw,
		Smoothed: p.smoother.Next(raw),
	}
	return r, p.detector.Candidate(r, now)
}

func (p *Pipeline) Accept(r Reading, now int64) {
	p.detector.Accept(r, now)
}

func (p *Pipeline) Strategy() string {
	return p.detector.Name()
}

func (p *Pipeline) Reset() {
	p.smoother.Reset()
	p.detector.Reset()
}

// interval converts a millisecond count from config files.
func interval(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
