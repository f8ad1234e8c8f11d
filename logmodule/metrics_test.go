package logmodule

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"
)

func findMetric(hook *test.Hook, name string) *logrus.Entry {
	for _, e := range hook.AllEntries() {
		if e.Data["metric"] == name {
			return e
		}
	}
	return nil
}

func TestMetricsReporter(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)

	r := NewMetricsReporter("metrics")
	r.ReportCounter("samples", map[string]string{"strategy": "axis"}, 7)
	r.ReportGauge("session_steps", nil, 12)

	e := findMetric(hook, "samples")
	if assert.NotNil(t, e) {
		assert.Equal(t, "counter 7", e.Message)
		assert.Equal(t, "axis", e.Data["strategy"])
		assert.Equal(t, "metrics", e.Data["prefix"])
		assert.Equal(t, logrus.DebugLevel, e.Level)
	}

	e = findMetric(hook, "session_steps")
	if assert.NotNil(t, e) {
		assert.Equal(t, "gauge 12.000000", e.Message)
	}

	assert.True(t, r.Capabilities().Reporting())
	assert.True(t, r.Capabilities().Tagging())
}

func TestMetricsReporterRootScope(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	level := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(level)

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "steps",
		Reporter: NewMetricsReporter("metrics"),
	}, 10*time.Millisecond)
	defer closer.Close()

	scope.Counter("steps_accepted").Inc(3)

	assert.Eventually(t, func() bool {
		return findMetric(hook, "steps.steps_accepted") != nil
	}, time.Second, 10*time.Millisecond)
}
