package logmodule

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

type reporterCapabilities struct{}

func (reporterCapabilities) Reporting() bool { return true }
func (reporterCapabilities) Tagging() bool   { return true }

// MetricsReporter writes tally metrics to logrus at debug level.
type MetricsReporter struct {
	log *logrus.Entry
}

func NewMetricsReporter(module string) *MetricsReporter {
	return &MetricsReporter{
		log: logrus.WithField("prefix", module),
	}
}

func (r *MetricsReporter) entry(name string, tags map[string]string) *logrus.Entry {
	e := r.log.WithField("metric", name)
	for k, v := range tags {
		e = e.WithField(k, v)
	}
	return e
}

func (r *MetricsReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.entry(name, tags).Debugf("counter %d", value)
}

func (r *MetricsReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.entry(name, tags).Debugf("gauge %f", value)
}

func (r *MetricsReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.entry(name, tags).Debugf("timer %s", interval)
}

func (r *MetricsReporter) ReportHistogramValueSamples(name string, tags map[string]string, _ tally.Buckets, lower, upper float64, samples int64) {
	r.entry(name, tags).Debugf("histogram [%f, %f) %d", lower, upper, samples)
}

func (r *MetricsReporter) ReportHistogramDurationSamples(name string, tags map[string]string, _ tally.Buckets, lower, upper time.Duration, samples int64) {
	r.entry(name, tags).Debugf("histogram [%s, %s) %d", lower, upper, samples)
}

func (r *MetricsReporter) Capabilities() tally.Capabilities {
	return reporterCapabilities{}
}

func (r *MetricsReporter) Flush() {}
