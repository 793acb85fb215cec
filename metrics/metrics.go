// Package metrics counts conversion outcomes for one run and can dump them in
// the Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the run's collectors. A nil *Recorder ignores every call.
type Recorder struct {
	registry *prometheus.Registry
	files    *prometheus.CounterVec
	duration prometheus.Histogram
	lastRun  prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "iconmaker",
			Name:      "files_total",
			Help:      "Source files handled, by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "iconmaker",
			Name:      "convert_duration_seconds",
			Help:      "Time spent decoding, transforming and writing one thumbnail.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "iconmaker",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
	}
	r.registry.MustRegister(r.files, r.duration, r.lastRun)
	return r
}

// Observe counts one file with the given status. Only converted files
// contribute to the duration histogram.
func (r *Recorder) Observe(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(status).Inc()
	if status == "converted" {
		r.duration.Observe(d.Seconds())
	}
}

// Finish stamps the end of the run
func (r *Recorder) Finish(at time.Time) {
	if r == nil {
		return
	}
	r.lastRun.Set(float64(at.Unix()))
}

// Files returns the counter for status, for inspection
func (r *Recorder) Files(status string) prometheus.Counter {
	return r.files.WithLabelValues(status)
}

// WriteTextfile writes all metrics to path atomically
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "cannot write metrics to %s", path)
	}
	return nil
}
