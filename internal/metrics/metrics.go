// Package metrics exposes mining run statistics as Prometheus metrics.
//
// cminer is a batch job, so metrics are written once per run to a textfile
// (for the node_exporter textfile collector) instead of being served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/cminer/internal/miner"
)

const namespace = "cminer"

// Recorder holds the metrics for mining runs in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	runs          prometheus.Counter
	duration      prometheus.Histogram
	segments      prometheus.Gauge
	seedDiscarded prometheus.Gauge
	records       *prometheus.GaugeVec
	rejections    *prometheus.GaugeVec
	subsequences  *prometheus.GaugeVec
	rules         prometheus.Gauge
	maxSeqLength  prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		// runs counts completed mining runs.
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total completed mining runs",
		}),

		// duration measures wall time from segmentation to rule generation.
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Mining run duration in seconds",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}),

		segments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "segments",
			Help:      "Segments mined in the last run",
		}),

		seedDiscarded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "seed",
			Name:      "discarded_symbols",
			Help:      "Symbols below min support at seeding in the last run",
		}),

		// records tracks worklist traffic.
		// Labels: op (pushed, popped)
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "worklist",
			Name:      "records",
			Help:      "Suffix records pushed and popped in the last run",
		}, []string{"op"}),

		// rejections tracks why candidate extensions were dropped.
		// Labels: reason (gap, self_repeat, infrequent)
		rejections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "extension",
			Name:      "rejections",
			Help:      "Candidate extensions rejected in the last run",
		}, []string{"reason"}),

		// subsequences counts mined subsequences.
		// Labels: kind (frequent, closed)
		subsequences: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subsequences",
			Help:      "Subsequences mined in the last run",
		}, []string{"kind"}),

		rules: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rules",
			Help:      "Rules emitted in the last run",
		}),

		maxSeqLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_seq_length",
			Help:      "Length of the longest frequent subsequence in the last run",
		}),
	}

	r.registry.MustRegister(
		r.runs, r.duration, r.segments, r.seedDiscarded, r.records,
		r.rejections, r.subsequences, r.rules, r.maxSeqLength,
	)
	return r
}

// Observe records the outcome of one mining run.
func (r *Recorder) Observe(stats miner.Stats, elapsed time.Duration) {
	r.runs.Inc()
	r.duration.Observe(elapsed.Seconds())

	r.segments.Set(float64(stats.Segments))
	r.seedDiscarded.Set(float64(stats.SeedDiscarded))

	r.records.WithLabelValues("pushed").Set(float64(stats.Pushed))
	r.records.WithLabelValues("popped").Set(float64(stats.Popped))

	r.rejections.WithLabelValues("gap").Set(float64(stats.GapRejections))
	r.rejections.WithLabelValues("self_repeat").Set(float64(stats.SelfRepeatSkips))
	r.rejections.WithLabelValues("infrequent").Set(float64(stats.InfrequentExtensions))

	r.subsequences.WithLabelValues("frequent").Set(float64(stats.Frequent))
	r.subsequences.WithLabelValues("closed").Set(float64(stats.Closed))

	r.rules.Set(float64(stats.Rules))
	r.maxSeqLength.Set(float64(stats.MaxSeqLength))
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
