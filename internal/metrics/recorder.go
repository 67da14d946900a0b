package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private Prometheus registry for one CLI run. A nil
// *Recorder is valid and records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	frames      *prometheus.CounterVec
	renderTime  *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chaosmap_map_evaluations_total",
			Help: "Number of recurrence evaluations performed, by map.",
		}, []string{"map"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chaosmap_frames_rendered_total",
			Help: "Number of image frames rendered, by artifact kind.",
		}, []string{"kind"}),
		renderTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chaosmap_frame_render_seconds",
			Help:    "Time spent rendering a single frame.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
	}
	r.registry.MustRegister(r.evaluations, r.frames, r.renderTime)
	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// AddEvaluations counts n map applications.
func (r *Recorder) AddEvaluations(mapName string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.evaluations.WithLabelValues(mapName).Add(float64(n))
}

// ObserveFrame counts one rendered frame and its render time.
func (r *Recorder) ObserveFrame(kind string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.frames.WithLabelValues(kind).Inc()
	r.renderTime.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// WriteTextfile writes the registry in text exposition format, for the node
// exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
