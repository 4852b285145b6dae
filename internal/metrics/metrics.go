// Package metrics exposes Prometheus counters for the puzzle drivers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cubeanim"

// Metrics holds every collector on its own registry.
type Metrics struct {
	Registry *prometheus.Registry

	// FaceCommands counts face commands. Labels: face, result (accepted, rejected)
	FaceCommands *prometheus.CounterVec

	// Commits counts committed turns. Labels: face, direction
	Commits *prometheus.CounterVec

	// ViewCommands counts view rotations. Labels: hint
	ViewCommands *prometheus.CounterVec

	// Frames counts frames advanced by the driver loop.
	Frames prometheus.Counter

	// FrameElapsed is the distribution of frame time handed to Advance.
	FrameElapsed prometheus.Histogram

	// Subscribers is the number of connected frame subscribers.
	Subscribers prometheus.Gauge

	// DroppedFrames counts frames not delivered to a slow subscriber.
	DroppedFrames prometheus.Counter
}

// New registers the collectors on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		FaceCommands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "face_commands_total",
			Help:      "Face rotation commands by face and result",
		}, []string{"face", "result"}),
		Commits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Committed quarter turns by face and direction",
		}, []string{"face", "direction"}),
		ViewCommands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_commands_total",
			Help:      "View rotation commands by hint",
		}, []string{"hint"}),
		Frames: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "frames_total",
			Help:      "Frames advanced by the driver loop",
		}),
		FrameElapsed: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "frame_elapsed_seconds",
			Help:      "Elapsed time handed to Advance per frame",
			Buckets:   []float64{0.004, 0.008, 0.016, 0.033, 0.05, 0.1, 0.25, 0.5},
		}),
		Subscribers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "subscribers",
			Help:      "Connected frame subscribers",
		}),
		DroppedFrames: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "driver",
			Name:      "dropped_frames_total",
			Help:      "Frames dropped for slow subscribers",
		}),
	}
}

// FaceCommand records the outcome of a face command.
func (m *Metrics) FaceCommand(face string, accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.FaceCommands.WithLabelValues(face, result).Inc()
}

// Commit records a committed turn.
func (m *Metrics) Commit(face, direction string) {
	if m == nil {
		return
	}
	m.Commits.WithLabelValues(face, direction).Inc()
}

// View records a view rotation.
func (m *Metrics) View(hint string) {
	if m == nil {
		return
	}
	m.ViewCommands.WithLabelValues(hint).Inc()
}

// Frame records one advanced frame.
func (m *Metrics) Frame(elapsedSeconds float64) {
	if m == nil {
		return
	}
	m.Frames.Inc()
	m.FrameElapsed.Observe(elapsedSeconds)
}

// SubscriberAdded and SubscriberRemoved track connected subscribers.
func (m *Metrics) SubscriberAdded() {
	if m != nil {
		m.Subscribers.Inc()
	}
}

func (m *Metrics) SubscriberRemoved() {
	if m != nil {
		m.Subscribers.Dec()
	}
}

// FrameDropped records a frame not delivered to a subscriber.
func (m *Metrics) FrameDropped() {
	if m != nil {
		m.DroppedFrames.Inc()
	}
}
