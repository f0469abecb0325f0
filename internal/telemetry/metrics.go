// Package telemetry exposes widget counters to Prometheus.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the widget's collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Frames          prometheus.Counter
	HitTests        *prometheus.CounterVec
	ZoomTransitions *prometheus.CounterVec
	MomentumFrames  prometheus.Counter
	Satellites      prometheus.Gauge
}

// New registers the widget metrics against reg, defaulting to the global
// registry when nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	m := &Metrics{
		gatherer: gatherer,
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbitnav_frames_total",
			Help: "Frames rendered by the render loop.",
		}),
		HitTests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orbitnav_hit_tests_total",
			Help: "Pointer hit-tests, labeled executed or throttled.",
		}, []string{"result"}),
		ZoomTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orbitnav_zoom_transitions_total",
			Help: "Zoom state machine transitions, labeled by the state entered.",
		}, []string{"state"}),
		MomentumFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orbitnav_momentum_frames_total",
			Help: "Idle frames in which camera momentum moved the camera.",
		}),
		Satellites: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orbitnav_satellites",
			Help: "Satellites placed around the hub.",
		}),
	}

	for name, c := range map[string]prometheus.Collector{
		"orbitnav_frames_total":           m.Frames,
		"orbitnav_hit_tests_total":        m.HitTests,
		"orbitnav_zoom_transitions_total": m.ZoomTransitions,
		"orbitnav_momentum_frames_total":  m.MomentumFrames,
		"orbitnav_satellites":             m.Satellites,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return m, nil
}

// FrameRendered counts one rendered frame.
func (m *Metrics) FrameRendered() {
	if m == nil {
		return
	}
	m.Frames.Inc()
}

// AddHitTests adds executed and throttled hit-test deltas.
func (m *Metrics) AddHitTests(executed, throttled uint64) {
	if m == nil {
		return
	}
	if executed > 0 {
		m.HitTests.WithLabelValues("executed").Add(float64(executed))
	}
	if throttled > 0 {
		m.HitTests.WithLabelValues("throttled").Add(float64(throttled))
	}
}

// ZoomEntered counts a transition into state.
func (m *Metrics) ZoomEntered(state string) {
	if m == nil {
		return
	}
	m.ZoomTransitions.WithLabelValues(state).Inc()
}

// MomentumFrame counts a frame moved by momentum.
func (m *Metrics) MomentumFrame() {
	if m == nil {
		return
	}
	m.MomentumFrames.Inc()
}

// SetSatellites records the satellite count.
func (m *Metrics) SetSatellites(n int) {
	if m == nil {
		return
	}
	m.Satellites.Set(float64(n))
}

// Handler exposes a /metrics handler for the registry the metrics live in.
func (m *Metrics) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if m != nil && m.gatherer != nil {
		gatherer = m.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve exposes gatherer on addr at /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		return nil
	}
}
