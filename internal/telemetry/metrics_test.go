package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	m.FrameRendered()
	m.FrameRendered()
	m.AddHitTests(3, 7)
	m.AddHitTests(0, 0)
	m.ZoomEntered("ZoomingIn")
	m.MomentumFrame()
	m.SetSatellites(5)

	if got := testutil.ToFloat64(m.Frames); got != 2 {
		t.Errorf("frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.HitTests.WithLabelValues("executed")); got != 3 {
		t.Errorf("executed = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.HitTests.WithLabelValues("throttled")); got != 7 {
		t.Errorf("throttled = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.ZoomTransitions.WithLabelValues("ZoomingIn")); got != 1 {
		t.Errorf("zoom transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.MomentumFrames); got != 1 {
		t.Errorf("momentum frames = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Satellites); got != 5 {
		t.Errorf("satellites = %v, want 5", got)
	}
}

func TestNewRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := New(reg); err == nil {
		t.Error("second registration on the same registry should fail")
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.FrameRendered()
	m.AddHitTests(1, 1)
	m.ZoomEntered("Idle")
	m.MomentumFrame()
	m.SetSatellites(3)
}

func TestHandlerExposesCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}
	m.FrameRendered()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "orbitnav_frames_total 1") {
		t.Errorf("body missing frame counter:\n%s", rr.Body.String())
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", prometheus.NewRegistry())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not stop after cancel")
	}
}

func TestServeBadAddress(t *testing.T) {
	err := Serve(context.Background(), "not-an-address", prometheus.NewRegistry())
	if err == nil {
		t.Error("expected listen error")
	}
}
