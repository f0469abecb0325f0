package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/litescript/orbitnav/internal/config"
	"github.com/litescript/orbitnav/internal/render"
	"github.com/litescript/orbitnav/internal/scene"
)

func TestRunPrintWritesFrame(t *testing.T) {
	opts := scene.DefaultOptions(0, 0)
	opts.Renderer = render.New(render.FontASCII, false)

	var buf bytes.Buffer
	if err := runPrint(&buf, config.DefaultCategories(), opts, 3, time.Second/30); err != nil {
		t.Fatalf("runPrint: %v", err)
	}
	out := buf.String()
	if strings.TrimSpace(out) == "" {
		t.Fatal("expected a rendered frame")
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored renderer should not emit escape codes")
	}
}

func TestRunPrintWithoutRenderer(t *testing.T) {
	opts := scene.DefaultOptions(0, 0)
	opts.Renderer = nil

	var buf bytes.Buffer
	err := runPrint(&buf, config.DefaultCategories(), opts, 1, time.Second/30)
	if !errors.Is(err, scene.ErrNoSurface) {
		t.Fatalf("got %v, want ErrNoSurface", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q on failure", buf.String())
	}
}

func TestNewLoggerQuietInTUI(t *testing.T) {
	cfg := config.Config{LogLevel: "debug"}
	logger, err := newLogger(cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()
	// Discard still hands out a usable logger.
	logger.Info("hello")
}

func TestNewCuesSilentByDefault(t *testing.T) {
	cues := newCues(config.Config{}, nil)
	cues.Hover()
	cues.Close()
}
