// Command orbitnav is a terminal orbital navigation widget: categories
// circle a hub as labelled satellites, and selecting one flies the camera
// in to show its details.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"

	"github.com/litescript/orbitnav/internal/audio"
	"github.com/litescript/orbitnav/internal/config"
	"github.com/litescript/orbitnav/internal/logging"
	"github.com/litescript/orbitnav/internal/orbit"
	"github.com/litescript/orbitnav/internal/render"
	"github.com/litescript/orbitnav/internal/scene"
	"github.com/litescript/orbitnav/internal/telemetry"
	"github.com/litescript/orbitnav/internal/ui"
	"github.com/litescript/orbitnav/internal/version"
)

// Headless defaults
const (
	defaultPrintWidth  = 80
	defaultPrintHeight = 24
	defaultPrintFrames = 30
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbitnav: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "Frame rate (10-120)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append logs to this file")
	flag.StringVar(&cfg.LabelFont, "font", cfg.LabelFont, "Label font (rounded, double, ascii)")
	flag.StringVar(&cfg.Categories, "categories", cfg.Categories, "Comma-separated id[:label] list")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "Play audio cues")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Audio cue volume (0-1)")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")
	flag.BoolVar(&cfg.ClampPhi, "clamp-phi", cfg.ClampPhi, "Keep the camera off the poles")
	printMode := flag.Bool("print", false, "Render frames without a TUI and print the last one")
	frames := flag.Int("frames", defaultPrintFrames, "Frames to simulate in --print mode")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()
	cfg.Normalize()

	if *showVersion {
		fmt.Printf("orbitnav %s\n", version.Version)
		return
	}

	// Set up logging
	logger, err := newLogger(cfg, *printMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbitnav: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()
	logger.Info("orbitnav %s starting, session %s", version.Version, logger.Session())

	categories, err := cfg.CategoryList()
	if err != nil {
		fmt.Fprintf(os.Stderr, "orbitnav: %v\n", err)
		os.Exit(1)
	}

	font, err := render.LoadFont(cfg.LabelFont, render.LocaleUTF8())
	if err != nil {
		logger.Warn("%v", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	metrics := startMetrics(ctx, cfg.MetricsAddr, logger)

	opts := scene.DefaultOptions(0, 0)
	opts.Camera.ClampPhi = cfg.ClampPhi
	opts.Zoom.Duration = cfg.ZoomDuration
	opts.HitRate = cfg.HitRate
	opts.Metrics = metrics
	opts.Logger = logger

	if *printMode {
		opts.Renderer = render.New(font, term.IsTerminal(int(os.Stdout.Fd())))
		if err := runPrint(os.Stdout, categories, opts, *frames, cfg.FrameInterval()); err != nil {
			fmt.Fprintf(os.Stderr, "orbitnav: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Error("no terminal attached")
		fmt.Fprintln(os.Stderr, "orbitnav: no terminal attached; use --print for headless output")
		return
	}

	opts.Renderer = render.New(font, true)
	opts.Cues = newCues(cfg, logger)

	model := ui.New(ui.Options{
		Categories:    categories,
		Scene:         opts,
		FrameInterval: cfg.FrameInterval(),
		Details:       config.DefaultDetails(),
		Logger:        logger,
	})

	// Create Bubble Tea program
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	// Run TUI (blocks until quit)
	final, err := p.Run()
	if m, ok := final.(ui.Model); ok {
		m.Dispose()
	}
	// The widget releases cues on dispose; this covers a widget that was
	// never built.
	opts.Cues.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
	logger.Info("orbitnav exiting")
}

// newLogger writes to the log file when one is set. Without one, print mode
// logs to stderr and the TUI stays quiet so the alt screen is not torn.
func newLogger(cfg config.Config, printMode bool) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.LogLevel)
	switch {
	case cfg.LogFile != "":
		return logging.Open(cfg.LogFile, level)
	case printMode:
		return logging.New(level), nil
	default:
		return logging.Discard(), nil
	}
}

func startMetrics(ctx context.Context, addr string, logger *logging.Logger) *telemetry.Metrics {
	reg := prometheus.NewRegistry()
	metrics, err := telemetry.New(reg)
	if err != nil {
		logger.Warn("metrics disabled: %v", err)
		return nil
	}
	if addr == "" {
		return metrics
	}
	go func() {
		logger.Info("serving metrics on %s", addr)
		if err := telemetry.Serve(ctx, addr, reg); err != nil {
			logger.Error("metrics server: %v", err)
		}
	}()
	return metrics
}

func newCues(cfg config.Config, logger *logging.Logger) audio.Player {
	if !cfg.Sound {
		return audio.Silent{}
	}
	sp, err := audio.NewSpeaker(cfg.Volume)
	if err != nil {
		logger.Warn("audio cues disabled: %v", err)
		return audio.Silent{}
	}
	return sp
}

// runPrint simulates frames on a synthetic clock and writes the last one.
func runPrint(w io.Writer, categories []orbit.Category, opts scene.Options, frames int, interval time.Duration) error {
	opts.Width, opts.Height = defaultPrintWidth, defaultPrintHeight
	if cols, rows, err := term.GetSize(int(os.Stdout.Fd())); err == nil && cols > 0 && rows > 1 {
		opts.Width, opts.Height = cols, rows-1
	}

	widget, err := scene.New(categories, opts)
	if errors.Is(err, scene.ErrNoSurface) {
		return fmt.Errorf("print: %w", err)
	}
	if err != nil {
		return err
	}
	defer widget.Dispose()

	if frames < 1 {
		frames = 1
	}
	now := time.Now()
	for i := 0; i < frames; i++ {
		widget.Tick(now)
		now = now.Add(interval)
	}
	_, err = fmt.Fprintln(w, widget.Frame())
	return err
}
