// Package config loads widget settings from ORBITNAV_* environment
// variables. Command-line flags are layered on top in main.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/litescript/orbitnav/internal/orbit"
)

// Frame rate bounds.
const (
	MinFPS = 10
	MaxFPS = 120
)

var (
	ErrNoCategories      = errors.New("no categories")
	ErrEmptyCategory     = errors.New("empty category id")
	ErrDuplicateCategory = errors.New("duplicate category id")
)

// Config holds every runtime setting.
type Config struct {
	FPS          int           `env:"ORBITNAV_FPS"           envDefault:"30"`
	LogLevel     string        `env:"ORBITNAV_LOG_LEVEL"     envDefault:"info"`
	LogFile      string        `env:"ORBITNAV_LOG_FILE"`
	LabelFont    string        `env:"ORBITNAV_LABEL_FONT"    envDefault:"rounded"`
	Categories   string        `env:"ORBITNAV_CATEGORIES"`
	Sound        bool          `env:"ORBITNAV_SOUND"         envDefault:"false"`
	Volume       float64       `env:"ORBITNAV_VOLUME"        envDefault:"0.4"`
	MetricsAddr  string        `env:"ORBITNAV_METRICS_ADDR"`
	ClampPhi     bool          `env:"ORBITNAV_CLAMP_PHI"     envDefault:"true"`
	HitRate      int           `env:"ORBITNAV_HIT_RATE"      envDefault:"30"`
	ZoomDuration time.Duration `env:"ORBITNAV_ZOOM_DURATION" envDefault:"1500ms"`
}

// Load parses the environment and normalizes the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps numeric settings into their supported ranges.
func (c *Config) Normalize() {
	c.FPS = clampInt(c.FPS, MinFPS, MaxFPS)
	c.HitRate = clampInt(c.HitRate, 1, MaxFPS)
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.ZoomDuration <= 0 {
		c.ZoomDuration = 1500 * time.Millisecond
	}
	c.LabelFont = strings.ToLower(strings.TrimSpace(c.LabelFont))
}

// FrameInterval returns the render loop period.
func (c Config) FrameInterval() time.Duration {
	fps := clampInt(c.FPS, MinFPS, MaxFPS)
	return time.Second / time.Duration(fps)
}

// CategoryList returns the configured categories, or the defaults when none
// are set.
func (c Config) CategoryList() ([]orbit.Category, error) {
	if strings.TrimSpace(c.Categories) == "" {
		return DefaultCategories(), nil
	}
	return ParseCategories(c.Categories)
}

// DefaultCategories returns the stock navigation entries.
func DefaultCategories() []orbit.Category {
	return []orbit.Category{
		{ID: "about", Label: "About"},
		{ID: "projects", Label: "Projects"},
		{ID: "experience", Label: "Experience"},
		{ID: "resume", Label: "Resume"},
		{ID: "stats", Label: "Stats"},
	}
}

// ParseCategories parses a comma separated list of id:label pairs. A bare
// id uses itself as the label.
func ParseCategories(s string) ([]orbit.Category, error) {
	var out []orbit.Category
	seen := make(map[string]bool)
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, label, found := strings.Cut(part, ":")
		id = strings.TrimSpace(id)
		label = strings.TrimSpace(label)
		if id == "" {
			return nil, fmt.Errorf("category %d: %w", i+1, ErrEmptyCategory)
		}
		if !found || label == "" {
			label = id
		}
		if seen[id] {
			return nil, fmt.Errorf("category %q: %w", id, ErrDuplicateCategory)
		}
		seen[id] = true
		out = append(out, orbit.Category{ID: id, Label: label})
	}
	if len(out) == 0 {
		return nil, ErrNoCategories
	}
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultDetails returns panel text for the stock categories.
func DefaultDetails() map[string]string {
	return map[string]string{
		"about":      "Who is behind the hub, what they care about and how to reach them.",
		"projects":   "Selected work, each with a short write-up and a link to the source.",
		"experience": "Roles held, teams joined and what shipped along the way.",
		"resume":     "The one-page version. Press esc to return to orbit.",
		"stats":      "Live counters from the widget itself: frames, hit-tests and zooms.",
	}
}
