package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30", cfg.FPS)
	}
	if cfg.HitRate != 30 {
		t.Errorf("HitRate = %d, want 30", cfg.HitRate)
	}
	if !cfg.ClampPhi {
		t.Error("ClampPhi should default to true")
	}
	if cfg.ZoomDuration != 1500*time.Millisecond {
		t.Errorf("ZoomDuration = %v", cfg.ZoomDuration)
	}
	if cfg.LabelFont != "rounded" {
		t.Errorf("LabelFont = %q", cfg.LabelFont)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORBITNAV_FPS", "500")
	t.Setenv("ORBITNAV_LABEL_FONT", " Double ")
	t.Setenv("ORBITNAV_SOUND", "true")
	t.Setenv("ORBITNAV_CLAMP_PHI", "false")
	t.Setenv("ORBITNAV_ZOOM_DURATION", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != MaxFPS {
		t.Errorf("FPS = %d, want clamp to %d", cfg.FPS, MaxFPS)
	}
	if cfg.LabelFont != "double" {
		t.Errorf("LabelFont = %q", cfg.LabelFont)
	}
	if !cfg.Sound || cfg.ClampPhi {
		t.Errorf("Sound=%v ClampPhi=%v", cfg.Sound, cfg.ClampPhi)
	}
	if cfg.ZoomDuration != 2*time.Second {
		t.Errorf("ZoomDuration = %v", cfg.ZoomDuration)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("ORBITNAV_FPS", "fast")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{FPS: 1, HitRate: 0, Volume: 3, ZoomDuration: -1}
	cfg.Normalize()
	if cfg.FPS != MinFPS || cfg.HitRate != 1 || cfg.Volume != 1 || cfg.ZoomDuration != 1500*time.Millisecond {
		t.Errorf("normalized = %+v", cfg)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (Config{FPS: 50}).FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval = %v", got)
	}
	if got := (Config{}).FrameInterval(); got != time.Second/MinFPS {
		t.Errorf("zero FPS interval = %v", got)
	}
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantIDs []string
		wantLbl []string
		wantErr error
	}{
		{"pairs", "a:Alpha, b:Beta", []string{"a", "b"}, []string{"Alpha", "Beta"}, nil},
		{"bare id", "docs", []string{"docs"}, []string{"docs"}, nil},
		{"skips blanks", "a:A,, ,b", []string{"a", "b"}, []string{"A", "b"}, nil},
		{"colon in label", "t:Time: now", []string{"t"}, []string{"Time: now"}, nil},
		{"empty id", ":Label", nil, nil, ErrEmptyCategory},
		{"duplicate", "a:One,a:Two", nil, nil, ErrDuplicateCategory},
		{"nothing", " , ", nil, nil, ErrNoCategories},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategories(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d categories, want %d", len(got), len(tt.wantIDs))
			}
			for i, c := range got {
				if c.ID != tt.wantIDs[i] || c.Label != tt.wantLbl[i] {
					t.Errorf("category %d = %+v", i, c)
				}
			}
		})
	}
}

func TestCategoryListDefaults(t *testing.T) {
	got, err := (Config{}).CategoryList()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || got[0].ID != "about" || got[4].ID != "stats" {
		t.Errorf("defaults = %+v", got)
	}
}

func TestDefaultDetailsCoverDefaults(t *testing.T) {
	details := DefaultDetails()
	for _, c := range DefaultCategories() {
		if details[c.ID] == "" {
			t.Errorf("no detail text for %q", c.ID)
		}
	}
}
