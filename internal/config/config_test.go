package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	sleigh, err := LoadSleigh("")
	if err != nil {
		t.Fatalf("LoadSleigh: %v", err)
	}
	if sleigh != DefaultSleighConfig() {
		t.Errorf("embedded sleigh config = %+v, want %+v", sleigh, DefaultSleighConfig())
	}

	jingle, err := LoadJingle("")
	if err != nil {
		t.Fatalf("LoadJingle: %v", err)
	}
	if jingle != DefaultJingleConfig() {
		t.Errorf("embedded jingle config = %+v, want %+v", jingle, DefaultJingleConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sleigh.yaml")
	data := []byte("player:\n  start_health: 4\nworld:\n  base_scroll_speed: 2.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSleigh(path)
	if err != nil {
		t.Fatalf("LoadSleigh: %v", err)
	}
	if cfg.Player.StartHealth != 4 || cfg.World.BaseScrollSpeed != 2.5 {
		t.Errorf("cfg = %+v, want start_health 4 and scroll 2.5", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadSleigh(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("player: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJingle(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "jingle.yaml"), []byte("player:\n  speed: 3.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadJingle("")
	if err != nil {
		t.Fatalf("LoadJingle: %v", err)
	}
	if cfg.Player.Speed != 3.5 {
		t.Errorf("speed = %v, want 3.5 from ./configs", cfg.Player.Speed)
	}
}

func TestApplySleighPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
		wantHealth  int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultSleighConfig()
			ApplySleighPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
			if cfg.Player.StartHealth != tt.wantHealth {
				t.Errorf("start health = %d, want %d", cfg.Player.StartHealth, tt.wantHealth)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("nightmare") != "" {
		t.Error("unknown presets should map to the config default")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0, CountdownReduction: 200},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level(0) = %v, want 0.5", got)
	}
	if got := d.Level(50, 0); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Level(50) = %v, want 0.75", got)
	}
	if got := d.Level(1000, 0); got != 1.0 {
		t.Errorf("Level(1000) = %v, want 1.0", got)
	}
	if got := d.Speed(2.0, 0, 0); got != 3.0 {
		t.Errorf("Speed = %v, want 3.0", got)
	}
	if got := d.Countdown(600, 0, 0); got != 500 {
		t.Errorf("Countdown = %d, want 500", got)
	}
	if got := d.Countdown(100, 1000, 0); got != 50 {
		t.Errorf("Countdown floor = %d, want 50", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := d.Level(1000, 0); got != 0.5 {
		t.Errorf("disabled Level = %v, want initial 0.5", got)
	}
}
