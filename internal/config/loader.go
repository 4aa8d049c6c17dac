package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSleigh loads sleigh configuration.
// Search order: customPath -> ~/.arcade/configs/sleigh.yaml -> ./configs/sleigh.yaml -> embedded default
func LoadSleigh(customPath string) (SleighConfig, error) {
	return load(customPath, "sleigh.yaml", defaultSleighYAML, DefaultSleighConfig)
}

// LoadJingle loads jingle configuration.
// Search order: customPath -> ~/.arcade/configs/jingle.yaml -> ./configs/jingle.yaml -> embedded default
func LoadJingle(customPath string) (JingleConfig, error) {
	return load(customPath, "jingle.yaml", defaultJingleYAML, DefaultJingleConfig)
}

func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// An explicit path must work; everything after it is best effort.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	var def T
	if err := yaml.Unmarshal(embedded, &def); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return def, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySleighPreset modifies the config based on a difficulty preset.
func ApplySleighPreset(cfg *SleighConfig, preset DifficultyPreset) {
	applyDifficultyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.StartHealth = 5
		cfg.Threat.FirstCountdown = 900
	case DifficultyHard:
		cfg.Player.StartHealth = 2
		cfg.Threat.FirstCountdown = 420
	}
}

// ApplyJinglePreset modifies the config based on a difficulty preset.
func ApplyJinglePreset(cfg *JingleConfig, preset DifficultyPreset) {
	applyDifficultyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Krampus.BaseSpeed = 1.0
	case DifficultyHard:
		cfg.Krampus.BaseSpeed = 1.5
	}
}

func applyDifficultyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
