package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test graphics defaults
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Test effect defaults
	if cfg.Effects.Selected != "explode" {
		t.Errorf("expected effect 'explode', got %s", cfg.Effects.Selected)
	}
	if cfg.Effects.Duration != 600*time.Millisecond {
		t.Errorf("expected duration 600ms, got %v", cfg.Effects.Duration)
	}
	if cfg.Effects.Explode.GridX != 13 || cfg.Effects.Explode.GridY != 10 {
		t.Errorf("expected explode grid 13x10, got %dx%d", cfg.Effects.Explode.GridX, cfg.Effects.Explode.GridY)
	}
	if cfg.Effects.Glide2.AwayAngle != -45 {
		t.Errorf("expected glide2 angle -45, got %v", cfg.Effects.Glide2.AwayAngle)
	}
	if cfg.Effects.Domino.Direction != "auto" {
		t.Errorf("expected domino direction 'auto', got %s", cfg.Effects.Domino.Direction)
	}

	// Test engine defaults
	if cfg.Engine.ShowDamage {
		t.Error("expected show_damage to be false by default")
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

engine:
  show_damage: true
  seed: 42

effects:
  selected: shatter
  duration: 1.5s
  perspective: window
  shatter:
    spokes: 4
    tiers: 6
  razr:
    direction: left

logging:
  level: debug
  log_file: polyfx.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if !cfg.Engine.ShowDamage || cfg.Engine.Seed != 42 {
		t.Errorf("expected damage overlay and seed 42, got %+v", cfg.Engine)
	}
	if cfg.Effects.Selected != "shatter" {
		t.Errorf("expected effect 'shatter', got %s", cfg.Effects.Selected)
	}
	if cfg.Effects.Duration != 1500*time.Millisecond {
		t.Errorf("expected duration 1.5s, got %v", cfg.Effects.Duration)
	}
	if cfg.Effects.Perspective != "window" {
		t.Errorf("expected perspective 'window', got %s", cfg.Effects.Perspective)
	}
	if cfg.Effects.Shatter.Spokes != 4 || cfg.Effects.Shatter.Tiers != 6 {
		t.Errorf("expected shatter 4x6, got %+v", cfg.Effects.Shatter)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Effects.Shatter.FallFraction != 0.7 {
		t.Errorf("expected fall fraction 0.7 kept, got %v", cfg.Effects.Shatter.FallFraction)
	}
	if cfg.Effects.Razr.Direction != "left" {
		t.Errorf("expected razr direction 'left', got %s", cfg.Effects.Razr.Direction)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "polyfx.log" {
		t.Errorf("expected log file 'polyfx.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Effects.Selected = "tornado"
	cfg.Effects.Duration = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Effects.Selected != "tornado" || loaded.Effects.Duration != 2*time.Second {
		t.Errorf("got %s/%v, want tornado/2s", loaded.Effects.Selected, loaded.Effects.Duration)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Engine.ShowDamage {
					t.Error("expected damage overlay with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "effect flag",
			setup: func() { *flagEffect = "glide2" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Effects.Selected != "glide2" {
					t.Errorf("expected effect glide2, got %s", cfg.Effects.Selected)
				}
			},
			teardown: func() { *flagEffect = "" },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Engine.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.Engine.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if cfg.Effects.Selected != "explode" {
		t.Errorf("empty path: got effect %s, want defaults", cfg.Effects.Selected)
	}

	path := filepath.Join(t.TempDir(), "meshtool.yaml")
	if err := os.WriteFile(path, []byte("engine:\n  clip_rows: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Engine.ClipRows != 4 || cfg.Engine.SnapshotDir != "snapshots" {
		t.Errorf("got clip rows %d, snapshot dir %q", cfg.Engine.ClipRows, cfg.Engine.SnapshotDir)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
