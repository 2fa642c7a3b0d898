// Package config handles polyfx configuration loading and management.
package config

import "time"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Engine   EngineConfig   `yaml:"engine"`
	Effects  EffectsConfig  `yaml:"effects"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds demo window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// EngineConfig holds polygon engine settings shared by every effect.
type EngineConfig struct {
	// ScreenWidth overrides the screen width used for depth units when
	// positive.
	ScreenWidth int `yaml:"screen_width"`
	// ShowDamage draws the per-frame damage box outline.
	ShowDamage bool `yaml:"show_damage"`
	// Seed seeds effect randomness; zero picks a time based seed.
	Seed int64 `yaml:"seed"`
	// SurfaceImage is drawn as the window texture when set.
	SurfaceImage string `yaml:"surface_image"`
	// SnapshotDir receives PNG frame snapshots.
	SnapshotDir string `yaml:"snapshot_dir"`
	// ClipRows splits each repaint into that many damage clips, one draw
	// call each.
	ClipRows int `yaml:"clip_rows"`
}

// EffectsConfig holds the selected effect and one block per effect.
type EffectsConfig struct {
	Selected string        `yaml:"selected"`
	Duration time.Duration `yaml:"duration"`

	// Perspective overrides the effect's correction mode when set
	// ("none", "polygon" or "window").
	Perspective      string `yaml:"perspective,omitempty"`
	DisableDepthTest bool   `yaml:"disable_depth_test"`
	DisableLighting  bool   `yaml:"disable_lighting"`

	Blinds     BlindsConfig     `yaml:"blinds"`
	Helix      HelixConfig      `yaml:"helix"`
	Shatter    ShatterConfig    `yaml:"shatter"`
	Explode    ExplodeConfig    `yaml:"explode"`
	LeafSpread LeafSpreadConfig `yaml:"leaf_spread"`
	Domino     DominoConfig     `yaml:"domino"`
	Razr       DominoConfig     `yaml:"razr"`
	Glide1     GlideConfig      `yaml:"glide1"`
	Glide2     GlideConfig      `yaml:"glide2"`
	Tornado    TornadoConfig    `yaml:"tornado"`
}

// BlindsConfig configures slats turning about their vertical axis.
type BlindsConfig struct {
	GridX      int     `yaml:"grid_x"`
	HalfTwists int     `yaml:"half_twists"`
	Thickness  float32 `yaml:"thickness"`
}

// HelixConfig configures horizontal strips twisting in sequence.
type HelixConfig struct {
	GridY     int     `yaml:"grid_y"`
	Twists    int     `yaml:"twists"`
	Thickness float32 `yaml:"thickness"`
	// Vertical spins the strips about the z axis and spreads them.
	Vertical bool `yaml:"vertical"`
	// Reverse flips the spin direction.
	Reverse bool `yaml:"reverse"`
}

// ShatterConfig configures glass shards falling off the screen.
type ShatterConfig struct {
	Spokes    int     `yaml:"spokes"`
	Tiers     int     `yaml:"tiers"`
	Thickness float32 `yaml:"thickness"`
	// FallFraction is the share of shards that fall.
	FallFraction float32 `yaml:"fall_fraction"`
}

// ExplodeConfig configures pieces flying outwards.
type ExplodeConfig struct {
	Tessellation string  `yaml:"tessellation"`
	GridX        int     `yaml:"grid_x"`
	GridY        int     `yaml:"grid_y"`
	Thickness    float32 `yaml:"thickness"`
}

// LeafSpreadConfig configures small pieces drifting away row by row.
type LeafSpreadConfig struct {
	GridX     int     `yaml:"grid_x"`
	GridY     int     `yaml:"grid_y"`
	Thickness float32 `yaml:"thickness"`
}

// DominoConfig configures falling pieces. Direction is "up", "down",
// "left", "right" or "auto".
type DominoConfig struct {
	Direction string `yaml:"direction"`
}

// GlideConfig configures the whole window gliding away. AwayPosition is a
// fraction of the camera distance; AwayAngle is in degrees.
type GlideConfig struct {
	AwayPosition float32 `yaml:"away_position"`
	AwayAngle    float32 `yaml:"away_angle"`
	Thickness    float32 `yaml:"thickness"`
}

// TornadoConfig configures pieces spinning about the window's vertical axis.
type TornadoConfig struct {
	GridX     int     `yaml:"grid_x"`
	GridY     int     `yaml:"grid_y"`
	Thickness float32 `yaml:"thickness"`
	Turns     float32 `yaml:"turns"`
	Rise      float32 `yaml:"rise"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Engine: EngineConfig{
			SnapshotDir: "snapshots",
			ClipRows:    1,
		},
		Effects: EffectsConfig{
			Selected: "explode",
			Duration: 600 * time.Millisecond,
			Blinds:   BlindsConfig{GridX: 3, HalfTwists: 1, Thickness: 5},
			Helix:    HelixConfig{GridY: 20, Twists: 2, Thickness: 5},
			Shatter:  ShatterConfig{Spokes: 3, Tiers: 5, Thickness: 10, FallFraction: 0.7},
			Explode: ExplodeConfig{
				Tessellation: "rectangles",
				GridX:        13,
				GridY:        10,
				Thickness:    15,
			},
			LeafSpread: LeafSpreadConfig{GridX: 20, GridY: 14, Thickness: 15},
			Domino:     DominoConfig{Direction: "auto"},
			Razr:       DominoConfig{Direction: "auto"},
			Glide1:     GlideConfig{AwayPosition: 1, AwayAngle: 0, Thickness: 10},
			Glide2:     GlideConfig{AwayPosition: -0.4, AwayAngle: -45, Thickness: 10},
			Tornado:    TornadoConfig{GridX: 10, GridY: 8, Thickness: 5, Turns: 1.5, Rise: 0.5},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
