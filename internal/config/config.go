// Package config loads game tuning from YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dustbuster/internal/sim"
)

// Config is the on-disk form of the game tuning. Fields left out of a file
// keep their defaults.
type Config struct {
	Field   FieldConfig   `yaml:"field" toml:"field"`
	Rules   RulesConfig   `yaml:"rules" toml:"rules"`
	Spawn   SpawnConfig   `yaml:"spawn" toml:"spawn"`
	Paddle  PaddleConfig  `yaml:"paddle" toml:"paddle"`
	Audio   AudioConfig   `yaml:"audio" toml:"audio"`
	Display DisplayConfig `yaml:"display" toml:"display"`
}

// FieldConfig describes the playfield geometry.
type FieldConfig struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	DustSize   float64 `yaml:"dustSize" toml:"dustSize"`
	BrushSize  float64 `yaml:"brushSize" toml:"brushSize"`
	BrushRange float64 `yaml:"brushRange" toml:"brushRange"`
}

// RulesConfig holds scoring and lives.
type RulesConfig struct {
	Lives          int `yaml:"lives" toml:"lives"`
	CatchBonus     int `yaml:"catchBonus" toml:"catchBonus"`
	SurvivalPoints int `yaml:"survivalPoints" toml:"survivalPoints"`
}

// SpawnConfig controls dust generation and the difficulty ramp.
type SpawnConfig struct {
	Interval     time.Duration `yaml:"interval" toml:"interval"`
	RampInterval time.Duration `yaml:"rampInterval" toml:"rampInterval"`
	Chance       float64       `yaml:"chance" toml:"chance"`
	Growth       float64       `yaml:"growth" toml:"growth"`
	MaxChance    float64       `yaml:"maxChance" toml:"maxChance"` // 0 disables the cap
	MinSpeed     float64       `yaml:"minSpeed" toml:"minSpeed"`
	MaxSpeed     float64       `yaml:"maxSpeed" toml:"maxSpeed"`
}

// PaddleConfig tunes the brush physics.
type PaddleConfig struct {
	KeyImpulse   float64 `yaml:"keyImpulse" toml:"keyImpulse"`
	HoldImpulse  float64 `yaml:"holdImpulse" toml:"holdImpulse"`
	MomentumGain float64 `yaml:"momentumGain" toml:"momentumGain"`
	Friction     float64 `yaml:"friction" toml:"friction"`
}

// AudioConfig controls the miss cue.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"` // 0.0 ~ 1.0
}

// DisplayConfig controls the host frame rate.
type DisplayConfig struct {
	TickRate int `yaml:"tickRate" toml:"tickRate"`
}

// Default returns the classic tuning.
func Default() *Config {
	p := sim.DefaultParams()
	return &Config{
		Field: FieldConfig{
			Width:      p.Width,
			Height:     p.Height,
			DustSize:   p.DustSize,
			BrushSize:  p.BrushSize,
			BrushRange: p.BrushRange,
		},
		Rules: RulesConfig{
			Lives:          p.Lives,
			CatchBonus:     p.CatchBonus,
			SurvivalPoints: p.SurvivalPoints,
		},
		Spawn: SpawnConfig{
			Interval:     p.SpawnInterval,
			RampInterval: p.RampInterval,
			Chance:       p.SpawnChance,
			Growth:       p.SpawnGrowth,
			MaxChance:    p.MaxSpawnChance,
			MinSpeed:     p.MinSpeed,
			MaxSpeed:     p.MaxSpeed,
		},
		Paddle: PaddleConfig{
			KeyImpulse:   p.KeyImpulse,
			HoldImpulse:  p.HoldImpulse,
			MomentumGain: p.MomentumGain,
			Friction:     p.Friction,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.8,
		},
		Display: DisplayConfig{
			TickRate: 60,
		},
	}
}

// Load reads a config file on top of the defaults. The format is picked by
// extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the tuning describes a playable game.
func (c *Config) Validate() error {
	f := c.Field
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("field size must be positive, got %vx%v", f.Width, f.Height)
	}
	if f.DustSize <= 0 || f.DustSize > f.Width {
		return fmt.Errorf("field.dustSize must be in (0, %v], got %v", f.Width, f.DustSize)
	}
	if f.BrushSize <= 0 || f.BrushSize > f.Width {
		return fmt.Errorf("field.brushSize must be in (0, %v], got %v", f.Width, f.BrushSize)
	}
	if f.BrushRange < 0 {
		return fmt.Errorf("field.brushRange must be >= 0, got %v", f.BrushRange)
	}
	if 3*f.DustSize >= f.Height {
		return fmt.Errorf("field.height %v leaves no room above the catch zone for dust of size %v", f.Height, f.DustSize)
	}

	r := c.Rules
	if r.Lives < 1 {
		return fmt.Errorf("rules.lives must be >= 1, got %d", r.Lives)
	}
	if r.CatchBonus < 0 || r.SurvivalPoints < 0 {
		return fmt.Errorf("rules.catchBonus and rules.survivalPoints must be >= 0")
	}

	s := c.Spawn
	if s.Interval <= 0 {
		return fmt.Errorf("spawn.interval must be positive, got %v", s.Interval)
	}
	if s.RampInterval <= 0 {
		return fmt.Errorf("spawn.rampInterval must be positive, got %v", s.RampInterval)
	}
	if s.Chance < 0 {
		return fmt.Errorf("spawn.chance must be >= 0, got %v", s.Chance)
	}
	if s.Growth < 1 {
		return fmt.Errorf("spawn.growth must be >= 1, got %v", s.Growth)
	}
	if s.MaxChance < 0 {
		return fmt.Errorf("spawn.maxChance must be >= 0, got %v", s.MaxChance)
	}
	if s.MinSpeed <= 0 || s.MaxSpeed < s.MinSpeed {
		return fmt.Errorf("spawn speed range [%v, %v] is invalid", s.MinSpeed, s.MaxSpeed)
	}

	p := c.Paddle
	if p.Friction < 0 || p.Friction >= 1 {
		return fmt.Errorf("paddle.friction must be in [0, 1), got %v", p.Friction)
	}
	if p.MomentumGain <= 0 {
		return fmt.Errorf("paddle.momentumGain must be positive, got %v", p.MomentumGain)
	}
	if p.KeyImpulse < 0 || p.HoldImpulse < 0 {
		return fmt.Errorf("paddle impulses must be >= 0")
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio.volume must be between 0 and 1, got %v", c.Audio.Volume)
	}
	if c.Display.TickRate < 1 || c.Display.TickRate > 240 {
		return fmt.Errorf("display.tickRate must be between 1 and 240, got %d", c.Display.TickRate)
	}
	return nil
}

// Params converts the tuning into simulation parameters.
func (c *Config) Params() sim.Params {
	return sim.Params{
		Width:      c.Field.Width,
		Height:     c.Field.Height,
		DustSize:   c.Field.DustSize,
		BrushSize:  c.Field.BrushSize,
		BrushRange: c.Field.BrushRange,

		Lives:          c.Rules.Lives,
		CatchBonus:     c.Rules.CatchBonus,
		SurvivalPoints: c.Rules.SurvivalPoints,

		SpawnInterval:  c.Spawn.Interval,
		RampInterval:   c.Spawn.RampInterval,
		SpawnChance:    c.Spawn.Chance,
		SpawnGrowth:    c.Spawn.Growth,
		MaxSpawnChance: c.Spawn.MaxChance,
		MinSpeed:       c.Spawn.MinSpeed,
		MaxSpeed:       c.Spawn.MaxSpeed,

		KeyImpulse:   c.Paddle.KeyImpulse,
		HoldImpulse:  c.Paddle.HoldImpulse,
		MomentumGain: c.Paddle.MomentumGain,
		Friction:     c.Paddle.Friction,
	}
}

// FrameDuration is the host tick period.
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.Display.TickRate)
}
