// Package config resolves startup settings from ONCE_* environment variables
// and command-line flags, flags taking precedence
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/once-upon-a-lever/constant"
	"github.com/lixenwraith/once-upon-a-lever/engine"
)

// Config is the full startup configuration
// Empty paths select the embedded defaults (catalog, layout, graph) or disable the feature (record, replay)
type Config struct {
	CatalogPath string `env:"CATALOG"`
	LayoutPath  string `env:"LAYOUT"`
	GraphPath   string `env:"GRAPH"`
	DBPath      string `env:"DB" envDefault:"data/once.db"`
	LogPath     string `env:"LOG" envDefault:"logs/once.log"`

	Debug  bool `env:"DEBUG"`
	Mute   bool `env:"MUTE"`
	Resume bool `env:"RESUME" envDefault:"true"`

	TickInterval time.Duration `env:"TICK" envDefault:"16ms"`
	SnapDuration time.Duration `env:"SNAP" envDefault:"500ms"`
	Policy       string        `env:"POLICY" envDefault:"evict"`
	StrictGates  bool          `env:"STRICT_GATES"`

	RecordPath string `env:"RECORD"`
	ReplayPath string `env:"REPLAY"`

	MasterVolume float64 `env:"VOLUME_MASTER" envDefault:"0.8"`
	MusicVolume  float64 `env:"VOLUME_MUSIC" envDefault:"0.5"`
	SFXVolume    float64 `env:"VOLUME_SFX" envDefault:"0.8"`
}

const envPrefix = "ONCE_"

// Default returns the configuration with no environment or flags applied
func Default() Config {
	return Config{
		DBPath:       "data/once.db",
		LogPath:      "logs/once.log",
		Resume:       true,
		TickInterval: constant.FrameUpdateInterval,
		SnapDuration: constant.SnapDuration,
		Policy:       engine.PolicyEvict.String(),
		MasterVolume: constant.DefaultMasterVolume,
		MusicVolume:  constant.DefaultMusicVolume,
		SFXVolume:    constant.DefaultSFXVolume,
	}
}

// Load parses the ONCE_* environment
func Load() (Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ApplyFlags overrides fields with any flags present in args
// Flags default to the current values so absent flags change nothing
func (c *Config) ApplyFlags(fs *flag.FlagSet, args []string) error {
	fs.StringVar(&c.CatalogPath, "catalog", c.CatalogPath, "scene catalog YAML (empty: embedded story)")
	fs.StringVar(&c.LayoutPath, "layout", c.LayoutPath, "board layout YAML (empty: embedded layout)")
	fs.StringVar(&c.GraphPath, "graph", c.GraphPath, "scene state graph YAML (empty: embedded graph)")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "progress database path (empty: no persistence)")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "debug log file")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "write debug log")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "start muted")
	fs.BoolVar(&c.Resume, "resume", c.Resume, "resume from the last reached scene")
	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "logic tick interval")
	fs.DurationVar(&c.SnapDuration, "snap", c.SnapDuration, "item snap animation duration")
	fs.StringVar(&c.Policy, "policy", c.Policy, "placement policy: evict, free-only")
	fs.BoolVar(&c.StrictGates, "strict-gates", c.StrictGates, "require held items to be lever-activated")
	fs.StringVar(&c.RecordPath, "record", c.RecordPath, "record input to a .jsonl.zst file")
	fs.StringVar(&c.ReplayPath, "replay", c.ReplayPath, "play back a recorded input file")
	fs.Float64Var(&c.MasterVolume, "volume", c.MasterVolume, "master volume [0,1]")
	fs.Float64Var(&c.MusicVolume, "music", c.MusicVolume, "music volume [0,1]")
	fs.Float64Var(&c.SFXVolume, "sfx", c.SFXVolume, "effects volume [0,1]")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return c.Validate()
}

// Validate rejects values the game cannot run with
func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval %v must be positive", c.TickInterval)
	}
	if c.SnapDuration <= 0 {
		return fmt.Errorf("snap duration %v must be positive", c.SnapDuration)
	}
	if _, ok := engine.ParsePlacementPolicy(c.Policy); !ok {
		return fmt.Errorf("unknown placement policy %q", c.Policy)
	}
	if c.RecordPath != "" && c.RecordPath == c.ReplayPath {
		return fmt.Errorf("record and replay both use %q", c.RecordPath)
	}
	return nil
}

// Settings returns the gameplay switches for the engine context
func (c *Config) Settings() engine.Settings {
	policy, _ := engine.ParsePlacementPolicy(c.Policy)
	return engine.Settings{
		Policy:       policy,
		SnapDuration: c.SnapDuration,
		StrictGates:  c.StrictGates,
	}
}
