// Package config loads game settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/input"
	"github.com/plus3/blockfall/loop"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration written as a Go duration string ("250ms").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the file format. Every field is optional; missing fields keep
// the values from Default.
type Config struct {
	// Seed fixes the piece sequence. Zero picks a seed at startup.
	Seed             uint64              `toml:"seed"`
	RandomColors     bool                `toml:"random_colors"`
	StrictRotation   bool                `toml:"strict_rotation"`
	FrameInterval    Duration            `toml:"frame_interval"`
	RepeatInterval   Duration            `toml:"repeat_interval"`
	GravityPeriod    Duration            `toml:"gravity_period"`
	MinGravityPeriod Duration            `toml:"min_gravity_period"`
	SpeedUpEvery     int                 `toml:"speed_up_every"`
	SpeedUpFactor    float64             `toml:"speed_up_factor"`
	Keys             map[string][]string `toml:"keys,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	l := loop.DefaultConfig()
	return Config{
		StrictRotation:   engine.DefaultConfig().StrictRotation,
		FrameInterval:    Duration{loop.DefaultFrameInterval},
		RepeatInterval:   Duration{l.Repeat},
		GravityPeriod:    Duration{l.GravityPeriod},
		MinGravityPeriod: Duration{l.MinGravityPeriod},
		SpeedUpEvery:     l.SpeedUpEvery,
		SpeedUpFactor:    l.SpeedUpFactor,
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a TOML document over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()

	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%w: unknown field %q", ErrInvalid, keys[0].String())
	}
	return nil
}

// Validate checks ranges and key bindings.
func (c Config) Validate() error {
	positive := []struct {
		name string
		d    time.Duration
	}{
		{"frame_interval", c.FrameInterval.Duration},
		{"repeat_interval", c.RepeatInterval.Duration},
		{"gravity_period", c.GravityPeriod.Duration},
		{"min_gravity_period", c.MinGravityPeriod.Duration},
	}
	for _, p := range positive {
		if p.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalid, p.name, p.d)
		}
	}

	if c.MinGravityPeriod.Duration > c.GravityPeriod.Duration {
		return fmt.Errorf("%w: min_gravity_period %s exceeds gravity_period %s",
			ErrInvalid, c.MinGravityPeriod, c.GravityPeriod)
	}
	if c.SpeedUpEvery < 0 {
		return fmt.Errorf("%w: speed_up_every must not be negative, got %d", ErrInvalid, c.SpeedUpEvery)
	}
	if c.SpeedUpFactor <= 0 || c.SpeedUpFactor >= 1 {
		return fmt.Errorf("%w: speed_up_factor must be in (0, 1), got %g", ErrInvalid, c.SpeedUpFactor)
	}
	if _, err := c.Keymap(); err != nil {
		return err
	}
	return nil
}

// Keymap returns the default keymap with the [keys] table applied.
func (c Config) Keymap() (input.Keymap, error) {
	km := input.DefaultKeymap()
	if err := km.ParseBindings(c.Keys); err != nil {
		return nil, fmt.Errorf("%w: keys: %w", ErrInvalid, err)
	}
	return km, nil
}

// Engine returns the rule variants.
func (c Config) Engine() engine.Config {
	return engine.Config{
		RandomColors:   c.RandomColors,
		StrictRotation: c.StrictRotation,
	}
}

// Loop returns the loop timing and key settings.
func (c Config) Loop() (loop.Config, error) {
	km, err := c.Keymap()
	if err != nil {
		return loop.Config{}, err
	}
	return loop.Config{
		Keymap:           km,
		Repeat:           c.RepeatInterval.Duration,
		GravityPeriod:    c.GravityPeriod.Duration,
		MinGravityPeriod: c.MinGravityPeriod.Duration,
		SpeedUpEvery:     c.SpeedUpEvery,
		SpeedUpFactor:    c.SpeedUpFactor,
	}, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
